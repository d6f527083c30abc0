package models

import (
	"fmt"

	"github.com/rentchain/rentdeploy/internal/domain"
)

// ExecutionPlan is the validated, ordered list of steps for one migration on one network
type ExecutionPlan struct {
	Migration string           `json:"migration"`
	Network   string           `json:"network"`
	Steps     []*ExecutionStep `json:"steps"`
}

// ExecutionStep is a deploy action with its dependencies made explicit
type ExecutionStep struct {
	Index     int           `json:"index"`
	Action    *DeployAction `json:"action"`
	DependsOn []string      `json:"dependsOn,omitempty"`
}

// Step returns the step for the named action
func (p *ExecutionPlan) Step(name string) (*ExecutionStep, bool) {
	for _, s := range p.Steps {
		if s.Action.Name == name {
			return s, true
		}
	}
	return nil, false
}

// BuildPlan validates a migration against the linear pipeline rules and returns
// its execution plan for the given network. Steps keep the declared order; every
// ref must point at an action declared earlier.
func BuildPlan(m *Migration, network string) (*ExecutionPlan, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("%w: migration name is required", domain.ErrInvalidPlan)
	}
	if len(m.Actions) == 0 {
		return nil, fmt.Errorf("%w: migration '%s' has no actions", domain.ErrInvalidPlan, m.Name)
	}

	var params map[string]string
	if np, ok := m.Networks[network]; ok && np != nil {
		params = np.Params
	}

	declared := make(map[string]int, len(m.Actions))
	for i, action := range m.Actions {
		if action == nil {
			return nil, fmt.Errorf("%w: action #%d is empty", domain.ErrInvalidPlan, i+1)
		}
		if action.Name == "" {
			return nil, fmt.Errorf("%w: action #%d must have a name", domain.ErrInvalidPlan, i+1)
		}
		if action.Artifact == "" {
			return nil, fmt.Errorf("%w: action '%s' must specify an artifact", domain.ErrInvalidPlan, action.Name)
		}
		if _, dup := declared[action.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate action name '%s'", domain.ErrInvalidPlan, action.Name)
		}
		declared[action.Name] = i
	}

	plan := &ExecutionPlan{
		Migration: m.Name,
		Network:   network,
		Steps:     make([]*ExecutionStep, 0, len(m.Actions)),
	}

	for i, action := range m.Actions {
		step := &ExecutionStep{Index: i, Action: action}
		seen := make(map[string]bool)

		for j, arg := range action.Args {
			if arg == nil {
				return nil, fmt.Errorf("%w: action '%s' argument %d is empty", domain.ErrInvalidPlan, action.Name, j)
			}
			kind, err := arg.Kind()
			if err != nil {
				return nil, fmt.Errorf("%w: action '%s' argument %d: %v", domain.ErrInvalidPlan, action.Name, j, err)
			}

			switch kind {
			case ArgKindRef:
				if arg.Ref == action.Name {
					return nil, fmt.Errorf("%w: action '%s' cannot reference itself", domain.ErrInvalidPlan, action.Name)
				}
				at, ok := declared[arg.Ref]
				if !ok {
					return nil, fmt.Errorf("%w: action '%s' references unknown action '%s'", domain.ErrInvalidPlan, action.Name, arg.Ref)
				}
				if at > i {
					return nil, fmt.Errorf("%w: action '%s' references '%s' which is declared after it",
						domain.ErrForwardReference, action.Name, arg.Ref)
				}
				if !seen[arg.Ref] {
					step.DependsOn = append(step.DependsOn, arg.Ref)
					seen[arg.Ref] = true
				}
			case ArgKindParam:
				if _, ok := params[arg.Param]; !ok {
					return nil, fmt.Errorf("%w: action '%s' needs parameter '%s' which network '%s' does not define",
						domain.ErrInvalidPlan, action.Name, arg.Param, network)
				}
			case ArgKindTimestamp:
				if _, err := arg.Offset(); err != nil {
					return nil, fmt.Errorf("%w: action '%s' argument %d: %v", domain.ErrInvalidPlan, action.Name, j, err)
				}
			}
		}

		plan.Steps = append(plan.Steps, step)
	}

	return plan, nil
}
