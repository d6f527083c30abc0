package models

import (
	"fmt"
	"time"
)

// ArgKind identifies where the value of a constructor argument comes from
type ArgKind string

const (
	ArgKindValue     ArgKind = "value"
	ArgKindParam     ArgKind = "param"
	ArgKindRef       ArgKind = "ref"
	ArgKindTimestamp ArgKind = "timestamp"
)

// Migration is a named, ordered list of deploy actions plus the per-network
// parameters those actions read from.
type Migration struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	Actions     []*DeployAction           `yaml:"actions"`
	Networks    map[string]*NetworkParams `yaml:"networks,omitempty"`

	// Source is the file the migration was loaded from
	Source string `yaml:"-"`
}

// NetworkParams holds the literal values a migration needs on one network
type NetworkParams struct {
	Params map[string]string `yaml:"params,omitempty"`
}

// DeployAction is one instruction to create a contract instance
type DeployAction struct {
	Name     string     `yaml:"name"`
	Artifact string     `yaml:"artifact"`
	Args     []*ArgSpec `yaml:"args,omitempty"`
}

// ArgSpec describes a single constructor argument. Exactly one field must be set.
type ArgSpec struct {
	Value     *string `yaml:"value,omitempty"`
	Param     string  `yaml:"param,omitempty"`
	Ref       string  `yaml:"ref,omitempty"`
	Timestamp string  `yaml:"timestamp,omitempty"`
}

// Kind returns the source of the argument, or an error if zero or several are set
func (a *ArgSpec) Kind() (ArgKind, error) {
	var kinds []ArgKind
	if a.Value != nil {
		kinds = append(kinds, ArgKindValue)
	}
	if a.Param != "" {
		kinds = append(kinds, ArgKindParam)
	}
	if a.Ref != "" {
		kinds = append(kinds, ArgKindRef)
	}
	if a.Timestamp != "" {
		kinds = append(kinds, ArgKindTimestamp)
	}

	switch len(kinds) {
	case 0:
		return "", fmt.Errorf("argument must set one of value, param, ref or timestamp")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("argument sets more than one of %v", kinds)
	}
}

// Offset parses the timestamp offset of a timestamp argument
func (a *ArgSpec) Offset() (time.Duration, error) {
	d, err := time.ParseDuration(a.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp offset %q: %w", a.Timestamp, err)
	}
	return d, nil
}

// String renders the argument the way it appears in a plan
func (a *ArgSpec) String() string {
	kind, err := a.Kind()
	if err != nil {
		return "<invalid>"
	}
	switch kind {
	case ArgKindValue:
		return *a.Value
	case ArgKindParam:
		return "$" + a.Param
	case ArgKindRef:
		return "@" + a.Ref
	default:
		return "now+" + a.Timestamp
	}
}

// Lit builds a literal argument
func Lit(v string) *ArgSpec {
	return &ArgSpec{Value: &v}
}

// Param builds an argument read from network parameters
func Param(name string) *ArgSpec {
	return &ArgSpec{Param: name}
}

// Ref builds an argument resolved to the address of an earlier action
func Ref(action string) *ArgSpec {
	return &ArgSpec{Ref: action}
}

// Timestamp builds an argument resolved to the execution time plus offset
func Timestamp(offset time.Duration) *ArgSpec {
	return &ArgSpec{Timestamp: offset.String()}
}
