package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rentchain/rentdeploy/internal/domain/models"
)

// placeholderAddress stands in for refs that are not deployed yet when a plan is checked
const placeholderAddress = "0x0000000000000000000000000000000000000000"

// argResolver turns argument specs into the literal strings handed to the encoder
type argResolver struct {
	params    map[string]string
	addresses map[string]string
	// placeholders allows unresolved refs, used when checking a plan before a run
	placeholders bool
}

// resolve returns the literal value of every argument of the action. Timestamps are
// computed from now, which callers read right before the deploy call.
func (r *argResolver) resolve(action *models.DeployAction, now time.Time) ([]string, error) {
	values := make([]string, len(action.Args))
	for i, arg := range action.Args {
		kind, err := arg.Kind()
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}

		switch kind {
		case models.ArgKindValue:
			values[i] = *arg.Value
		case models.ArgKindParam:
			v, ok := r.params[arg.Param]
			if !ok {
				return nil, fmt.Errorf("argument %d: parameter '%s' is not defined", i, arg.Param)
			}
			values[i] = v
		case models.ArgKindRef:
			addr, ok := r.addresses[arg.Ref]
			if !ok {
				if !r.placeholders {
					return nil, fmt.Errorf("argument %d: action '%s' has not been deployed", i, arg.Ref)
				}
				addr = placeholderAddress
			}
			values[i] = addr
		case models.ArgKindTimestamp:
			offset, err := arg.Offset()
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			values[i] = strconv.FormatInt(now.Add(offset).Unix(), 10)
		}
	}
	return values, nil
}

// hasTimestamp reports whether any argument of the action is computed from the clock
func hasTimestamp(action *models.DeployAction) bool {
	for _, arg := range action.Args {
		if arg.Timestamp != "" {
			return true
		}
	}
	return false
}
