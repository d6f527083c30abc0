package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidPlan is returned when a migration cannot be turned into an execution plan
	ErrInvalidPlan = errors.New("invalid migration plan")

	// ErrForwardReference is returned when an action references an action declared after it
	ErrForwardReference = errors.New("forward reference")

	// ErrArtifactNotFound is returned when a compiled contract artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidArgument is returned when a constructor argument can't be converted to its ABI type
	ErrInvalidArgument = errors.New("invalid constructor argument")

	// ErrChainIDMismatch is returned when the RPC endpoint reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrRunCompleted is returned when resuming a run that already finished
	ErrRunCompleted = errors.New("run already completed")

	// ErrAborted is returned when the user declines to broadcast
	ErrAborted = errors.New("aborted by user")
)

// DeployError wraps a failure of a single deploy action. Any DeployError is fatal
// to the run it occurred in.
type DeployError struct {
	Action   string
	Artifact string
	Err      error
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("deploy %s (%s): %v", e.Action, e.Artifact, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// NotFoundWithSuggestionsErr is returned when a name lookup fails but close matches exist
type NotFoundWithSuggestionsErr struct {
	Kind        string
	Name        string
	Suggestions []string
	Err         error
}

func (e NotFoundWithSuggestionsErr) Error() string {
	msg := fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e NotFoundWithSuggestionsErr) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}
