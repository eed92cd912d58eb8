package orchestrator

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned by Invoke when the query is blank.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrBudgetExceeded means the per-request wall-clock budget ran out.
	ErrBudgetExceeded = errors.New("pipeline time budget exceeded")

	// ErrCanceled means the caller gave up on the invocation, e.g. the client
	// disconnected.
	ErrCanceled = errors.New("pipeline canceled")

	// ErrStagePanic wraps a panic that escaped a stage.
	ErrStagePanic = errors.New("stage panicked")

	// ErrInvalidGraph is returned by Compile for a malformed graph definition.
	ErrInvalidGraph = errors.New("invalid pipeline graph")

	// ErrUnknownNode is returned when a router picks a node it did not declare.
	ErrUnknownNode = errors.New("unknown pipeline node")
)

// StageError is a pipeline-fatal error attributed to one node.
type StageError struct {
	Stage NodeName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
