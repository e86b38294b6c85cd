package stager

import (
	"errors"
	"fmt"
)

// Op names the staging operation that failed.
type Op string

const (
	OpCompile Op = "compile"
	OpMkdir   Op = "mkdir"
	OpCopy    Op = "copy"
	OpRemove  Op = "rmtree"
)

var (
	// ErrSourceMissing means a declared shader source, the env file, or a
	// static asset directory does not exist.
	ErrSourceMissing = errors.New("source missing")
	// ErrCompileFailed means the external compiler exited nonzero or
	// produced no artifact.
	ErrCompileFailed = errors.New("compile failed")
)

// StagingError carries the failing path and operation kind. All staging
// failures surface as a *StagingError wrapping either one of the sentinel
// errors above or the underlying filesystem error.
type StagingError struct {
	Op   Op
	Path string
	Err  error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("stage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StagingError) Unwrap() error {
	return e.Err
}

// joinErr pairs a sentinel with the underlying cause so errors.Is matches
// either one.
func joinErr(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
