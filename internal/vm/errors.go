package vm

import (
	"errors"
	"fmt"
)

// Exit codes returned by ExitCode.
const (
	ExitSuccess = 0
	ExitFailure = 2
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means the machine could not be resolved to one VM.
	KindNotFound
	// KindCommand means a hypervisor command failed or its state did not settle.
	KindCommand
	// KindUnknownAction means the action was neither start nor stop.
	KindUnknownAction
	// KindCaptureFile means the capture file could not be removed.
	KindCaptureFile
	// KindViewer means the capture viewer could not be launched.
	KindViewer
	// KindConfig means the run could not be set up from the configuration.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindCommand:
		return "command-failure"
	case KindUnknownAction:
		return "unknown-action"
	case KindCaptureFile:
		return "capture-file"
	case KindViewer:
		return "viewer"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by *Error.
var (
	ErrVMNotFound     = errors.New("machine not found")
	ErrAmbiguousName  = errors.New("machine name is ambiguous")
	ErrUnknownAction  = errors.New("unknown action")
	ErrStateNotSettle = errors.New("hypervisor state did not settle")
)

// Error is a failure of a trace operation.
type Error struct {
	Kind Kind
	// Msg describes the failed step, e.g. "cannot save state of VM <id>".
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status: 0 for nil, 2 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
