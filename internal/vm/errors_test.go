package vm

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "not found", err: &Error{Kind: KindNotFound, Err: ErrVMNotFound}, want: 2},
		{name: "command", err: &Error{Kind: KindCommand, Msg: "cannot start VM x"}, want: 2},
		{name: "unknown action", err: &Error{Kind: KindUnknownAction, Err: ErrUnknownAction}, want: 2},
		{name: "wrapped", err: fmt.Errorf("outer: %w", &Error{Kind: KindCaptureFile}), want: 2},
		{name: "plain error", err: errors.New("usage"), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &Error{Kind: KindViewer, Err: errors.New("x")})
	if KindOf(wrapped) != KindViewer {
		t.Errorf("KindOf() = %s, want %s", KindOf(wrapped), KindViewer)
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Errorf("plain errors should be KindUnknown")
	}
	if KindOf(nil) != KindUnknown {
		t.Errorf("nil should be KindUnknown")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{err: &Error{Msg: "cannot start VM x", Err: errors.New("exit status 1")}, want: "cannot start VM x: exit status 1"},
		{err: &Error{Msg: "only message"}, want: "only message"},
		{err: &Error{Err: errors.New("only cause")}, want: "only cause"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindNotFound.String() != "not-found" {
		t.Errorf("KindNotFound.String() = %s", KindNotFound)
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %s", Kind(99))
	}
}
