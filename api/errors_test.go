// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfUnwrapsStages(t *testing.T) {
	base := errors.New("address already in use")
	staged := NewError(ErrCodeBind, "bind :3490", base)
	wrapped := fmt.Errorf("startup: %w", staged)

	if code := CodeOf(wrapped); code != ErrCodeBind {
		t.Errorf("CodeOf = %d, want ErrCodeBind", code)
	}
	if !errors.Is(wrapped, base) {
		t.Error("cause lost through wrapping")
	}
}

func TestCodeOfUnstagedError(t *testing.T) {
	if code := CodeOf(errors.New("plain")); code != ErrCodeInternal {
		t.Errorf("CodeOf = %d, want ErrCodeInternal", code)
	}
	if code := CodeOf(nil); code != ErrCodeInternal {
		t.Errorf("CodeOf(nil) = %d, want ErrCodeInternal", code)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := NewError(ErrCodeSocket, "socket create", errors.New("too many open files"))
	if got := err.Error(); got != "socket create: too many open files" {
		t.Errorf("Error() = %q", got)
	}
	bare := NewError(ErrCodeListen, "listen", nil)
	if got := bare.Error(); got != "listen" {
		t.Errorf("Error() = %q", got)
	}
}
