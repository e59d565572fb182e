// Package errors tests for application error codes.
package errors

import (
	stderrors "errors"
	"testing"
)

// TestAppErrorMessage verifies code and message formatting.
func TestAppErrorMessage(t *testing.T) {
	err := New(ErrStorage, "write failed")
	if err.Error() != "[STORAGE_ERROR] write failed" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := Wrap(ErrExportFailed, "render failed", stderrors.New("boom"))
	if wrapped.Error() != "[EXPORT_FAILED] render failed: boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

// TestAppErrorUnwrap verifies errors.Is sees through the wrapper.
func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrap(ErrStorage, "write failed", cause)

	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error does not match its cause")
	}
}

// TestCodeOf verifies code extraction and the internal fallback.
func TestCodeOf(t *testing.T) {
	if code := CodeOf(New(ErrNoteNotFound, "missing")); code != ErrNoteNotFound {
		t.Errorf("CodeOf() = %q", code)
	}
	if code := CodeOf(stderrors.New("plain")); code != ErrInternal {
		t.Errorf("CodeOf(plain) = %q, want internal", code)
	}
}
