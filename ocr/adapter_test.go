package ocr

import (
	"errors"
	"testing"
)

func TestAdapterErrorWrapping(t *testing.T) {
	cause := errors.New("tesseract binary not found")
	err := &AdapterError{Op: "recognize", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("AdapterError should unwrap to its cause")
	}

	var ae *AdapterError
	if !errors.As(error(err), &ae) {
		t.Error("errors.As should match AdapterError")
	}
	if ae.Op != "recognize" {
		t.Errorf("Expected op %q, got %q", "recognize", ae.Op)
	}
}
