package ocr

import (
	"context"
	"fmt"

	"github.com/tsawler/docintel/model"
)

// Result is the output of one recognition pass: every recognized word with
// its confidence and position, plus the page dimensions in pixels.
type Result struct {
	Words      []model.Word
	PageWidth  float64
	PageHeight float64
}

// Adapter converts a raster page image into positioned text tokens. The
// pipeline treats adapter failures as hard failures: they are surfaced to
// the caller and never retried or reinterpreted.
type Adapter interface {
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// AdapterError wraps a failure of the underlying OCR engine (missing
// binary, missing language data, corrupt image).
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("ocr %s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
