// Package docintel provides a fluent API for turning scanned documents
// into structured intelligence: segmented layout, document type, named
// fields and tables, each with a confidence score.
//
// Basic usage:
//
//	result, err := docintel.Open("invoice.png").Process(context.Background())
//	if err != nil {
//	    // handle error; result is still well-formed
//	}
//	fmt.Println(result.DocType, result.Fields["total_amount"].Value)
//
// With options:
//
//	result, err := docintel.Open("scan.tiff").
//	    Language("deu").
//	    SkipTables().
//	    Process(ctx)
//
// Callers that already have OCR output can skip recognition entirely:
//
//	result, err := docintel.FromWords(words, 1700, 2200).Process(ctx)
//
// For advanced use cases, the lower-level layout, classify, fields and
// tables packages are also available.
package docintel

import (
	"errors"

	"github.com/tsawler/docintel/model"
)

// ErrMalformedInput is returned when a pipeline has no usable input to
// process: no file name, no image data and no recognized words. Repairable
// problems inside the input, such as out-of-range confidences or swapped
// bounding-box edges, are fixed at construction time instead.
var ErrMalformedInput = errors.New("malformed input")

// Open prepares a pipeline for a document image file. The file is read
// and recognized when Process is called.
//
// Example:
//
//	result, err := docintel.Open("invoice.png").Process(ctx)
func Open(filename string) *Pipeline {
	return &Pipeline{
		source:  filename,
		options: defaultProcessOptions(),
	}
}

// FromImage prepares a pipeline for in-memory image data. The source name
// in the result is empty unless set with Source.
func FromImage(data []byte) *Pipeline {
	return &Pipeline{
		imageData: data,
		options:   defaultProcessOptions(),
	}
}

// FromWords prepares a pipeline for pre-recognized OCR words, bypassing
// the OCR stage. Page dimensions are in the same pixel space as the word
// boxes. Without a page image, table detection runs in degraded mode and
// is skipped.
func FromWords(words []model.Word, pageWidth, pageHeight float64) *Pipeline {
	return &Pipeline{
		words:      words,
		haveWords:  true,
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		options:    defaultProcessOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := docintel.Must(docintel.Open("invoice.png").Process(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
