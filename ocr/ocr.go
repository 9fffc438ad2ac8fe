//go:build ocr

// Package ocr adapts the Tesseract OCR engine (via gosseract) to the
// positioned-word model the pipeline consumes.
//
// This implementation is selected by the "ocr" build tag and requires
// Tesseract to be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/otiai10/gosseract/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/docintel/model"
)

// PageSegMode selects how Tesseract analyzes the page layout. It aliases
// the gosseract type so the same constants work whether or not the "ocr"
// build tag is set.
type PageSegMode = gosseract.PageSegMode

// Page segmentation modes.
const (
	PSM_OSD_ONLY               = gosseract.PSM_OSD_ONLY
	PSM_AUTO_OSD               = gosseract.PSM_AUTO_OSD
	PSM_AUTO_ONLY              = gosseract.PSM_AUTO_ONLY
	PSM_AUTO                   = gosseract.PSM_AUTO
	PSM_SINGLE_COLUMN          = gosseract.PSM_SINGLE_COLUMN
	PSM_SINGLE_BLOCK_VERT_TEXT = gosseract.PSM_SINGLE_BLOCK_VERT_TEXT
	PSM_SINGLE_BLOCK           = gosseract.PSM_SINGLE_BLOCK
	PSM_SINGLE_LINE            = gosseract.PSM_SINGLE_LINE
	PSM_SINGLE_WORD            = gosseract.PSM_SINGLE_WORD
	PSM_CIRCLE_WORD            = gosseract.PSM_CIRCLE_WORD
	PSM_SINGLE_CHAR            = gosseract.PSM_SINGLE_CHAR
	PSM_SPARSE_TEXT            = gosseract.PSM_SPARSE_TEXT
	PSM_SPARSE_TEXT_OSD        = gosseract.PSM_SPARSE_TEXT_OSD
	PSM_RAW_LINE               = gosseract.PSM_RAW_LINE
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client should be closed when no longer
// needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode, which affects how
// Tesseract analyzes the page layout.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}

// Recognize performs OCR on image data (PNG, JPEG, TIFF or BMP) and
// returns word-level tokens with confidences and bounding boxes.
func (c *Client) Recognize(ctx context.Context, imageData []byte) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	var result Result
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData)); err == nil {
		result.PageWidth = float64(cfg.Width)
		result.PageHeight = float64(cfg.Height)
	}

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return Result{}, &AdapterError{Op: "set image", Err: err}
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, &AdapterError{Op: "recognize", Err: err}
	}

	result.Words = make([]model.Word, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		// Tesseract reports confidence on a 0-100 scale.
		result.Words = append(result.Words, model.NewWord(
			b.Word,
			b.Confidence/100.0,
			model.NewBBox(
				float64(b.Box.Min.X), float64(b.Box.Min.Y),
				float64(b.Box.Max.X), float64(b.Box.Max.Y),
			),
		))
	}

	return result, nil
}
