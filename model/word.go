package model

import (
	"math"
	"strings"
)

// Word represents a single recognized token with its OCR confidence and
// position. Words are immutable once produced by the OCR adapter.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
}

// NewWord creates a word, clamping the confidence into [0,1] and
// normalizing the bounding box. Malformed geometry is repaired rather than
// rejected: the OCR engine occasionally reports swapped or negative edges.
func NewWord(text string, confidence float64, bbox BBox) Word {
	return Word{
		Text:       text,
		Confidence: clampConfidence(confidence),
		BBox:       bbox.Normalize(),
	}
}

// clampConfidence forces a confidence value into [0,1]. NaN compares
// false against any bound, so it needs its own check; it repairs to 0
// like any other unusable value.
func clampConfidence(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// TextLine represents an ordered run of words sharing a horizontal band.
// Lines are created by the layout segmenter and never mutated afterwards.
type TextLine struct {
	Text       string  `json:"text"`
	Words      []Word  `json:"words"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
}

// NewTextLine builds a line from its words: the text is the space-joined
// word text, the confidence is the mean word confidence (0 if empty) and
// the bounding box is the union of the word boxes.
func NewTextLine(words []Word) TextLine {
	line := TextLine{Words: words}
	if len(words) == 0 {
		return line
	}

	parts := make([]string, len(words))
	sum := 0.0
	bbox := words[0].BBox
	for i, w := range words {
		parts[i] = w.Text
		sum += w.Confidence
		bbox = bbox.Union(w.BBox)
	}

	line.Text = strings.Join(parts, " ")
	line.Confidence = sum / float64(len(words))
	line.BBox = bbox
	return line
}
