package model

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// DocumentType is the closed set of document classifications. Unknown is
// the default and is itself a valid terminal classification, not an error.
type DocumentType int

const (
	TypeUnknown DocumentType = iota
	TypeInvoice
	TypeReceipt
	TypeContract
	TypeForm
	TypeLetter
	TypeReport
)

// typeNames maps document types to their wire names. Order is irrelevant
// here; classification priority lives in the classifier's rule catalog.
var typeNames = map[DocumentType]string{
	TypeUnknown:  "unknown",
	TypeInvoice:  "invoice",
	TypeReceipt:  "receipt",
	TypeContract: "contract",
	TypeForm:     "form",
	TypeLetter:   "letter",
	TypeReport:   "report",
}

func (dt DocumentType) String() string {
	if name, ok := typeNames[dt]; ok {
		return name
	}
	return "unknown"
}

// ParseDocumentType converts a wire name back to a DocumentType.
// Unrecognized names parse as TypeUnknown.
func ParseDocumentType(name string) DocumentType {
	for dt, n := range typeNames {
		if n == name {
			return dt
		}
	}
	return TypeUnknown
}

// MarshalJSON encodes the type as its wire name.
func (dt DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

// UnmarshalJSON decodes a wire name into a DocumentType.
func (dt *DocumentType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*dt = ParseDocumentType(name)
	return nil
}

// FieldSource identifies which extraction strategy produced a field value.
type FieldSource string

const (
	// SourcePattern marks values found by a field-specific regular
	// expression over the full document text.
	SourcePattern FieldSource = "pattern"

	// SourceLayout marks values inferred from label-adjacent text in the
	// segmented layout.
	SourceLayout FieldSource = "layout"

	// SourceDirect marks values found by a last-resort heuristic scan of
	// the raw OCR text.
	SourceDirect FieldSource = "direct"
)

// ExtractedField is one named fact pulled from the document. Value is
// always non-empty: extraction that yields an empty match is treated as
// "field not found" and the field is omitted entirely.
type ExtractedField struct {
	Name       string      `json:"name"`
	Value      string      `json:"value"`
	Confidence float64     `json:"confidence"`
	Source     FieldSource `json:"source"`
}

// Intelligence is the pipeline's final output for one document. It is
// created once by the assembler and read-only thereafter. The record
// serializes to JSON and round-trips losslessly, except that
// ProcessingTime is observational and not expected to survive unchanged.
type Intelligence struct {
	// Source identifies the input document (path or caller-supplied id).
	Source string `json:"source"`

	DocType        DocumentType              `json:"doc_type"`
	TypeConfidence float64                   `json:"type_confidence"`
	Layout         DocumentLayout            `json:"layout"`
	Fields         map[string]ExtractedField `json:"fields"`
	RawText        string                    `json:"raw_text"`

	// ProcessingTime is the wall-clock pipeline duration in seconds.
	ProcessingTime float64 `json:"processing_time"`

	// Degraded is set when a stage ran in a defined degraded mode, such
	// as table detection skipped for lack of a page image.
	Degraded bool `json:"degraded,omitempty"`

	// Err carries the pipeline-level failure message when a stage failed
	// hard. The record is still well-formed: callers never need to
	// null-check the whole result, only individual optional fields.
	Err string `json:"error,omitempty"`
}

// ToJSON serializes the record.
func (in *Intelligence) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal intelligence: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a record produced by ToJSON.
func FromJSON(data []byte) (*Intelligence, error) {
	var in Intelligence
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal intelligence: %w", err)
	}
	return &in, nil
}

// Equal reports whether two records carry the same canonical content.
// ProcessingTime is ignored: it is observational, not canonical.
func (in *Intelligence) Equal(other *Intelligence) bool {
	if in == nil || other == nil {
		return in == other
	}
	a := *in
	b := *other
	a.ProcessingTime = 0
	b.ProcessingTime = 0
	return reflect.DeepEqual(a, b)
}
