// Package fields scans document text for a catalog of named business
// facts and yields validated, confidence-scored key/value pairs.
//
// Extraction runs a fixed strategy ladder per field: a field-specific
// pattern over the full text, then label-adjacent inference over the
// segmented layout, then a last-resort heuristic scan. The first strategy
// producing a validated value wins and its tag is recorded as the field's
// source. Absence of a field is success, not error.
package fields

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docintel/model"
)

// Per-strategy base confidences. These reflect the reliability of the
// strategy that produced a value, not the OCR confidence of the matched
// text. They are calibration parameters with no measured derivation yet;
// recalibrate against real extraction accuracy before trusting them as
// more than an ordering.
const (
	// ConfidencePattern is assigned to values from field-specific
	// regular expressions over the full text.
	ConfidencePattern = 0.85

	// ConfidenceLayout is assigned to values inferred from label-adjacent
	// layout lines.
	ConfidenceLayout = 0.75

	// ConfidenceDirect is assigned to values from the last-resort
	// heuristic text scan.
	ConfidenceDirect = 0.60
)

// ErrUnknownField is returned when a requested field name is not in the
// catalog. A cataloged field that is simply absent from a document is not
// an error; it is reported as absence.
var ErrUnknownField = errors.New("field not in catalog")

// candidateScanLimit bounds how many pattern candidates are examined per
// field before giving up on the pattern strategy.
const candidateScanLimit = 20

// directPatterns holds the last-resort scan patterns for fields whose
// values have a recognizable standalone shape. Fields without an entry
// have no direct-read strategy.
var directPatterns = map[string]*regexp.Regexp{
	"email":        regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
	"total_amount": regexp.MustCompile(`[$€£]\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
	"phone":        regexp.MustCompile(`\(?\d{3}\)?[ \-]\d{3}[ \-]\d{4}`),
	"zip_code":     regexp.MustCompile(`\b(\d{5}-\d{4}|\d{5})\b`),
	"invoice_date": regexp.MustCompile(`\b(\d{1,4}[/\-.]\d{1,2}[/\-.]\d{2,4})\b`),
}

// compiledSpec pairs a catalog entry with its compiled expressions.
type compiledSpec struct {
	spec    Spec
	pattern *regexp.Regexp
	label   *regexp.Regexp
}

// Extractor extracts catalog fields from document text and layout.
type Extractor struct {
	specs  []compiledSpec
	byName map[string]int
}

// NewExtractor creates an extractor with the built-in catalog.
func NewExtractor() *Extractor {
	e, err := NewExtractorWithCatalog(DefaultCatalog())
	if err != nil {
		// The built-in catalog is known to compile.
		panic(err)
	}
	return e
}

// NewExtractorWithCatalog creates an extractor from a custom catalog.
func NewExtractorWithCatalog(catalog []Spec) (*Extractor, error) {
	e := &Extractor{byName: make(map[string]int, len(catalog))}
	for _, spec := range catalog {
		pattern, err := regexp.Compile("(?i)" + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for field %q: %w", spec.Name, err)
		}
		var label *regexp.Regexp
		if spec.Label != "" {
			label, err = regexp.Compile("(?i)" + spec.Label)
			if err != nil {
				return nil, fmt.Errorf("compile label for field %q: %w", spec.Name, err)
			}
		}
		e.byName[spec.Name] = len(e.specs)
		e.specs = append(e.specs, compiledSpec{spec: spec, pattern: pattern, label: label})
	}
	return e, nil
}

// Extract scans the document for every cataloged field. The result maps
// field name to the extracted field and contains only the fields actually
// found; it is never nil. The layout is optional: nil disables the
// layout-inference strategy.
func (e *Extractor) Extract(text string, layout *model.DocumentLayout) map[string]model.ExtractedField {
	out := make(map[string]model.ExtractedField)
	for _, cs := range e.specs {
		if f, ok := e.extract(cs, text, layout); ok {
			out[f.Name] = f
		}
	}
	return out
}

// ExtractOne extracts a single cataloged field. Requesting a name outside
// the catalog returns ErrUnknownField; a cataloged field absent from the
// document returns (nil, nil).
func (e *Extractor) ExtractOne(text string, layout *model.DocumentLayout, name string) (*model.ExtractedField, error) {
	idx, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f, found := e.extract(e.specs[idx], text, layout); found {
		return &f, nil
	}
	return nil, nil
}

// extract runs the strategy ladder for one field.
func (e *Extractor) extract(cs compiledSpec, text string, layout *model.DocumentLayout) (model.ExtractedField, bool) {
	if value := e.patternValue(cs, text); value != "" {
		return model.ExtractedField{
			Name:       cs.spec.Name,
			Value:      value,
			Confidence: ConfidencePattern,
			Source:     model.SourcePattern,
		}, true
	}
	if value := e.layoutValue(cs, layout); value != "" {
		return model.ExtractedField{
			Name:       cs.spec.Name,
			Value:      value,
			Confidence: ConfidenceLayout,
			Source:     model.SourceLayout,
		}, true
	}
	if value := e.directValue(cs, text); value != "" {
		return model.ExtractedField{
			Name:       cs.spec.Name,
			Value:      value,
			Confidence: ConfidenceDirect,
			Source:     model.SourceDirect,
		}, true
	}
	return model.ExtractedField{}, false
}

// patternValue runs the field's pattern over the full text. Matches whose
// captured value fails validation are skipped and the scan resumes just
// past the failed match start, so a decoy early match cannot hide a valid
// later one.
func (e *Extractor) patternValue(cs compiledSpec, text string) string {
	offset := 0
	for i := 0; i < candidateScanLimit && offset < len(text); i++ {
		loc := cs.pattern.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return ""
		}
		raw := ""
		if len(loc) >= 4 && loc[2] >= 0 {
			raw = text[offset+loc[2] : offset+loc[3]]
		} else {
			raw = text[offset+loc[0] : offset+loc[1]]
		}
		if value := e.validated(cs, raw); value != "" {
			return value
		}
		offset += loc[0] + 1
	}
	return ""
}

// layoutValue searches the header and body regions for a line carrying
// the field's label. The value is the remainder of the label line, or the
// following line when the label line carries nothing after the label.
func (e *Extractor) layoutValue(cs compiledSpec, layout *model.DocumentLayout) string {
	if layout == nil || cs.label == nil {
		return ""
	}
	for _, region := range [][]model.TextLine{layout.Header, layout.Body} {
		for i, line := range region {
			loc := cs.label.FindStringIndex(line.Text)
			if loc == nil {
				continue
			}
			rest := strings.TrimLeft(line.Text[loc[1]:], " \t:=#")
			if value := e.validated(cs, rest); value != "" {
				return value
			}
			if i+1 < len(region) {
				if value := e.validated(cs, region[i+1].Text); value != "" {
					return value
				}
			}
		}
	}
	return ""
}

// directValue runs the field's last-resort scan, if it has one.
func (e *Extractor) directValue(cs compiledSpec, text string) string {
	re, ok := directPatterns[cs.spec.Name]
	if !ok {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	raw := m[0]
	if len(m) > 1 && m[1] != "" {
		raw = m[1]
	}
	return e.validated(cs, raw)
}

// validated cleans a raw candidate and applies the field's shape check.
// It returns "" when the candidate is empty or invalid.
func (e *Extractor) validated(cs compiledSpec, raw string) string {
	value := cleanValue(raw)
	if value == "" {
		return ""
	}
	if cs.spec.Validate != nil && !cs.spec.Validate(value) {
		return ""
	}
	return value
}

// cleanValue normalizes a raw extraction candidate: NFKC folding (OCR
// output can carry ligatures and fullwidth digits), truncation at the
// first line break, whitespace de-duplication and trailing punctuation
// removal.
func cleanValue(raw string) string {
	v := norm.NFKC.String(raw)
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i]
	}
	v = strings.Join(strings.Fields(v), " ")
	return strings.TrimRight(v, " .,:;")
}
