package fields

import (
	"regexp"
	"strings"
)

// Spec describes one extractable field: its catalog name, the full-text
// pattern whose first capture group yields the value, the label used for
// layout inference, and the validation rule applied to candidate values.
// The catalog is configuration, not code: new fields are added here
// without touching the extraction strategies.
type Spec struct {
	Name string

	// Pattern is matched case-insensitively against the full document
	// text; the first capture group is the raw value.
	Pattern string

	// Label is matched against individual layout lines to locate the
	// field when the full-text pattern fails.
	Label string

	// Validate rejects values that fail the field's shape check.
	// A nil Validate accepts any non-empty value.
	Validate func(string) bool
}

// DefaultCatalog returns the built-in field catalog.
func DefaultCatalog() []Spec {
	return []Spec{
		{
			Name:     "invoice_number",
			Pattern:  `invoice\s*(?:number|no\.?|#)?\s*[:=]?\s*([A-Z0-9\-]+)`,
			Label:    `invoice\s*(?:number|no\.?|#)`,
			Validate: hasDigit,
		},
		{
			Name:     "invoice_date",
			Pattern:  `invoice\s*date\s*[:=]?\s*([\d/\-\.]+)`,
			Label:    `invoice\s*date`,
			Validate: looksLikeDate,
		},
		{
			Name:     "due_date",
			Pattern:  `(?:due|payment)\s*date\s*[:=]?\s*([\d/\-\.]+)`,
			Label:    `(?:due|payment)\s*date`,
			Validate: looksLikeDate,
		},
		{
			Name:     "total_amount",
			Pattern:  `(?:total|amount\s*due)\s*[:=]?\s*[^\d]*(\d+(?:[.,]\d+)*(?:[.,]\d{2})?)`,
			Label:    `total|amount\s*due`,
			Validate: hasDigit,
		},
		{
			Name:     "recipient",
			Pattern:  `(?:bill\s*to|ship\s*to|to)\s*[:=]\s*([A-Za-z][A-Za-z .'\-]*)`,
			Label:    `bill\s*to|ship\s*to`,
			Validate: looksLikeName,
		},
		{
			Name:     "sender",
			Pattern:  `(?:from|company|seller)\s*[:=]\s*([A-Za-z][A-Za-z .'\-]*)`,
			Label:    `from|company|seller`,
			Validate: looksLikeName,
		},
		{
			Name:     "phone",
			Pattern:  `(?:phone|tel)(?:ephone)?\s*[:=]?\s*([\d\-\(\) ]{7,})`,
			Label:    `phone|telephone|tel\b`,
			Validate: looksLikePhone,
		},
		{
			Name:     "email",
			Pattern:  `([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`,
			Label:    `e-?mail`,
			Validate: looksLikeEmail,
		},
		{
			Name:     "address",
			Pattern:  `(?:address|street)\s*[:=]\s*([0-9][0-9A-Za-z .,#\-]*)`,
			Label:    `address|street`,
			Validate: looksLikeAddress,
		},
		{
			Name:     "zip_code",
			Pattern:  `(?:zip|postal)\s*(?:code)?\s*[:=]?\s*(\d{5}(?:-?\d{4})?)`,
			Label:    `zip|postal`,
			Validate: looksLikeZip,
		},
	}
}

// Validation rules. Each rule is a cheap shape check; values that fail are
// treated as absent rather than stored invalid.

var (
	digitRe = regexp.MustCompile(`\d`)
	zipRe   = regexp.MustCompile(`^\d{5}(-?\d{4})?$`)
)

func hasDigit(v string) bool {
	return digitRe.MatchString(v)
}

func looksLikeDate(v string) bool {
	return len(digitRe.FindAllString(v, -1)) >= 2
}

func looksLikeName(v string) bool {
	letters := 0
	for _, r := range v {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	return letters >= 2
}

func looksLikePhone(v string) bool {
	return len(digitRe.FindAllString(v, -1)) >= 7
}

func looksLikeEmail(v string) bool {
	at := strings.Index(v, "@")
	if at <= 0 {
		return false
	}
	domain := v[at+1:]
	return strings.Contains(domain, ".") && !strings.Contains(domain, "@")
}

func looksLikeAddress(v string) bool {
	return hasDigit(v) && looksLikeName(v)
}

func looksLikeZip(v string) bool {
	return zipRe.MatchString(v)
}
