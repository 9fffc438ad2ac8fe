package classify

import "github.com/tsawler/docintel/model"

// WeightedPattern is one classification cue: a regular expression and its
// contribution to the type's score.
type WeightedPattern struct {
	Pattern string
	Weight  float64
}

// Rule maps a document type to its weighted pattern set.
type Rule struct {
	Type     model.DocumentType
	Patterns []WeightedPattern
}

// DefaultRules returns the built-in rule catalog. The slice order is the
// documented classification priority: when two types score identically the
// earlier entry wins, keeping classification deterministic.
//
// The catalog is configuration, not code: callers can supply their own
// rules without touching the scoring algorithm.
func DefaultRules() []Rule {
	return []Rule{
		{Type: model.TypeInvoice, Patterns: []WeightedPattern{
			{Pattern: `invoice\s*(?:number|no\.?|#)?`, Weight: 1},
			{Pattern: `amount\s*due`, Weight: 1},
			{Pattern: `invoice\s*date`, Weight: 1},
			{Pattern: `bill\s*to`, Weight: 1},
			{Pattern: `from|seller`, Weight: 1},
		}},
		{Type: model.TypeReceipt, Patterns: []WeightedPattern{
			{Pattern: `receipt\s*(?:number|no\.?|#)?`, Weight: 1},
			{Pattern: `total|amount.*paid`, Weight: 1},
			{Pattern: `transaction\s*(?:id|number)`, Weight: 1},
			{Pattern: `item.*(?:qty|quantity|price)`, Weight: 1},
			{Pattern: `thank.*you`, Weight: 1},
		}},
		{Type: model.TypeContract, Patterns: []WeightedPattern{
			{Pattern: `agreement|contract`, Weight: 1},
			{Pattern: `party|parties`, Weight: 1},
			{Pattern: `whereas`, Weight: 1},
			{Pattern: `hereinafter`, Weight: 1},
			{Pattern: `signature|signed`, Weight: 1},
			{Pattern: `effective\s*date`, Weight: 1},
		}},
		{Type: model.TypeForm, Patterns: []WeightedPattern{
			{Pattern: `form\s*(?:number|no\.?|#)?`, Weight: 1},
			{Pattern: `please.*(?:complete|fill)`, Weight: 1},
			{Pattern: `required.*field|field.*required`, Weight: 1},
			{Pattern: `\[.*\]|__+`, Weight: 1}, // checkboxes or blank lines
			{Pattern: `signature\s*(?:line|here)`, Weight: 1},
		}},
		{Type: model.TypeLetter, Patterns: []WeightedPattern{
			{Pattern: `(?:dear|to)\s+`, Weight: 1},
			{Pattern: `sincerely|regards|respectfully`, Weight: 1},
			{Pattern: `(?:mr\.|ms\.|dr\.)`, Weight: 1},
			{Pattern: `address:|date:`, Weight: 1},
		}},
		{Type: model.TypeReport, Patterns: []WeightedPattern{
			{Pattern: `report\s*(?:number|no\.?|#)?`, Weight: 1},
			{Pattern: `annual|quarterly|monthly|executive\s*summary`, Weight: 1},
			{Pattern: `table\s*of\s*contents`, Weight: 1},
			{Pattern: `findings|conclusions`, Weight: 1},
			{Pattern: `prepared\s*by|date`, Weight: 1},
		}},
	}
}
