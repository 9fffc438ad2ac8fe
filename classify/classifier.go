// Package classify scores document text against a declarative table of
// per-type weighted patterns and decides a document type with confidence.
//
// Classification is explainable and deterministic: each type's score is
// the matched fraction of its pattern weights, ties break by catalog
// order, and a best score below the acceptance threshold yields
// model.TypeUnknown rather than a confident wrong guess.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/docintel/model"
)

// Config holds classifier parameters.
type Config struct {
	// MinConfidence is the acceptance threshold: a best score below it
	// classifies as unknown. This gate is a hard design requirement, not
	// a tuning nicety; silence beats a confident wrong guess.
	MinConfidence float64
}

// DefaultConfig returns the default classifier parameters.
func DefaultConfig() Config {
	return Config{MinConfidence: 0.2}
}

// compiledRule is a rule with its patterns compiled once.
type compiledRule struct {
	docType     model.DocumentType
	patterns    []*regexp.Regexp
	weights     []float64
	totalWeight float64
}

// Classifier scores text against a compiled rule catalog.
type Classifier struct {
	config Config
	rules  []compiledRule
}

// NewClassifier creates a classifier with the built-in rule catalog.
func NewClassifier() *Classifier {
	c, err := NewClassifierWithRules(DefaultRules(), DefaultConfig())
	if err != nil {
		// The built-in catalog is known to compile.
		panic(err)
	}
	return c
}

// NewClassifierWithRules creates a classifier from a custom rule catalog.
// Rule order is the tie-break priority.
func NewClassifierWithRules(rules []Rule, config Config) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		cr := compiledRule{docType: rule.Type}
		for _, wp := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + wp.Pattern)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q for %s: %w", wp.Pattern, rule.Type, err)
			}
			weight := wp.Weight
			if weight <= 0 {
				weight = 1
			}
			cr.patterns = append(cr.patterns, re)
			cr.weights = append(cr.weights, weight)
			cr.totalWeight += weight
		}
		if cr.totalWeight > 0 {
			compiled = append(compiled, cr)
		}
	}
	return &Classifier{config: config, rules: compiled}, nil
}

// Classify scores the document text and returns the winning type with its
// confidence. Empty or unrecognizable text classifies as unknown; this is
// a valid terminal result, never an error.
func (c *Classifier) Classify(text string) (model.DocumentType, float64) {
	if strings.TrimSpace(text) == "" {
		return model.TypeUnknown, 0
	}

	best := model.TypeUnknown
	bestScore := -1.0

	for _, rule := range c.rules {
		matched := 0.0
		for i, re := range rule.patterns {
			if re.MatchString(text) {
				matched += rule.weights[i]
			}
		}
		score := matched / rule.totalWeight
		// Strict > keeps catalog order as the tie break.
		if score > bestScore {
			best = rule.docType
			bestScore = score
		}
	}

	if bestScore < 0 {
		return model.TypeUnknown, 0
	}
	if bestScore < c.config.MinConfidence {
		return model.TypeUnknown, bestScore
	}
	return best, bestScore
}
