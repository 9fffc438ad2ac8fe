package docintel

import (
	"github.com/tsawler/docintel/classify"
	"github.com/tsawler/docintel/fields"
	"github.com/tsawler/docintel/layout"
	"github.com/tsawler/docintel/ocr"
	"github.com/tsawler/docintel/scan"
	"github.com/tsawler/docintel/tables"
)

// processOptions holds configuration for a pipeline run.
type processOptions struct {
	// OCR
	language    string
	pageSegMode *ocr.PageSegMode // nil means the engine default
	adapter     ocr.Adapter      // nil means the built-in OCR client

	// Stage configuration
	layoutConfig     layout.Config
	classifierConfig classify.Config
	rules            []classify.Rule
	catalog          []fields.Spec
	tableConfig      tables.Config
	scanner          scan.LineScanner // nil means the raster scanner

	skipTables bool
}

// defaultProcessOptions returns the default pipeline configuration.
func defaultProcessOptions() processOptions {
	return processOptions{
		language:         "eng",
		layoutConfig:     layout.DefaultConfig(),
		classifierConfig: classify.DefaultConfig(),
		rules:            classify.DefaultRules(),
		catalog:          fields.DefaultCatalog(),
		tableConfig:      tables.DefaultConfig(),
	}
}

// clone creates a deep copy of processOptions.
func (o processOptions) clone() processOptions {
	newOpts := o
	if o.rules != nil {
		newOpts.rules = make([]classify.Rule, len(o.rules))
		copy(newOpts.rules, o.rules)
	}
	if o.catalog != nil {
		newOpts.catalog = make([]fields.Spec, len(o.catalog))
		copy(newOpts.catalog, o.catalog)
	}
	if o.pageSegMode != nil {
		mode := *o.pageSegMode
		newOpts.pageSegMode = &mode
	}
	return newOpts
}

// Language sets the OCR language (a Tesseract language code such as
// "eng" or "deu").
func (p *Pipeline) Language(lang string) *Pipeline {
	np := p.clone()
	np.options.language = lang
	return np
}

// PageSegMode sets the Tesseract page segmentation mode used by the
// built-in OCR client. Useful for single-column or sparse documents where
// the fully automatic mode fragments the layout.
func (p *Pipeline) PageSegMode(mode ocr.PageSegMode) *Pipeline {
	np := p.clone()
	np.options.pageSegMode = &mode
	return np
}

// WithAdapter replaces the OCR stage with a custom adapter. Useful for
// cloud OCR backends and for tests.
func (p *Pipeline) WithAdapter(a ocr.Adapter) *Pipeline {
	np := p.clone()
	np.options.adapter = a
	return np
}

// Source sets the source identifier recorded in the result. The file
// name is used by default when the pipeline was created with Open.
func (p *Pipeline) Source(id string) *Pipeline {
	np := p.clone()
	np.source = id
	return np
}

// WithLayoutConfig overrides layout segmentation parameters.
func (p *Pipeline) WithLayoutConfig(config layout.Config) *Pipeline {
	np := p.clone()
	np.options.layoutConfig = config
	return np
}

// WithRules replaces the classification rule catalog. Catalog order is
// the tie-break priority.
func (p *Pipeline) WithRules(rules []classify.Rule) *Pipeline {
	np := p.clone()
	np.options.rules = rules
	return np
}

// MinTypeConfidence sets the score below which classification reports
// the unknown type.
func (p *Pipeline) MinTypeConfidence(min float64) *Pipeline {
	np := p.clone()
	np.options.classifierConfig.MinConfidence = min
	return np
}

// WithCatalog replaces the field extraction catalog.
func (p *Pipeline) WithCatalog(catalog []fields.Spec) *Pipeline {
	np := p.clone()
	np.options.catalog = catalog
	return np
}

// WithTableConfig overrides table detection parameters.
func (p *Pipeline) WithTableConfig(config tables.Config) *Pipeline {
	np := p.clone()
	np.options.tableConfig = config
	return np
}

// WithScanner replaces the line scanner used by table detection.
func (p *Pipeline) WithScanner(s scan.LineScanner) *Pipeline {
	np := p.clone()
	np.options.scanner = s
	return np
}

// SkipTables disables table detection entirely.
func (p *Pipeline) SkipTables() *Pipeline {
	np := p.clone()
	np.options.skipTables = true
	return np
}
