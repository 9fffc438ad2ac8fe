package docintel

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/tsawler/docintel/classify"
	"github.com/tsawler/docintel/fields"
	"github.com/tsawler/docintel/layout"
	"github.com/tsawler/docintel/model"
	"github.com/tsawler/docintel/ocr"
	"github.com/tsawler/docintel/scan"
	"github.com/tsawler/docintel/tables"
)

// Pipeline assembles the stages of document analysis for one input. Each
// configuration method returns a new Pipeline instance, making it safe
// for concurrent use and allowing method chaining.
type Pipeline struct {
	// Input: exactly one of source file, image data, or recognized words.
	source     string
	imageData  []byte
	words      []model.Word
	haveWords  bool
	pageWidth  float64
	pageHeight float64

	options processOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Pipeline with a deep copy of
// options. Each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		source:     p.source,
		imageData:  p.imageData,
		words:      append([]model.Word(nil), p.words...),
		haveWords:  p.haveWords,
		pageWidth:  p.pageWidth,
		pageHeight: p.pageHeight,
		options:    p.options.clone(),
		err:        p.err,
	}
}

// Process runs the pipeline: recognition, layout segmentation, then
// classification, field extraction and table detection concurrently.
//
// The returned record is always well-formed. When a stage fails hard the
// error is returned and also recorded in the result's Err field, with the
// document type left unknown; callers that only keep the record still see
// what happened.
func (p *Pipeline) Process(ctx context.Context) (*model.Intelligence, error) {
	start := time.Now()
	result := &model.Intelligence{
		Source:  p.source,
		DocType: model.TypeUnknown,
		Fields:  make(map[string]model.ExtractedField),
	}
	finish := func(err error) (*model.Intelligence, error) {
		result.ProcessingTime = time.Since(start).Seconds()
		if err != nil {
			result.Err = err.Error()
		}
		return result, err
	}

	if p.err != nil {
		return finish(p.err)
	}
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	// Build the configured stages first so a bad catalog or rule set
	// fails before any OCR work.
	classifier, err := classify.NewClassifierWithRules(p.options.rules, p.options.classifierConfig)
	if err != nil {
		return finish(fmt.Errorf("build classifier: %w", err))
	}
	extractor, err := fields.NewExtractorWithCatalog(p.options.catalog)
	if err != nil {
		return finish(fmt.Errorf("build field extractor: %w", err))
	}

	words, pageWidth, pageHeight, img, err := p.acquire(ctx)
	if err != nil {
		return finish(err)
	}
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	lay := layout.NewSegmenterWithConfig(p.options.layoutConfig).Segment(words, pageWidth, pageHeight)
	result.RawText = lay.Text()

	var (
		wg        sync.WaitGroup
		docType   model.DocumentType
		typeConf  float64
		extracted map[string]model.ExtractedField
		detected  []*model.Table
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		docType, typeConf = classifier.Classify(result.RawText)
	}()
	go func() {
		defer wg.Done()
		extracted = extractor.Extract(result.RawText, &lay)
	}()

	if !p.options.skipTables {
		if img == nil {
			// No raster to scan: skip table detection rather than fail.
			result.Degraded = true
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				detected = p.detector().Detect(img, &lay)
			}()
		}
	}
	wg.Wait()

	lay.Tables = detected
	result.Layout = lay
	result.DocType = docType
	result.TypeConfidence = typeConf
	result.Fields = extracted
	return finish(nil)
}

// acquire resolves the pipeline input into recognized words, page
// dimensions and, when available, the decoded page image.
func (p *Pipeline) acquire(ctx context.Context) ([]model.Word, float64, float64, image.Image, error) {
	if p.haveWords {
		return p.words, p.pageWidth, p.pageHeight, nil, nil
	}

	data := p.imageData
	if data == nil {
		if p.source == "" {
			return nil, 0, 0, nil, fmt.Errorf("%w: no input specified", ErrMalformedInput)
		}
		var err error
		data, err = os.ReadFile(p.source)
		if err != nil {
			return nil, 0, 0, nil, fmt.Errorf("read document: %w", err)
		}
	}

	// A raster that fails to decode just means no table detection;
	// recognition gets its own chance at the bytes.
	img, err := scan.Decode(data)
	if err != nil {
		img = nil
	}

	res, err := p.recognize(ctx, data)
	if err != nil {
		return nil, 0, 0, nil, err
	}

	pageWidth, pageHeight := res.PageWidth, res.PageHeight
	if img != nil && (pageWidth == 0 || pageHeight == 0) {
		pageWidth = float64(img.Bounds().Dx())
		pageHeight = float64(img.Bounds().Dy())
	}
	return res.Words, pageWidth, pageHeight, img, nil
}

// recognize runs OCR through the configured adapter, or the built-in
// client when none is set.
func (p *Pipeline) recognize(ctx context.Context, data []byte) (ocr.Result, error) {
	if p.options.adapter != nil {
		return p.options.adapter.Recognize(ctx, data)
	}

	client, err := ocr.New()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("create ocr client: %w", err)
	}
	defer client.Close()

	if err := client.SetLanguage(p.options.language); err != nil {
		return ocr.Result{}, fmt.Errorf("set ocr language: %w", err)
	}
	if p.options.pageSegMode != nil {
		if err := client.SetPageSegMode(*p.options.pageSegMode); err != nil {
			return ocr.Result{}, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	return client.Recognize(ctx, data)
}

// detector builds the table detector for this run.
func (p *Pipeline) detector() *tables.Detector {
	if p.options.scanner != nil {
		return tables.NewDetectorWithScanner(p.options.scanner, p.options.tableConfig)
	}
	return tables.NewDetectorWithConfig(p.options.tableConfig)
}
