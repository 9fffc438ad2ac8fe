package tables

import (
	"errors"
	"image"
	"testing"

	"github.com/tsawler/docintel/model"
	"github.com/tsawler/docintel/scan"
)

// stubScanner returns canned segments, standing in for a raster scan.
type stubScanner struct {
	h, v []scan.Segment
	err  error
}

func (s *stubScanner) Scan(img image.Image) ([]scan.Segment, []scan.Segment, error) {
	return s.h, s.v, s.err
}

func hseg(y, x1, x2 float64) scan.Segment {
	return scan.Segment{
		Start: model.Point{X: x1, Y: y},
		End:   model.Point{X: x2, Y: y},
	}
}

func vseg(x, y1, y2 float64) scan.Segment {
	return scan.Segment{
		Start: model.Point{X: x, Y: y1},
		End:   model.Point{X: x, Y: y2},
	}
}

func wordAt(text string, cx, cy float64) model.Word {
	return model.NewWord(text, 0.9, model.BBox{
		Left:   cx - 10,
		Top:    cy - 5,
		Right:  cx + 10,
		Bottom: cy + 5,
	})
}

// gridSegments builds a clean bordered grid: row boundaries at y=100,
// 200, 300, 400 and column boundaries at x=100, 300, 500 (3 rows, 2
// columns).
func gridSegments() (h, v []scan.Segment) {
	for _, y := range []float64{100, 200, 300, 400} {
		h = append(h, hseg(y, 100, 500))
	}
	for _, x := range []float64{100, 300, 500} {
		v = append(v, vseg(x, 100, 400))
	}
	return h, v
}

func TestDetectCleanGrid(t *testing.T) {
	h, v := gridSegments()
	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, DefaultConfig())

	layout := &model.DocumentLayout{
		Body: []model.TextLine{
			model.NewTextLine([]model.Word{
				wordAt("Item", 200, 150), wordAt("Price", 400, 150),
			}),
			model.NewTextLine([]model.Word{
				wordAt("Widget", 200, 250), wordAt("9.99", 400, 250),
			}),
			model.NewTextLine([]model.Word{
				wordAt("Gadget", 200, 350), wordAt("24.50", 400, 350),
			}),
		},
		PageWidth:  600,
		PageHeight: 500,
	}

	tables := d.Detect(image.NewGray(image.Rect(0, 0, 1, 1)), layout)
	if len(tables) != 1 {
		t.Fatalf("expected exactly 1 table, got %d", len(tables))
	}

	tbl := tables[0]
	if tbl.Rows != 3 || tbl.Cols != 2 {
		t.Errorf("expected 3x2 table, got %dx%d", tbl.Rows, tbl.Cols)
	}
	if tbl.Confidence < 0.5 {
		t.Errorf("expected confidence >= 0.5 for a clean grid, got %v", tbl.Confidence)
	}
	if tbl.BBox.Left != 100 || tbl.BBox.Top != 100 || tbl.BBox.Right != 500 || tbl.BBox.Bottom != 400 {
		t.Errorf("unexpected table bbox: %+v", tbl.BBox)
	}

	want := [][]string{
		{"Item", "Price"},
		{"Widget", "9.99"},
		{"Gadget", "24.50"},
	}
	for r := range want {
		for c := range want[r] {
			if got := tbl.Cell(r, c); got != want[r][c] {
				t.Errorf("cell (%d,%d): expected %q, got %q", r, c, want[r][c], got)
			}
		}
	}
}

func TestDetectPreservesReadingOrderInCell(t *testing.T) {
	h, v := gridSegments()
	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, DefaultConfig())

	layout := &model.DocumentLayout{
		Body: []model.TextLine{
			model.NewTextLine([]model.Word{
				wordAt("Large", 150, 140), wordAt("Widget", 230, 140),
			}),
			model.NewTextLine([]model.Word{
				wordAt("blue", 180, 170),
			}),
		},
	}

	tables := d.DetectFromSegments(h, v, layout)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if got := tables[0].Cell(0, 0); got != "Large Widget blue" {
		t.Errorf("expected reading order preserved, got %q", got)
	}
}

func TestDetectIgnoresWordsOutsideGrid(t *testing.T) {
	h, v := gridSegments()
	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, DefaultConfig())

	layout := &model.DocumentLayout{
		Header: []model.TextLine{
			model.NewTextLine([]model.Word{wordAt("INVOICE", 300, 30)}),
		},
		Body: []model.TextLine{
			model.NewTextLine([]model.Word{wordAt("inside", 200, 150)}),
		},
	}

	tables := d.DetectFromSegments(h, v, layout)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]
	for r := 0; r < tbl.Rows; r++ {
		for c := 0; c < tbl.Cols; c++ {
			if tbl.Cell(r, c) == "INVOICE" {
				t.Errorf("header word leaked into cell (%d,%d)", r, c)
			}
		}
	}
	if got := tbl.Cell(0, 0); got != "inside" {
		t.Errorf("expected %q in cell (0,0), got %q", "inside", got)
	}
}

func TestDetectNilImage(t *testing.T) {
	d := NewDetector()
	if tables := d.Detect(nil, &model.DocumentLayout{}); tables != nil {
		t.Errorf("expected nil for nil image, got %d tables", len(tables))
	}
}

func TestDetectScannerFailure(t *testing.T) {
	d := NewDetectorWithScanner(&stubScanner{err: errors.New("scan failed")}, DefaultConfig())
	tables := d.Detect(image.NewGray(image.Rect(0, 0, 1, 1)), &model.DocumentLayout{})
	if tables != nil {
		t.Errorf("expected no tables on scanner failure, got %d", len(tables))
	}
}

func TestDetectNoSegments(t *testing.T) {
	d := NewDetectorWithScanner(&stubScanner{}, DefaultConfig())
	tables := d.Detect(image.NewGray(image.Rect(0, 0, 1, 1)), &model.DocumentLayout{})
	if len(tables) != 0 {
		t.Errorf("expected no tables on a blank page, got %d", len(tables))
	}
}

func TestDetectTooFewBoundaries(t *testing.T) {
	// Two horizontal rules, as under a letterhead. Not a table.
	h := []scan.Segment{hseg(100, 0, 500), hseg(700, 0, 500)}
	v := []scan.Segment{vseg(50, 0, 800), vseg(550, 0, 800), vseg(300, 0, 800)}

	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, DefaultConfig())
	if tables := d.DetectFromSegments(h, v, nil); len(tables) != 0 {
		t.Errorf("expected no tables with too few row boundaries, got %d", len(tables))
	}
}

func TestDetectIgnoresShortSegments(t *testing.T) {
	h, v := gridSegments()
	// Underline-sized strokes must not add boundaries.
	h = append(h, hseg(150, 200, 220), hseg(250, 300, 330))

	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, DefaultConfig())
	tables := d.DetectFromSegments(h, v, nil)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if tables[0].Rows != 3 {
		t.Errorf("expected short strokes ignored, got %d rows", tables[0].Rows)
	}
}

func TestDetectMergesAlignedSegments(t *testing.T) {
	h, v := gridSegments()
	// A thick rule scans as several adjacent segments.
	h = append(h, hseg(101, 100, 500), hseg(102, 100, 500))

	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, DefaultConfig())
	tables := d.DetectFromSegments(h, v, nil)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if tables[0].Rows != 3 || tables[0].Cols != 2 {
		t.Errorf("expected aligned segments merged into a 3x2 grid, got %dx%d",
			tables[0].Rows, tables[0].Cols)
	}
}

func TestDetectRejectsLowConfidence(t *testing.T) {
	// Boundaries exist but most intersections have no covering segments:
	// the horizontal rules stop short of the last column.
	h := []scan.Segment{
		hseg(100, 100, 350), hseg(200, 100, 350),
		hseg(300, 100, 350), hseg(400, 100, 350),
	}
	v := []scan.Segment{
		vseg(100, 100, 400), vseg(300, 100, 400), vseg(500, 100, 400),
	}

	config := DefaultConfig()
	config.MinConfidence = 0.9
	d := NewDetectorWithScanner(&stubScanner{h: h, v: v}, config)
	if tables := d.DetectFromSegments(h, v, nil); len(tables) != 0 {
		t.Errorf("expected ragged grid rejected at high threshold, got %d tables", len(tables))
	}
}

func TestDetectFromRasterImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 600, 500))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, y := range []int{100, 200, 300, 400} {
		for x := 100; x <= 500; x++ {
			img.Pix[y*600+x] = 0
		}
	}
	for _, x := range []int{100, 300, 500} {
		for y := 100; y <= 400; y++ {
			img.Pix[y*600+x] = 0
		}
	}

	d := NewDetector()
	tables := d.Detect(img, nil)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table from rasterized grid, got %d", len(tables))
	}
	if tables[0].Rows != 3 || tables[0].Cols != 2 {
		t.Errorf("expected 3x2 table, got %dx%d", tables[0].Rows, tables[0].Cols)
	}
}

func TestSpacingRegularity(t *testing.T) {
	if got := spacingRegularity([]float64{0, 100, 200, 300}); got != 1 {
		t.Errorf("expected perfect regularity for even spacing, got %v", got)
	}
	even := spacingRegularity([]float64{0, 100, 200})
	uneven := spacingRegularity([]float64{0, 30, 200})
	if uneven >= even {
		t.Errorf("expected uneven spacing to score lower: even=%v uneven=%v", even, uneven)
	}
}
