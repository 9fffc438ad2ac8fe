package layout

import (
	"testing"

	"github.com/tsawler/docintel/model"
)

// word is a test helper for building a word at a position.
func word(text string, left, top, right, bottom float64) model.Word {
	return model.NewWord(text, 0.9, model.NewBBox(left, top, right, bottom))
}

func TestSegmentEmptyInput(t *testing.T) {
	s := NewSegmenter()
	layout := s.Segment(nil, 612, 792)

	if len(layout.Header) != 0 || len(layout.Body) != 0 || len(layout.Footer) != 0 {
		t.Error("Empty input should yield empty regions")
	}
	if len(layout.Tables) != 0 {
		t.Error("Empty input should yield no tables")
	}
	if layout.PageWidth != 612 || layout.PageHeight != 792 {
		t.Errorf("Page dimensions not preserved: %fx%f", layout.PageWidth, layout.PageHeight)
	}
}

func TestSegmentGroupsWordsIntoLines(t *testing.T) {
	words := []model.Word{
		// One line, slightly jittered baselines.
		word("Invoice", 10, 100, 70, 115),
		word("Number:", 75, 102, 140, 116),
		word("INV-1", 145, 99, 190, 114),
		// A second line well below.
		word("Total:", 10, 200, 60, 215),
		word("$50", 65, 201, 95, 216),
	}

	s := NewSegmenter()
	layout := s.Segment(words, 600, 0)

	if len(layout.Body) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(layout.Body))
	}
	if layout.Body[0].Text != "Invoice Number: INV-1" {
		t.Errorf("Unexpected first line %q", layout.Body[0].Text)
	}
	if layout.Body[1].Text != "Total: $50" {
		t.Errorf("Unexpected second line %q", layout.Body[1].Text)
	}
}

func TestSegmentOrdersWordsWithinLine(t *testing.T) {
	// Words supplied out of reading order.
	words := []model.Word{
		word("world", 100, 10, 150, 25),
		word("hello", 10, 10, 60, 25),
	}

	s := NewSegmenter()
	layout := s.Segment(words, 600, 0)

	if len(layout.Body) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(layout.Body))
	}
	if layout.Body[0].Text != "hello world" {
		t.Errorf("Expected words sorted left to right, got %q", layout.Body[0].Text)
	}
}

func TestSegmentRegionAssignment(t *testing.T) {
	// Page height 900: header zone < 300, footer zone > 600.
	words := []model.Word{
		word("ACME", 10, 20, 80, 40),
		word("Corp", 90, 20, 140, 40),
		word("Details", 10, 400, 80, 420),
		word("Page", 10, 850, 50, 870),
		word("1", 55, 850, 65, 870),
	}

	s := NewSegmenter()
	layout := s.Segment(words, 600, 900)

	if len(layout.Header) != 1 || layout.Header[0].Text != "ACME Corp" {
		t.Errorf("Expected header line %q, got %+v", "ACME Corp", layout.Header)
	}
	if len(layout.Body) != 1 || layout.Body[0].Text != "Details" {
		t.Errorf("Expected body line %q, got %+v", "Details", layout.Body)
	}
	if len(layout.Footer) != 1 || layout.Footer[0].Text != "Page 1" {
		t.Errorf("Expected footer line %q, got %+v", "Page 1", layout.Footer)
	}
}

func TestSegmentFullPageSpan(t *testing.T) {
	// Lines spanning the full page height: topmost to header, bottommost
	// to footer, the rest to body.
	var words []model.Word
	for i := 0; i < 9; i++ {
		top := float64(i)*100 + 10
		words = append(words, word("line", 10, top, 60, top+15))
	}

	s := NewSegmenter()
	layout := s.Segment(words, 600, 900)

	if len(layout.Header) != 3 {
		t.Errorf("Expected 3 header lines, got %d", len(layout.Header))
	}
	if len(layout.Footer) != 3 {
		t.Errorf("Expected 3 footer lines, got %d", len(layout.Footer))
	}
	if len(layout.Body) != 3 {
		t.Errorf("Expected 3 body lines, got %d", len(layout.Body))
	}
	if layout.LineCount() != 9 {
		t.Errorf("Every word must land in exactly one line; got %d lines", layout.LineCount())
	}
}

func TestSegmentZeroPageHeightAllBody(t *testing.T) {
	words := []model.Word{
		word("top", 10, 5, 40, 20),
		word("bottom", 10, 880, 70, 895),
	}

	s := NewSegmenter()
	layout := s.Segment(words, 600, 0)

	if len(layout.Header) != 0 || len(layout.Footer) != 0 {
		t.Error("Zero page height must put all lines in body")
	}
	if len(layout.Body) != 2 {
		t.Errorf("Expected 2 body lines, got %d", len(layout.Body))
	}
}

func TestSegmentEveryWordAccounted(t *testing.T) {
	words := []model.Word{
		word("a", 0, 0, 10, 10),
		word("b", 20, 2, 30, 12),
		word("c", 0, 50, 10, 60),
		word("d", 0, 100, 10, 110),
	}

	s := NewSegmenter()
	layout := s.Segment(words, 100, 120)

	total := 0
	for _, line := range layout.AllLines() {
		total += len(line.Words)
	}
	if total != len(words) {
		t.Errorf("Expected %d words across all lines, got %d", len(words), total)
	}
}

func TestSegmenterConfigDefaultsApplied(t *testing.T) {
	s := NewSegmenterWithConfig(Config{HeaderFraction: 0.25, FooterFraction: 0.25})
	if s.config.LineTolerance != DefaultConfig().LineTolerance {
		t.Errorf("Zero LineTolerance should fall back to default, got %f", s.config.LineTolerance)
	}
}
