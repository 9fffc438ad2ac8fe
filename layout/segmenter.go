package layout

import (
	"sort"

	"github.com/tsawler/docintel/model"
)

// Config holds segmentation parameters.
type Config struct {
	// LineTolerance is the maximum vertical-center distance, in pixels,
	// for two words to share a line.
	LineTolerance float64

	// HeaderFraction is the fraction of the page height, measured from
	// the top, that counts as the header zone.
	HeaderFraction float64

	// FooterFraction is the fraction of the page height, measured from
	// the bottom, that counts as the footer zone.
	FooterFraction float64
}

// DefaultConfig returns the default segmentation parameters: a 10 pixel
// line band and header/footer zones of one third of the page each.
func DefaultConfig() Config {
	return Config{
		LineTolerance:  10.0,
		HeaderFraction: 1.0 / 3.0,
		FooterFraction: 1.0 / 3.0,
	}
}

// Segmenter groups words into lines and lines into page regions.
type Segmenter struct {
	config Config
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration.
func NewSegmenterWithConfig(config Config) *Segmenter {
	if config.LineTolerance <= 0 {
		config.LineTolerance = DefaultConfig().LineTolerance
	}
	return &Segmenter{config: config}
}

// Segment builds a DocumentLayout from positioned words. Every input word
// lands in exactly one line and every line in exactly one region. Empty
// input yields an empty layout; a zero page height puts all lines in the
// body. Segment never fails: malformed word geometry has already been
// normalized at construction time.
func (s *Segmenter) Segment(words []model.Word, pageWidth, pageHeight float64) model.DocumentLayout {
	layout := model.DocumentLayout{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
	}
	if len(words) == 0 {
		return layout
	}

	lines := s.clusterLines(words)

	headerLimit := pageHeight * s.config.HeaderFraction
	footerLimit := pageHeight * (1 - s.config.FooterFraction)

	for _, line := range lines {
		switch {
		case pageHeight <= 0:
			layout.Body = append(layout.Body, line)
		case line.BBox.Top < headerLimit:
			layout.Header = append(layout.Header, line)
		case line.BBox.Top > footerLimit:
			layout.Footer = append(layout.Footer, line)
		default:
			layout.Body = append(layout.Body, line)
		}
	}

	return layout
}

// clusterLines groups words into lines by vertical-center bands and
// returns the lines sorted top to bottom.
func (s *Segmenter) clusterLines(words []model.Word) []model.TextLine {
	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Center().Y < sorted[j].BBox.Center().Y
	})

	var groups [][]model.Word
	current := []model.Word{sorted[0]}
	bandCenter := sorted[0].BBox.Center().Y

	for _, w := range sorted[1:] {
		center := w.BBox.Center().Y
		if center-bandCenter <= s.config.LineTolerance {
			current = append(current, w)
			// Track the running average so slowly drifting baselines
			// stay in one band.
			bandCenter = (bandCenter*float64(len(current)-1) + center) / float64(len(current))
		} else {
			groups = append(groups, current)
			current = []model.Word{w}
			bandCenter = center
		}
	}
	groups = append(groups, current)

	lines := make([]model.TextLine, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].BBox.Left < group[j].BBox.Left
		})
		lines = append(lines, model.NewTextLine(group))
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].BBox.Top < lines[j].BBox.Top
	})
	return lines
}
