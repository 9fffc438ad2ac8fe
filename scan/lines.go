// Package scan detects straight line segments in rasterized page images.
//
// The scanner is deliberately stateless and hidden behind the LineScanner
// interface so table detection can be exercised in tests with synthetic
// line sets instead of real images.
package scan

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/docintel/model"
)

// Segment is one detected straight line segment in page pixel coordinates.
type Segment struct {
	Start model.Point
	End   model.Point
}

// Length returns the segment's length.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// LineScanner finds strong horizontal and vertical line segments in a page
// image. Implementations must be safe for concurrent use: a scanner may be
// shared by pipelines running in parallel.
type LineScanner interface {
	Scan(img image.Image) (horizontals, verticals []Segment, err error)
}

// Config holds raster scanning parameters.
type Config struct {
	// InkThreshold is the grayscale level (0-255) at or below which a
	// pixel counts as ink.
	InkThreshold uint8

	// MinLineLength is the minimum run length, in pixels, for a run of
	// ink to count as a line segment.
	MinLineLength int

	// MaxGap is the maximum number of consecutive blank pixels bridged
	// within a run.
	MaxGap int

	// MaxDimension caps the larger image dimension; larger images are
	// downscaled before scanning and the detected segments are scaled
	// back to the original coordinates.
	MaxDimension int
}

// DefaultConfig returns the default scanning parameters.
func DefaultConfig() Config {
	return Config{
		InkThreshold:  128,
		MinLineLength: 80,
		MaxGap:        3,
		MaxDimension:  2400,
	}
}

// RasterScanner detects line segments by binarizing the image and finding
// long runs of dark pixels along each axis.
type RasterScanner struct {
	config Config
}

// NewRasterScanner creates a scanner with default configuration.
func NewRasterScanner() *RasterScanner {
	return &RasterScanner{config: DefaultConfig()}
}

// NewRasterScannerWithConfig creates a scanner with custom configuration.
func NewRasterScannerWithConfig(config Config) *RasterScanner {
	def := DefaultConfig()
	if config.MinLineLength <= 0 {
		config.MinLineLength = def.MinLineLength
	}
	if config.MaxDimension <= 0 {
		config.MaxDimension = def.MaxDimension
	}
	return &RasterScanner{config: config}
}

// Decode decodes PNG, JPEG, TIFF or BMP image data.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode page image: %w", err)
	}
	return img, nil
}

// Scan finds horizontal and vertical line segments. A blank or noisy image
// simply yields few or no segments; Scan does not fail on image content.
func (s *RasterScanner) Scan(img image.Image) (horizontals, verticals []Segment, err error) {
	if img == nil {
		return nil, nil, nil
	}

	img, scale := s.downscale(img)
	ink := s.binarize(img)

	horizontals = s.scanRuns(ink, true, scale)
	verticals = s.scanRuns(ink, false, scale)
	return horizontals, verticals, nil
}

// inkMap is a binarized image: true means ink.
type inkMap struct {
	pixels []bool
	width  int
	height int
}

func (m *inkMap) at(x, y int) bool {
	return m.pixels[y*m.width+x]
}

// downscale shrinks the image when its larger dimension exceeds the cap,
// returning the working image and the factor mapping scanned coordinates
// back to the original.
func (s *RasterScanner) downscale(img image.Image) (image.Image, float64) {
	b := img.Bounds()
	longest := b.Dx()
	if b.Dy() > longest {
		longest = b.Dy()
	}
	if longest <= s.config.MaxDimension {
		return img, 1
	}

	scale := float64(longest) / float64(s.config.MaxDimension)
	dst := image.NewGray(image.Rect(0, 0,
		int(float64(b.Dx())/scale), int(float64(b.Dy())/scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, scale
}

// binarize thresholds the image into an ink map.
func (s *RasterScanner) binarize(img image.Image) *inkMap {
	b := img.Bounds()
	m := &inkMap{
		pixels: make([]bool, b.Dx()*b.Dy()),
		width:  b.Dx(),
		height: b.Dy(),
	}
	threshold := uint32(s.config.InkThreshold) << 8
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// Luma approximation, 16-bit channels.
			gray := (r*299 + g*587 + bl*114) / 1000
			m.pixels[i] = gray <= threshold
			i++
		}
	}
	return m
}

// scanRuns walks every row (horizontal) or column (vertical) of the ink
// map and emits runs of ink at least MinLineLength long, bridging gaps of
// up to MaxGap blank pixels.
func (s *RasterScanner) scanRuns(ink *inkMap, horizontal bool, scale float64) []Segment {
	var segments []Segment

	outer, inner := ink.height, ink.width
	if !horizontal {
		outer, inner = ink.width, ink.height
	}

	for o := 0; o < outer; o++ {
		runStart := -1
		gap := 0
		runEnd := -1
		for i := 0; i < inner; i++ {
			var isInk bool
			if horizontal {
				isInk = ink.at(i, o)
			} else {
				isInk = ink.at(o, i)
			}

			if isInk {
				if runStart < 0 {
					runStart = i
				}
				runEnd = i
				gap = 0
				continue
			}
			if runStart < 0 {
				continue
			}
			gap++
			if gap > s.config.MaxGap {
				segments = s.emit(segments, horizontal, o, runStart, runEnd, scale)
				runStart = -1
				runEnd = -1
				gap = 0
			}
		}
		if runStart >= 0 {
			segments = s.emit(segments, horizontal, o, runStart, runEnd, scale)
		}
	}

	return segments
}

// emit appends a run as a segment when it is long enough.
func (s *RasterScanner) emit(segments []Segment, horizontal bool, axis, start, end int, scale float64) []Segment {
	if end-start+1 < s.config.MinLineLength {
		return segments
	}
	if horizontal {
		return append(segments, Segment{
			Start: model.Point{X: float64(start) * scale, Y: float64(axis) * scale},
			End:   model.Point{X: float64(end) * scale, Y: float64(axis) * scale},
		})
	}
	return append(segments, Segment{
		Start: model.Point{X: float64(axis) * scale, Y: float64(start) * scale},
		End:   model.Point{X: float64(axis) * scale, Y: float64(end) * scale},
	})
}
