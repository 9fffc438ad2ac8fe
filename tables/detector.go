package tables

import (
	"image"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/docintel/model"
	"github.com/tsawler/docintel/scan"
)

// Config holds table detection parameters.
type Config struct {
	// MinRows is the minimum number of rows for a boundary set to count
	// as a table.
	MinRows int

	// MinCols is the minimum number of columns.
	MinCols int

	// MinConfidence is the score below which a candidate grid is
	// rejected.
	MinConfidence float64

	// AlignmentTolerance is the maximum distance, in pixels, between
	// segments considered aligned on the same boundary.
	AlignmentTolerance float64

	// MinLineLength is the minimum segment length, in pixels, for a
	// segment to participate in grid detection.
	MinLineLength float64
}

// DefaultConfig returns the default detection parameters.
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
		AlignmentTolerance: 5.0,
		MinLineLength:      40.0,
	}
}

// Weights for blending the two grid quality signals.
const (
	intersectionWeight = 0.6
	regularityWeight   = 0.4
)

// Detector finds table grids in page images.
type Detector struct {
	config  Config
	scanner scan.LineScanner
}

// NewDetector creates a detector with default configuration and a raster
// line scanner.
func NewDetector() *Detector {
	return NewDetectorWithScanner(scan.NewRasterScanner(), DefaultConfig())
}

// NewDetectorWithConfig creates a detector with custom configuration and a
// raster line scanner.
func NewDetectorWithConfig(config Config) *Detector {
	return NewDetectorWithScanner(scan.NewRasterScanner(), config)
}

// NewDetectorWithScanner creates a detector using the given line scanner.
func NewDetectorWithScanner(scanner scan.LineScanner, config Config) *Detector {
	def := DefaultConfig()
	if config.MinRows <= 0 {
		config.MinRows = def.MinRows
	}
	if config.MinCols <= 0 {
		config.MinCols = def.MinCols
	}
	if config.AlignmentTolerance <= 0 {
		config.AlignmentTolerance = def.AlignmentTolerance
	}
	if config.MinLineLength <= 0 {
		config.MinLineLength = def.MinLineLength
	}
	return &Detector{config: config, scanner: scanner}
}

// Detect finds tables in the page image and fills their cells from the
// layout. A nil image means no raster is available and yields no tables.
// Scanner failures and noisy images also yield an empty result; table
// detection never fails a pipeline.
func (d *Detector) Detect(img image.Image, layout *model.DocumentLayout) []*model.Table {
	if img == nil {
		return nil
	}

	horizontals, verticals, err := d.scanner.Scan(img)
	if err != nil {
		return nil
	}
	return d.DetectFromSegments(horizontals, verticals, layout)
}

// DetectFromSegments runs grid detection on pre-scanned line segments.
func (d *Detector) DetectFromSegments(horizontals, verticals []scan.Segment, layout *model.DocumentLayout) []*model.Table {
	horizontals = d.filterByLength(horizontals)
	verticals = d.filterByLength(verticals)

	if len(horizontals) < d.config.MinRows+1 || len(verticals) < d.config.MinCols+1 {
		return nil
	}

	hGroups := d.groupAligned(horizontals, true)
	vGroups := d.groupAligned(verticals, false)

	grid, hGroups, vGroups := d.buildGrid(hGroups, vGroups)
	if grid == nil {
		return nil
	}

	confidence := d.gridConfidence(grid, hGroups, vGroups)
	if confidence < d.config.MinConfidence {
		return nil
	}

	table := d.fillCells(grid, layout)
	table.Confidence = confidence
	return []*model.Table{table}
}

// filterByLength drops segments shorter than the minimum line length.
func (d *Detector) filterByLength(segments []scan.Segment) []scan.Segment {
	result := make([]scan.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Length() >= d.config.MinLineLength {
			result = append(result, seg)
		}
	}
	return result
}

// alignedGroup is a cluster of segments sharing one boundary position.
type alignedGroup struct {
	// Position on the alignment axis: Y for horizontal groups, X for
	// vertical ones.
	Position float64

	// Extent of the cluster on the perpendicular axis.
	MinExtent float64
	MaxExtent float64

	Count int
}

// contains reports whether the group's extent covers the given coordinate,
// within the alignment tolerance.
func (g alignedGroup) contains(v, tolerance float64) bool {
	return v >= g.MinExtent-tolerance && v <= g.MaxExtent+tolerance
}

// groupAligned clusters segments whose positions fall within the alignment
// tolerance, tracking a running average position per cluster.
func (d *Detector) groupAligned(segments []scan.Segment, horizontal bool) []alignedGroup {
	if len(segments) == 0 {
		return nil
	}

	position := func(seg scan.Segment) float64 {
		if horizontal {
			return (seg.Start.Y + seg.End.Y) / 2
		}
		return (seg.Start.X + seg.End.X) / 2
	}
	extent := func(seg scan.Segment) (float64, float64) {
		if horizontal {
			return math.Min(seg.Start.X, seg.End.X), math.Max(seg.Start.X, seg.End.X)
		}
		return math.Min(seg.Start.Y, seg.End.Y), math.Max(seg.Start.Y, seg.End.Y)
	}

	sorted := make([]scan.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return position(sorted[i]) < position(sorted[j])
	})

	var groups []alignedGroup
	for _, seg := range sorted {
		pos := position(seg)
		lo, hi := extent(seg)

		if len(groups) > 0 {
			current := &groups[len(groups)-1]
			if pos-current.Position <= d.config.AlignmentTolerance {
				current.Position = (current.Position*float64(current.Count) + pos) / float64(current.Count+1)
				current.Count++
				current.MinExtent = math.Min(current.MinExtent, lo)
				current.MaxExtent = math.Max(current.MaxExtent, hi)
				continue
			}
		}
		groups = append(groups, alignedGroup{
			Position:  pos,
			MinExtent: lo,
			MaxExtent: hi,
			Count:     1,
		})
	}
	return groups
}

// buildGrid turns aligned groups into row and column boundaries, keeping
// only groups that span at least half of the candidate grid on their
// perpendicular axis. It returns nil when no boundary set satisfies the
// minimum table shape.
func (d *Detector) buildGrid(hGroups, vGroups []alignedGroup) (*model.TableGrid, []alignedGroup, []alignedGroup) {
	if len(hGroups) < d.config.MinRows+1 || len(vGroups) < d.config.MinCols+1 {
		return nil, nil, nil
	}

	left, right := positionRange(vGroups)
	top, bottom := positionRange(hGroups)
	if right <= left || bottom <= top {
		return nil, nil, nil
	}

	hGroups = filterBySpan(hGroups, left, right)
	vGroups = filterBySpan(vGroups, top, bottom)
	if len(hGroups) < d.config.MinRows+1 || len(vGroups) < d.config.MinCols+1 {
		return nil, nil, nil
	}

	grid := &model.TableGrid{
		Rows: make([]float64, len(hGroups)),
		Cols: make([]float64, len(vGroups)),
	}
	for i, g := range hGroups {
		grid.Rows[i] = g.Position
	}
	for i, g := range vGroups {
		grid.Cols[i] = g.Position
	}
	return grid, hGroups, vGroups
}

// positionRange returns the minimum and maximum group positions.
func positionRange(groups []alignedGroup) (min, max float64) {
	min, max = groups[0].Position, groups[0].Position
	for _, g := range groups[1:] {
		min = math.Min(min, g.Position)
		max = math.Max(max, g.Position)
	}
	return min, max
}

// filterBySpan keeps groups whose extent covers at least half of the
// candidate grid span.
func filterBySpan(groups []alignedGroup, spanMin, spanMax float64) []alignedGroup {
	required := (spanMax - spanMin) * 0.5
	result := make([]alignedGroup, 0, len(groups))
	for _, g := range groups {
		if g.MaxExtent-g.MinExtent >= required {
			result = append(result, g)
		}
	}
	return result
}

// gridConfidence scores a candidate grid by blending two signals: the
// fraction of boundary intersections actually covered by scanned segments,
// and the regularity of row and column spacing.
func (d *Detector) gridConfidence(grid *model.TableGrid, hGroups, vGroups []alignedGroup) float64 {
	tol := d.config.AlignmentTolerance

	wellFormed := 0
	expected := len(grid.Rows) * len(grid.Cols)
	for i, y := range grid.Rows {
		for j, x := range grid.Cols {
			if hGroups[i].contains(x, tol) && vGroups[j].contains(y, tol) {
				wellFormed++
			}
		}
	}
	intersectionScore := 0.0
	if expected > 0 {
		intersectionScore = float64(wellFormed) / float64(expected)
	}

	regularity := (spacingRegularity(grid.Rows) + spacingRegularity(grid.Cols)) / 2

	return intersectionWeight*intersectionScore + regularityWeight*regularity
}

// spacingRegularity scores how even the gaps between boundaries are, using
// the coefficient of variation of the spacing.
func spacingRegularity(boundaries []float64) float64 {
	if len(boundaries) < 3 {
		return 1
	}
	gaps := make([]float64, len(boundaries)-1)
	for i := range gaps {
		gaps[i] = boundaries[i+1] - boundaries[i]
	}

	mean := 0.0
	for _, g := range gaps {
		mean += g
	}
	mean /= float64(len(gaps))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, g := range gaps {
		diff := g - mean
		variance += diff * diff
	}
	variance /= float64(len(gaps))

	return math.Max(0, 1-math.Sqrt(variance)/mean)
}

// fillCells builds the table and assigns each layout word to the cell
// containing its center. Words inside a cell keep their reading order.
func (d *Detector) fillCells(grid *model.TableGrid, layout *model.DocumentLayout) *model.Table {
	rows, cols := grid.RowCount(), grid.ColCount()
	table := model.NewTable(rows, cols)
	table.BBox = grid.BBox()

	if layout == nil {
		return table
	}

	cellWords := make([][][]string, rows)
	for r := range cellWords {
		cellWords[r] = make([][]string, cols)
	}

	for _, line := range layout.AllLines() {
		for _, word := range line.Words {
			r, c, ok := d.locateCell(grid, word.BBox.Center())
			if !ok {
				continue
			}
			cellWords[r][c] = append(cellWords[r][c], word.Text)
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			table.Cells[r][c] = strings.Join(cellWords[r][c], " ")
		}
	}
	return table
}

// locateCell finds the cell containing the point, if any.
func (d *Detector) locateCell(grid *model.TableGrid, p model.Point) (row, col int, ok bool) {
	row = sort.SearchFloat64s(grid.Rows, p.Y) - 1
	col = sort.SearchFloat64s(grid.Cols, p.X) - 1
	if row < 0 || row >= grid.RowCount() || col < 0 || col >= grid.ColCount() {
		return 0, 0, false
	}
	return row, col, true
}
