package model

import (
	"fmt"
	"strings"
)

// Table represents a detected grid of cells. Cells is row-major: it always
// holds exactly Rows rows of exactly Cols strings each. Missing cells are
// empty strings, never omitted.
type Table struct {
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Cells      [][]string `json:"cells"`
	BBox       BBox       `json:"bbox"`
	Confidence float64    `json:"confidence"`
}

// NewTable creates a table with the given dimensions, all cells empty.
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows:  rows,
		Cols:  cols,
		Cells: make([][]string, rows),
	}
	for i := 0; i < rows; i++ {
		table.Cells[i] = make([]string, cols)
	}
	return table
}

// Validate checks the grid rectangularity invariant.
func (t *Table) Validate() error {
	if t.Rows <= 0 || t.Cols <= 0 {
		return fmt.Errorf("table dimensions %dx%d must be positive", t.Rows, t.Cols)
	}
	if len(t.Cells) != t.Rows {
		return fmt.Errorf("table has %d cell rows, want %d", len(t.Cells), t.Rows)
	}
	for i, row := range t.Cells {
		if len(row) != t.Cols {
			return fmt.Errorf("table row %d has %d cells, want %d", i, len(row), t.Cols)
		}
	}
	return nil
}

// Cell returns the cell text at the given position, or "" when the indices
// are out of bounds.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Cells) {
		return ""
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return ""
	}
	return t.Cells[row][col]
}

// SetCell sets the cell text at the given position.
func (t *Table) SetCell(row, col int, text string) error {
	if row < 0 || row >= len(t.Cells) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Cells[row][col] = text
	return nil
}

// ToCSV converts the table to CSV format.
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Cells {
		for j, text := range row {
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// TableGrid represents the boundary coordinates of a detected grid.
// Rows holds Y coordinates sorted top to bottom; Cols holds X coordinates
// sorted left to right. A grid with n+1 row boundaries has n rows.
type TableGrid struct {
	Rows []float64 // Y coordinates of row boundaries
	Cols []float64 // X coordinates of column boundaries
}

// RowCount returns the number of rows.
func (g *TableGrid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of columns.
func (g *TableGrid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// CellBBox returns the bounding box for a cell, or the zero box when the
// indices are out of bounds.
func (g *TableGrid) CellBBox(row, col int) BBox {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return BBox{}
	}
	return BBox{
		Left:   g.Cols[col],
		Top:    g.Rows[row],
		Right:  g.Cols[col+1],
		Bottom: g.Rows[row+1],
	}
}

// BBox returns the overall bounding box of the grid.
func (g *TableGrid) BBox() BBox {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return BBox{}
	}
	return BBox{
		Left:   g.Cols[0],
		Top:    g.Rows[0],
		Right:  g.Cols[len(g.Cols)-1],
		Bottom: g.Rows[len(g.Rows)-1],
	}
}
