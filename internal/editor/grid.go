package editor

import (
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell is one character cell of the grid. Text holds a single grapheme
// cluster; Width is its monospace display width (2 for wide glyphs).
type Cell struct {
	Text  string
	Width int
}

// IsEmpty reports whether the cell holds no visible character.
func (c Cell) IsEmpty() bool {
	return c.Text == "" || c.Text == " "
}

// Grid is the shared character grid. Session ingestion writes it; the render
// path reads single cells through CellAt. Writers take the full lock; CellAt
// try-acquires so a contended frame fails fast with ErrGridBusy rather than
// blocking the render loop.
type Grid struct {
	mu    sync.RWMutex
	rows  uint32
	cols  uint32
	cells [][]Cell
}

// NewGrid creates a grid with the given dimensions.
func NewGrid(rows, cols uint32) *Grid {
	g := &Grid{}
	g.alloc(rows, cols)
	return g
}

func (g *Grid) alloc(rows, cols uint32) {
	g.rows = rows
	g.cols = cols
	g.cells = make([][]Cell, rows)
	for i := range g.cells {
		g.cells[i] = make([]Cell, cols)
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (rows, cols uint32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rows, g.cols
}

// Resize changes the grid dimensions, preserving overlapping content.
func (g *Grid) Resize(rows, cols uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	old := g.cells
	oldRows, oldCols := g.rows, g.cols
	g.alloc(rows, cols)
	for r := uint32(0); r < rows && r < oldRows; r++ {
		for c := uint32(0); c < cols && c < oldCols; c++ {
			g.cells[r][c] = old[r][c]
		}
	}
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = Cell{}
		}
	}
}

// SetLine writes cell contents starting at (row, startCol). Each entry is
// normalized to its first grapheme cluster; entries past the right edge are
// clipped. An out-of-range row is an error.
func (g *Grid) SetLine(row, startCol uint32, texts []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if row >= g.rows {
		return ErrCellOutOfRange
	}
	col := startCol
	for _, text := range texts {
		if col >= g.cols {
			break
		}
		g.cells[row][col] = makeCell(text)
		col++
	}
	return nil
}

// CellAt returns the cell at (row, col). Out-of-range coordinates read as an
// empty cell; a contended lock returns ErrGridBusy and the frame must be
// abandoned. The lock is released before CellAt returns, never held across a
// draw call.
func (g *Grid) CellAt(row, col uint32) (Cell, error) {
	if !g.mu.TryRLock() {
		return Cell{}, ErrGridBusy
	}
	defer g.mu.RUnlock()

	if row >= g.rows || col >= g.cols {
		return Cell{}, nil
	}
	return g.cells[row][col], nil
}

// makeCell normalizes arbitrary text to a single-cluster cell.
func makeCell(text string) Cell {
	if text == "" {
		return Cell{}
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	width := runewidth.StringWidth(cluster)
	if width < 1 {
		width = 1
	}
	return Cell{Text: cluster, Width: width}
}
