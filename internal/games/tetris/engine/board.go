// Package engine implements the falling-block game state: the settled board,
// piece shapes, collision, rotation with kicks, line clears, scoring, level
// progression and the drop scheduler.
//
// The package is pure: it performs no I/O, never reads the wall clock and has
// no dependency on the terminal layer. Time only enters through Session.Tick.
package engine

// Board dimensions in cells.
const (
	Width  = 10
	Height = 20
)

// Cell is a board or shape cell: 0 is empty, 1..7 is a piece color index.
type Cell uint8

// Empty is the zero cell.
const Empty Cell = 0

// maxCell is the largest valid color index.
const maxCell Cell = 7

// Board is the grid of settled cells. Row 0 is the top row.
// The zero value is an empty board.
type Board struct {
	cells [Height][Width]Cell
}

// At returns the cell at (x, y). Out-of-range coordinates read as Empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Empty
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-range coordinates and values outside 0..7 are ignored.
// Intended for building fixtures; gameplay mutates the board through Merge and
// SweepFullRows only.
func (b *Board) Set(x, y int, c Cell) {
	if x < 0 || x >= Width || y < 0 || y >= Height || c > maxCell {
		return
	}
	b.cells[y][x] = c
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [Height][Width]Cell {
	return b.cells
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.cells = [Height][Width]Cell{}
}

// Collide reports whether shape placed with its top-left corner at (px, py)
// hits a side wall, the floor, or an occupied cell.
// Cells above the top edge (y < 0) are not a collision on their own.
func (b *Board) Collide(shape Shape, px, py int) bool {
	for sy, row := range shape {
		for sx, c := range row {
			if c == Empty {
				continue
			}
			x, y := px+sx, py+sy
			if x < 0 || x >= Width || y >= Height {
				return true
			}
			if y < 0 {
				continue
			}
			if b.cells[y][x] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge writes every nonzero cell of shape at (px, py) into the board.
// Only empty in-bounds cells are written; callers validate the placement first.
func (b *Board) Merge(shape Shape, px, py int) {
	for sy, row := range shape {
		for sx, c := range row {
			if c == Empty || c > maxCell {
				continue
			}
			x, y := px+sx, py+sy
			if x < 0 || x >= Width || y < 0 || y >= Height {
				continue
			}
			if b.cells[y][x] == Empty {
				b.cells[y][x] = c
			}
		}
	}
}

// rowFull reports whether every cell of row y is occupied.
func (b *Board) rowFull(y int) bool {
	for x := range Width {
		if b.cells[y][x] == Empty {
			return false
		}
	}
	return true
}

// removeRow drops row y, shifts every row above it down by one and inserts an
// empty row at the top.
func (b *Board) removeRow(y int) {
	for r := y; r > 0; r-- {
		b.cells[r] = b.cells[r-1]
	}
	b.cells[0] = [Width]Cell{}
}

// SweepFullRows removes all full rows, scanning bottom to top. After a removal
// the same index is examined again because the rows above moved into it.
// It returns the number of rows removed and their indices as they were before
// the sweep, in discovery (bottom-to-top) order.
func (b *Board) SweepFullRows() (int, []int) {
	var cleared []int
	for y := Height - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}
		// Every row removed so far sat below y, so y started len(cleared) rows higher.
		cleared = append(cleared, y-len(cleared))
		b.removeRow(y)
	}
	return len(cleared), cleared
}
