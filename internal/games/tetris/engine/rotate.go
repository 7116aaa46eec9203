package engine

// Piece is a shape placed on the board by its top-left corner.
type Piece struct {
	Shape Shape
	X, Y  int
}

// Rotate returns shape rotated a quarter turn: clockwise when dir > 0,
// counter-clockwise otherwise. Both directions transpose the matrix; clockwise
// then reverses each row, counter-clockwise reverses the row order.
// The input is never modified.
func Rotate(shape Shape, dir int) Shape {
	n := len(shape)
	out := make(Shape, n)
	for y := range n {
		out[y] = make([]Cell, n)
		for x := range n {
			out[y][x] = shape[x][y]
		}
	}

	if dir > 0 {
		for _, row := range out {
			for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
		return out
	}

	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// nextKick advances the kick offset sequence 1, -2, 3, -4, 5, ...
func nextKick(offset int) int {
	if offset > 0 {
		return -(offset + 1)
	}
	return -(offset - 1)
}

// ResolveRotation rotates p and repairs a colliding result by shifting it
// horizontally. Shifts accumulate from the starting column: +1, -2, +3, -4...
// (net +1, -1, +2, -2...). The search stops as soon as the next offset
// exceeds the rotated shape's width, in which case p is returned unchanged
// with ok false.
func ResolveRotation(b *Board, p Piece, dir int) (Piece, bool) {
	rotated := Piece{Shape: Rotate(p.Shape, dir), X: p.X, Y: p.Y}

	offset := 1
	for b.Collide(rotated.Shape, rotated.X, rotated.Y) {
		rotated.X += offset
		offset = nextKick(offset)
		if offset > rotated.Shape.Width() {
			return p, false
		}
	}
	return rotated, true
}
