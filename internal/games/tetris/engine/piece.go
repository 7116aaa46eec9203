package engine

// PieceType identifies one of the seven tetrominoes.
// The numeric value doubles as the piece's color index.
type PieceType Cell

const (
	PieceT PieceType = iota + 1
	PieceO
	PieceL
	PieceJ
	PieceI
	PieceS
	PieceZ
)

// AllPieces lists the piece types in color-index order.
var AllPieces = [...]PieceType{PieceT, PieceO, PieceL, PieceJ, PieceI, PieceS, PieceZ}

// String returns the single-letter name of the piece.
func (p PieceType) String() string {
	switch p {
	case PieceT:
		return "T"
	case PieceO:
		return "O"
	case PieceL:
		return "L"
	case PieceJ:
		return "J"
	case PieceI:
		return "I"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Shape is a square matrix of cells. Shapes are treated as immutable:
// rotation and creation always return fresh matrices.
type Shape [][]Cell

// Size returns the side length of the matrix.
func (s Shape) Size() int {
	return len(s)
}

// Width returns the number of columns in the first row.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Type returns the piece type of the shape from its first nonzero cell.
func (s Shape) Type() PieceType {
	for _, row := range s {
		for _, c := range row {
			if c != Empty {
				return PieceType(c)
			}
		}
	}
	return 0
}

// canonical holds the spawn orientation of every piece. Never handed out directly.
var canonical = map[PieceType]Shape{
	PieceT: {{0, 1, 0}, {1, 1, 1}, {0, 0, 0}},
	PieceO: {{2, 2}, {2, 2}},
	PieceL: {{0, 0, 3}, {3, 3, 3}, {0, 0, 0}},
	PieceJ: {{4, 0, 0}, {4, 4, 4}, {0, 0, 0}},
	PieceI: {{0, 0, 0, 0}, {5, 5, 5, 5}, {0, 0, 0, 0}, {0, 0, 0, 0}},
	PieceS: {{0, 6, 6}, {6, 6, 0}, {0, 0, 0}},
	PieceZ: {{7, 7, 0}, {0, 7, 7}, {0, 0, 0}},
}

// Create returns a fresh copy of the canonical shape for the given type.
// Unknown types yield a 1x1 empty shape.
func Create(t PieceType) Shape {
	s, ok := canonical[t]
	if !ok {
		return Shape{{Empty}}
	}
	return s.Clone()
}

// Randomizer is the source of randomness for piece selection.
// *math/rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Catalog draws pieces. Every draw is independent and uniform over the seven
// types; there is no bag, so repeats and streaks are possible.
type Catalog struct {
	rng Randomizer
}

// NewCatalog creates a catalog drawing from rng.
func NewCatalog(rng Randomizer) *Catalog {
	return &Catalog{rng: rng}
}

// DrawType picks a piece type.
func (c *Catalog) DrawType() PieceType {
	return AllPieces[c.rng.Intn(len(AllPieces))]
}

// DrawRandom picks a piece type and returns its shape.
func (c *Catalog) DrawRandom() Shape {
	return Create(c.DrawType())
}
