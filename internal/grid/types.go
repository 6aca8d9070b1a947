// Package grid holds the simulation's plain-data model: the board, its
// tiles, and the value types threaded by reference through every system.
package grid

// Cell is an integer (x, y) grid coordinate. InvalidCell is the sentinel used
// when no cell is selected.
type Cell struct {
	X, Y int
}

// InvalidCell lies outside every grid by construction (negative coordinates).
var InvalidCell = Cell{X: -1, Y: -1}

// IsValid reports whether c could possibly address a cell (non-negative
// coordinates). Bounds-against-a-specific-grid checking is GameState.IsValid.
func (c Cell) IsValid() bool {
	return c.X >= 0 && c.Y >= 0
}

// Vec2 is a 2-D float64 value: a logical world-space position or a velocity.
// The core only ever carries logical coordinates — interpolation for display
// is a presentation concern left to callers.
type Vec2 struct {
	X, Y float64
}

// TileType identifies a configured color variant. TypeEmpty is the sentinel
// for an unoccupied cell.
type TileType uint8

// TypeEmpty marks a cell with no tile.
const TypeEmpty TileType = 0

// BombKind tags a tile as a power-up, or BombNone for an ordinary tile.
type BombKind uint8

const (
	BombNone BombKind = iota
	BombLineH
	BombLineV
	BombArea
	BombColorClear
)

func (b BombKind) String() string {
	switch b {
	case BombLineH:
		return "line-h"
	case BombLineV:
		return "line-v"
	case BombArea:
		return "area"
	case BombColorClear:
		return "color-clear"
	default:
		return "none"
	}
}

// IsLine reports whether b is either line-bomb orientation.
func (b BombKind) IsLine() bool {
	return b == BombLineH || b == BombLineV
}

// Tile is the simulation's fundamental value type.
type Tile struct {
	ID        int64
	Type      TileType
	Bomb      BombKind
	Pos       Vec2
	Vel       Vec2
	Suspended bool // true while being cleared/exploding; gravity ignores it
	Falling   bool // true from spawn or compaction until physics snaps it onto its cell's row
}

// EmptyTile is the zero-value sentinel occupying unoccupied cells.
var EmptyTile = Tile{Type: TypeEmpty}

// IsEmpty reports whether the cell holds no tile.
func (t Tile) IsEmpty() bool {
	return t.Type == TypeEmpty
}
