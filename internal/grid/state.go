package grid

import (
	"fmt"

	"match3core/internal/rngdomain"
	"match3core/internal/simerr"
)

// GameState is the owning container threaded by mutable reference through
// every system. It is cheap to Clone: the cell array and the RNG stream
// state are duplicated, never shared, so AI search can branch
// independently.
type GameState struct {
	Width, Height  int
	TileTypesCount int
	Cells          []Tile // index = y*Width + x

	Score      int64
	MoveCount  int64
	NextTileID int64

	MoveLimit        int32
	TargetDifficulty float32

	Selected Cell

	RNG *rngdomain.SeedManager

	// Config carries the physics/refill tunables the board was built with,
	// so systems downstream (gravity, refill) do not need a second
	// construction-time input threaded separately.
	Config GameConfig
}

// NewGameState builds an empty board of the given shape. Every cell starts
// as EmptyTile; callers populate it via board initialization before handing
// it to the game loop.
func NewGameState(cfg GameConfig, rng *rngdomain.SeedManager) (*GameState, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.TileTypesCount < 3 {
		return nil, simerr.Wrap(simerr.ErrInvalidDimensions,
			fmt.Sprintf("width=%d height=%d tileTypesCount=%d", cfg.Width, cfg.Height, cfg.TileTypesCount))
	}

	gs := &GameState{
		Width:            cfg.Width,
		Height:           cfg.Height,
		TileTypesCount:   cfg.TileTypesCount,
		Cells:            make([]Tile, cfg.Width*cfg.Height),
		MoveLimit:        cfg.MoveLimit,
		TargetDifficulty: cfg.TargetDifficulty,
		Selected:         InvalidCell,
		RNG:              rng,
		Config:           cfg,
	}
	for i := range gs.Cells {
		gs.Cells[i] = EmptyTile
	}
	return gs, nil
}

// Index computes the flat array index for (x, y). Callers must ensure the
// coordinates are in bounds; use IsValid first if unsure.
func (g *GameState) Index(x, y int) int {
	return y*g.Width + x
}

// IsValid reports whether c addresses a cell within this grid.
func (g *GameState) IsValid(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Get returns the tile at (x, y).
func (g *GameState) Get(x, y int) Tile {
	return g.Cells[g.Index(x, y)]
}

// Set writes the tile at (x, y).
func (g *GameState) Set(x, y int, t Tile) {
	g.Cells[g.Index(x, y)] = t
}

// At returns the tile at cell c.
func (g *GameState) At(c Cell) Tile {
	return g.Get(c.X, c.Y)
}

// SetAt writes the tile at cell c.
func (g *GameState) SetAt(c Cell, t Tile) {
	g.Set(c.X, c.Y, t)
}

// CellOf returns the (x, y) cell of a flat index.
func (g *GameState) CellOf(index int) Cell {
	return Cell{X: index % g.Width, Y: index / g.Width}
}

// NewTileID mints the next monotonic tile id. NextTileID must always
// strictly exceed every live id.
func (g *GameState) NewTileID() int64 {
	id := g.NextTileID
	g.NextTileID++
	return id
}

// Clone duplicates the cell array and the RNG state so the returned state
// shares no mutable memory with g — the purity contract preview_move and
// MCTS branching depend on.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Cells = append([]Tile(nil), g.Cells...)
	if g.Config.TypeWeights != nil {
		c.Config.TypeWeights = append([]float64(nil), g.Config.TypeWeights...)
	}
	c.RNG = g.RNG.Clone()
	return &c
}

// Adjacent reports whether a and b are orthogonally adjacent cells.
func Adjacent(a, b Cell) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}
