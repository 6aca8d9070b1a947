package physics

import (
	"testing"

	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/rngdomain"
)

func newStable(t *testing.T, w, h int) *grid.GameState {
	t.Helper()
	cfg := grid.DefaultGameConfig()
	cfg.Width, cfg.Height = w, h
	gs, err := grid.NewGameState(cfg, rngdomain.NewSeedManager(1))
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	return gs
}

func TestUpdateAdvancesFallingTileAndSnaps(t *testing.T) {
	gs := newStable(t, 1, 3)
	tile := grid.Tile{ID: gs.NewTileID(), Type: 1, Falling: true, Pos: grid.Vec2{X: 0, Y: 0}}
	gs.Set(0, 2, tile)

	for i := 0; i < 1000 && gs.Get(0, 2).Falling; i++ {
		Update(gs, 1.0/60.0)
	}

	got := gs.Get(0, 2)
	if got.Falling {
		t.Fatal("expected tile to eventually stop falling")
	}
	if got.Pos.Y != 2 {
		t.Fatalf("expected position snapped to row 2, got %v", got.Pos.Y)
	}
	if got.Vel.Y != 0 {
		t.Fatalf("expected velocity reset to 0, got %v", got.Vel.Y)
	}
}

func TestIsStableReflectsFallingAndSuspended(t *testing.T) {
	gs := newStable(t, 1, 1)
	if !IsStable(gs) {
		t.Fatal("expected empty board to be stable")
	}

	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1, Falling: true})
	if IsStable(gs) {
		t.Fatal("expected a falling tile to make the board unstable")
	}

	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1, Suspended: true})
	if IsStable(gs) {
		t.Fatal("expected a suspended tile to make the board unstable")
	}
}

func TestCompactShiftsTileIntoGapAndMarksFalling(t *testing.T) {
	gs := newStable(t, 1, 3)
	above := grid.Tile{ID: gs.NewTileID(), Type: 2, Pos: grid.Vec2{X: 0, Y: 1}}
	gs.Set(0, 1, above)
	// row 2 (bottom) is empty; row 1 holds an eligible tile.

	Compact(gs, events.NullCollector)

	if !gs.Get(0, 1).IsEmpty() {
		t.Fatal("expected source cell to become empty after compaction")
	}
	moved := gs.Get(0, 2)
	if moved.IsEmpty() {
		t.Fatal("expected destination cell to receive the tile")
	}
	if !moved.Falling {
		t.Fatal("expected the reassigned tile to be marked falling")
	}
	if moved.ID != above.ID {
		t.Fatalf("expected the same tile id to move, got %d want %d", moved.ID, above.ID)
	}
}

func TestCompactSkipsSuspendedAndFallingSources(t *testing.T) {
	gs := newStable(t, 1, 2)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1, Suspended: true})

	Compact(gs, events.NullCollector)

	if gs.Get(0, 1).IsEmpty() == false {
		t.Fatal("suspended tile must not be pulled down by compaction")
	}

	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1, Falling: true})

	Compact(gs, events.NullCollector)

	if gs.Get(0, 1).IsEmpty() == false {
		t.Fatal("falling tile must not be pulled down by compaction")
	}
}

func TestCompactEmitsTileMoved(t *testing.T) {
	gs := newStable(t, 1, 2)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})

	c := events.NewBufferedCollector(4)
	Compact(gs, c)

	got := c.GetEvents()
	if len(got) != 1 {
		t.Fatalf("expected exactly one TileMoved event, got %d", len(got))
	}
	if got[0].Type != events.TypeTileMoved {
		t.Fatalf("expected TypeTileMoved, got %v", got[0].Type)
	}
}
