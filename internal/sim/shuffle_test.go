package sim

import (
	"testing"

	"match3core/internal/grid"
)

func TestHasAnyLegalMoveTrueWhenASwapWouldMatch(t *testing.T) {
	gs := newBoard(t, 5, 1)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(1, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(2, 0, grid.Tile{ID: gs.NewTileID(), Type: 2})
	gs.Set(3, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})

	eng := New(gs, DefaultConfig())
	if !eng.HasAnyLegalMove() {
		t.Fatal("expected a legal move to be detected")
	}
	// board must be left untouched by the probe
	if gs.Get(2, 0).Type != 2 || gs.Get(3, 0).Type != 1 {
		t.Fatal("expected HasAnyLegalMove to leave the board unchanged")
	}
}

func TestHasAnyLegalMoveFalseOnATooSmallBoard(t *testing.T) {
	gs := newBoard(t, 2, 2)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(1, 0, grid.Tile{ID: gs.NewTileID(), Type: 2})
	gs.Set(0, 1, grid.Tile{ID: gs.NewTileID(), Type: 3})
	gs.Set(1, 1, grid.Tile{ID: gs.NewTileID(), Type: 4})

	eng := New(gs, DefaultConfig())
	if eng.HasAnyLegalMove() {
		t.Fatal("a 2x2 board can never contain a run of 3, so no swap should qualify")
	}
}

func TestShuffleIfStuckNoOpWhenAMoveExists(t *testing.T) {
	gs := newBoard(t, 5, 1)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(1, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(2, 0, grid.Tile{ID: gs.NewTileID(), Type: 2})
	gs.Set(3, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	before := gs.Clone()

	eng := New(gs, DefaultConfig())
	if eng.ShuffleIfStuck() {
		t.Fatal("expected no shuffle when a legal move already exists")
	}
	for i := range gs.Cells {
		if gs.Cells[i] != before.Cells[i] {
			t.Fatal("expected board unchanged when a legal move already exists")
		}
	}
}

func TestShuffleIfStuckPreservesOccupancyAndIDs(t *testing.T) {
	gs := newBoard(t, 2, 2)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(1, 0, grid.Tile{ID: gs.NewTileID(), Type: 2})
	gs.Set(0, 1, grid.Tile{ID: gs.NewTileID(), Type: 3})
	gs.Set(1, 1, grid.Tile{ID: gs.NewTileID(), Type: 4})

	idBefore := map[grid.Cell]int64{}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := grid.Cell{X: x, Y: y}
			idBefore[c] = gs.At(c).ID
		}
	}

	eng := New(gs, DefaultConfig())
	if !eng.ShuffleIfStuck() {
		t.Fatal("expected a stuck 2x2 board to shuffle")
	}

	for c, id := range idBefore {
		tile := gs.At(c)
		if tile.ID != id {
			t.Fatalf("expected tile id at %v unchanged by shuffle, got %d want %d", c, tile.ID, id)
		}
		if tile.IsEmpty() {
			t.Fatalf("expected cell %v to stay occupied after shuffle", c)
		}
	}
}
