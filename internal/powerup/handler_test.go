package powerup

import (
	"testing"

	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/metrics"
	"match3core/internal/rngdomain"
)

func newBoard(t *testing.T, w, h int) *grid.GameState {
	t.Helper()
	cfg := grid.DefaultGameConfig()
	cfg.Width, cfg.Height = w, h
	gs, err := grid.NewGameState(cfg, rngdomain.NewSeedManager(1))
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	return gs
}

func TestTryActivateNonBombReturnsFalse(t *testing.T) {
	gs := newBoard(t, 4, 4)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})

	h := NewHandler(16)
	if h.TryActivate(gs, grid.Cell{X: 0, Y: 0}, events.NullCollector) {
		t.Fatal("expected TryActivate to return false for a non-bomb tile")
	}
}

func TestTryActivateLineClearsRow(t *testing.T) {
	gs := newBoard(t, 4, 3)
	for x := 0; x < 4; x++ {
		gs.Set(x, 1, grid.Tile{ID: gs.NewTileID(), Type: 2})
	}
	bomb := gs.Get(1, 1)
	bomb.Bomb = grid.BombLineH
	gs.Set(1, 1, bomb)

	h := NewHandler(12)
	if !h.TryActivate(gs, grid.Cell{X: 1, Y: 1}, events.NullCollector) {
		t.Fatal("expected activation to succeed")
	}
	for x := 0; x < 4; x++ {
		if !gs.Get(x, 1).IsEmpty() {
			t.Fatalf("expected row cleared at x=%d", x)
		}
	}
}

func TestTryActivateAreaClears3x3(t *testing.T) {
	gs := newBoard(t, 5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			gs.Set(x, y, grid.Tile{ID: gs.NewTileID(), Type: 3})
		}
	}
	bomb := gs.Get(2, 2)
	bomb.Bomb = grid.BombArea
	gs.Set(2, 2, bomb)

	h := NewHandler(25)
	h.TryActivate(gs, grid.Cell{X: 2, Y: 2}, events.NullCollector)

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if !gs.Get(x, y).IsEmpty() {
				t.Fatalf("expected (%d,%d) cleared by area bomb", x, y)
			}
		}
	}
}

func TestChainedBombDetonatesTransitively(t *testing.T) {
	gs := newBoard(t, 5, 1)
	for x := 0; x < 5; x++ {
		gs.Set(x, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	}
	first := gs.Get(0, 0)
	first.Bomb = grid.BombLineH
	gs.Set(0, 0, first)

	second := gs.Get(3, 0)
	second.Bomb = grid.BombLineH
	gs.Set(3, 0, second)

	h := NewHandler(5)
	h.TryActivate(gs, grid.Cell{X: 0, Y: 0}, events.NullCollector)

	for x := 0; x < 5; x++ {
		if !gs.Get(x, 0).IsEmpty() {
			t.Fatalf("expected entire row cleared via chain, x=%d still occupied", x)
		}
	}
}

func TestActivateTriggeredIgnoresNonBombCells(t *testing.T) {
	gs := newBoard(t, 3, 1)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})

	h := NewHandler(3)
	n := h.ActivateTriggered(gs, []grid.Cell{{X: 0, Y: 0}}, events.NullCollector)
	if n != 0 {
		t.Fatalf("expected no tiles cleared for a non-bomb trigger cell, got %d", n)
	}
}

func TestTryActivateRecordsBombActivatedMetric(t *testing.T) {
	gs := newBoard(t, 4, 3)
	for x := 0; x < 4; x++ {
		gs.Set(x, 1, grid.Tile{ID: gs.NewTileID(), Type: 2})
	}
	bomb := gs.Get(1, 1)
	bomb.Bomb = grid.BombLineH
	gs.Set(1, 1, bomb)

	m := metrics.New()
	h := NewHandler(12).WithMetrics(m)
	h.TryActivate(gs, grid.Cell{X: 1, Y: 1}, events.NullCollector)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "match3_bombs_activated_total" {
			found = true
			if f.Metric[0].GetCounter().GetValue() != 1 {
				t.Fatalf("expected 1 recorded activation, got %v", f.Metric[0].GetCounter().GetValue())
			}
		}
	}
	if !found {
		t.Fatal("expected match3_bombs_activated_total to be registered")
	}
	if h.Activated() != 1 {
		t.Fatalf("expected Activated() to report 1, got %d", h.Activated())
	}
}

func TestProcessSpecialMoveNeitherBombReturnsZero(t *testing.T) {
	gs := newBoard(t, 3, 3)
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 1})
	gs.Set(1, 0, grid.Tile{ID: gs.NewTileID(), Type: 2})

	h := NewHandler(9)
	score := h.ProcessSpecialMove(gs, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 0}, events.NullCollector)
	if score != 0 {
		t.Fatalf("expected 0 score for a non-bomb swap, got %d", score)
	}
}

func TestProcessSpecialMoveColorClearUsesPartnerTypeNotOwnType(t *testing.T) {
	gs := newBoard(t, 5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			gs.Set(x, y, grid.Tile{ID: gs.NewTileID(), Type: 1})
		}
	}
	// scattered type-2 tiles, including the partner cell itself
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 2})
	gs.Set(4, 4, grid.Tile{ID: gs.NewTileID(), Type: 2})
	gs.Set(2, 1, grid.Tile{ID: gs.NewTileID(), Type: 2})

	bomb := gs.Get(2, 2)
	bomb.Type = 1 // the bomb was created from type 1
	bomb.Bomb = grid.BombColorClear
	gs.Set(2, 2, bomb)

	h := NewHandler(25)
	h.ProcessSpecialMove(gs, grid.Cell{X: 2, Y: 2}, grid.Cell{X: 2, Y: 1}, events.NullCollector)

	for _, c := range []grid.Cell{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 2, Y: 1}} {
		if !gs.At(c).IsEmpty() {
			t.Fatalf("expected partner's type (2) cleared at %v", c)
		}
	}
	if gs.Get(2, 2).IsEmpty() || gs.Get(2, 2).Type != 1 {
		t.Fatal("expected the bomb's own type-1 tile to survive: only the partner's color should clear")
	}
	if gs.Get(0, 4).IsEmpty() {
		t.Fatal("expected an untouched type-1 tile to survive")
	}
}

func TestProcessSpecialMoveColorClearAsPartnerBAlsoUsesPartnerType(t *testing.T) {
	gs := newBoard(t, 5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			gs.Set(x, y, grid.Tile{ID: gs.NewTileID(), Type: 1})
		}
	}
	gs.Set(0, 0, grid.Tile{ID: gs.NewTileID(), Type: 3})
	gs.Set(2, 2, grid.Tile{ID: gs.NewTileID(), Type: 3})

	bomb := gs.Get(2, 1)
	bomb.Type = 1
	bomb.Bomb = grid.BombColorClear
	gs.Set(2, 1, bomb)

	h := NewHandler(25)
	h.ProcessSpecialMove(gs, grid.Cell{X: 2, Y: 2}, grid.Cell{X: 2, Y: 1}, events.NullCollector)

	if !gs.Get(0, 0).IsEmpty() || !gs.Get(2, 2).IsEmpty() {
		t.Fatal("expected the type-3 partner color cleared when the bomb is cell b")
	}
	if gs.Get(2, 1).IsEmpty() || gs.Get(2, 1).Type != 1 {
		t.Fatal("expected the bomb's own type-1 tile to survive")
	}
}

func TestProcessSpecialMoveLinePlusLineClearsCross(t *testing.T) {
	gs := newBoard(t, 5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			gs.Set(x, y, grid.Tile{ID: gs.NewTileID(), Type: 1})
		}
	}
	ta := gs.Get(2, 2)
	ta.Bomb = grid.BombLineH
	gs.Set(2, 2, ta)
	tb := gs.Get(2, 1)
	tb.Bomb = grid.BombLineV
	gs.Set(2, 1, tb)

	h := NewHandler(25)
	score := h.ProcessSpecialMove(gs, grid.Cell{X: 2, Y: 2}, grid.Cell{X: 2, Y: 1}, events.NullCollector)
	if score <= 0 {
		t.Fatal("expected positive score from a line+line combo")
	}
	for x := 0; x < 5; x++ {
		if !gs.Get(x, 2).IsEmpty() {
			t.Fatalf("expected row 2 cleared by cross combo, x=%d still occupied", x)
		}
	}
	for y := 0; y < 5; y++ {
		if !gs.Get(2, y).IsEmpty() {
			t.Fatalf("expected column 2 cleared by cross combo, y=%d still occupied", y)
		}
	}
}
