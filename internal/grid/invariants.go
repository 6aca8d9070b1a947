package grid

import "fmt"

// CheckInvariants validates the structural invariants that must hold across
// every reachable state. It is deliberately side-effect free so it can run
// against cloned states without perturbing anything.
func (g *GameState) CheckInvariants() error {
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("cell count %d does not match %dx%d board", len(g.Cells), g.Width, g.Height)
	}

	seen := make(map[int64]Cell, len(g.Cells))
	for i, t := range g.Cells {
		c := g.CellOf(i)
		if t.IsEmpty() {
			continue
		}
		if t.ID >= g.NextTileID {
			return fmt.Errorf("tile %d at %v has id >= NextTileID (%d)", t.ID, c, g.NextTileID)
		}
		if prev, dup := seen[t.ID]; dup {
			return fmt.Errorf("tile id %d appears twice: at %v and %v", t.ID, prev, c)
		}
		seen[t.ID] = c
		if int(t.Type) < 1 || int(t.Type) > g.TileTypesCount {
			return fmt.Errorf("tile %d at %v has out-of-range type %d", t.ID, c, t.Type)
		}
	}

	if g.Selected != InvalidCell && !g.IsValid(g.Selected) {
		return fmt.Errorf("selected cell %v out of bounds", g.Selected)
	}

	return nil
}

// IsSettled reports whether every tile on the board is at rest: not falling
// and not suspended. The game loop uses this to decide whether to run
// physics or advance to match detection.
func (g *GameState) IsSettled() bool {
	for _, t := range g.Cells {
		if t.IsEmpty() {
			continue
		}
		if t.Falling || t.Suspended {
			return false
		}
	}
	return true
}

// HasEmptyCells reports whether any cell on the board is unoccupied,
// signalling that refill still has work to do.
func (g *GameState) HasEmptyCells() bool {
	for _, t := range g.Cells {
		if t.IsEmpty() {
			return true
		}
	}
	return false
}
