package powerup

import (
	"match3core/internal/events"
	"match3core/internal/grid"
)

// ProcessSpecialMove handles swapping two bomb tiles together, which
// produces a combination effect larger than either bomb alone. It runs
// before the tick's normal match phase whenever the committed swap involves
// at least one bomb. Returns 0 if neither cell holds a bomb — the swap
// is not a special move and the ordinary match pipeline should handle it.
func (h *Handler) ProcessSpecialMove(state *grid.GameState, a, b grid.Cell, collector events.Collector) int32 {
	ta, tb := state.At(a), state.At(b)
	if ta.Bomb == grid.BombNone && tb.Bomb == grid.BombNone {
		return 0
	}
	count := 0
	if ta.Bomb != grid.BombNone {
		count++
	}
	if tb.Bomb != grid.BombNone {
		count++
	}
	h.recordActivation(count)

	var clearSet []grid.Cell
	switch {
	case ta.Bomb == grid.BombColorClear || tb.Bomb == grid.BombColorClear:
		clearSet = h.colorClearCombo(state, a, b, ta, tb, collector)
	case ta.Bomb.IsLine() && tb.Bomb.IsLine():
		clearSet = append(rowCells(state, a.Y), colCells(state, a.X)...)
	case ta.Bomb.IsLine() || tb.Bomb.IsLine():
		clearSet = wideCross(state, a, 1)
	case ta.Bomb == grid.BombArea && tb.Bomb == grid.BombArea:
		clearSet = squareCells(state, a, 2)
	default:
		clearSet = squareCells(state, a, 1)
	}

	cleared := 0
	for _, c := range dedupeCells(clearSet) {
		if !state.IsValid(c) {
			continue
		}
		t := state.At(c)
		if t.IsEmpty() {
			continue
		}
		if collector.IsEnabled() {
			collector.Emit(events.Event{
				Type: events.TypeTileDestroyed,
				Payload: events.TileDestroyedPayload{
					TileID: t.ID, X: c.X, Y: c.Y, Reason: events.DestroyReasonBomb,
				},
			})
		}
		state.SetAt(c, grid.EmptyTile)
		cleared++
	}

	return int32(cleared) * DefaultClearScore
}

// DefaultClearScore is the score awarded per tile cleared by a special-move
// combo, mirroring the per-tile base score used by ordinary matches.
const DefaultClearScore = 10

// colorClearCombo clears every tile of the swap partner's type — the color
// the ColorClear bomb was swapped with, not its own stored type — and
// additionally applies the partner bomb's basic pattern centered at each
// cleared cell, if the partner is itself a bomb. If both cells are
// ColorClear, targetType falls back to the first cell's own type.
func (h *Handler) colorClearCombo(state *grid.GameState, a, b grid.Cell, ta, tb grid.Tile, collector events.Collector) []grid.Cell {
	// targetType is the color to clear, which is the *partner* tile's type —
	// a ColorClear bomb swapped with a plain tile clears the plain tile's
	// color, not the color the bomb itself was created from.
	other := ta
	otherCell := a
	targetType := ta.Type
	if ta.Bomb == grid.BombColorClear {
		other, otherCell, targetType = tb, b, tb.Type
		if tb.Bomb == grid.BombColorClear {
			targetType = ta.Type
		}
	}

	base := typeCells(state, targetType)
	out := append([]grid.Cell(nil), base...)

	switch other.Bomb {
	case grid.BombLineH:
		for _, c := range base {
			out = append(out, rowCells(state, c.Y)...)
		}
	case grid.BombLineV:
		for _, c := range base {
			out = append(out, colCells(state, c.X)...)
		}
	case grid.BombArea:
		for _, c := range base {
			out = append(out, squareCells(state, c, 1)...)
		}
	default:
		_ = otherCell
	}
	return out
}

func wideCross(state *grid.GameState, center grid.Cell, width int) []grid.Cell {
	var cells []grid.Cell
	for dy := -width; dy <= width; dy++ {
		cells = append(cells, rowCells(state, center.Y+dy)...)
	}
	for dx := -width; dx <= width; dx++ {
		cells = append(cells, colCells(state, center.X+dx)...)
	}
	return cells
}

func dedupeCells(cells []grid.Cell) []grid.Cell {
	seen := make(map[grid.Cell]bool, len(cells))
	out := cells[:0]
	for _, c := range cells {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
