package sim

import (
	"match3core/internal/grid"
	"match3core/internal/rngdomain"
)

// HasAnyLegalMove reports whether any adjacent swap on the board would
// produce a match. It tries every cell against its right and down neighbor
// (every adjacency is covered exactly once from one side or the other) and
// leaves the board unchanged regardless of outcome.
func (e *Engine) HasAnyLegalMove() bool {
	return HasAnyLegalMove(e.state, e.loop.Finder)
}

// HasAnyLegalMove is the free-function form, usable without an Engine.
func HasAnyLegalMove(state *grid.GameState, finder legalMoveFinder) bool {
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			from := grid.Cell{X: x, Y: y}
			for _, to := range []grid.Cell{{X: x + 1, Y: y}, {X: x, Y: y + 1}} {
				if !state.IsValid(to) {
					continue
				}
				if trySwapProducesMatch(state, finder, from, to) {
					return true
				}
			}
		}
	}
	return false
}

type legalMoveFinder interface {
	HasMatchAt(state *grid.GameState, c grid.Cell) bool
}

func trySwapProducesMatch(state *grid.GameState, finder legalMoveFinder, from, to grid.Cell) bool {
	tFrom, tTo := state.At(from), state.At(to)
	if tFrom.IsEmpty() || tTo.IsEmpty() {
		return false
	}
	state.SetAt(from, tTo)
	state.SetAt(to, tFrom)
	matches := finder.HasMatchAt(state, from) || finder.HasMatchAt(state, to)
	state.SetAt(from, tFrom)
	state.SetAt(to, tTo)
	return matches
}

// ShuffleIfStuck reshuffles every non-empty, non-bomb tile type on the board
// using the Shuffle RNG domain when no legal move exists, and reports
// whether it did so. Bomb tiles stay put — only ordinary tile types are
// redistributed, by Fisher-Yates permutation of the occupied cells' types,
// so score-relevant board content (bomb count, board occupancy) is
// preserved exactly; only which color sits where changes. Re-shuffles up to
// a handful of times if the drawn permutation happens to leave the board
// still stuck, falling back to leaving the board as last shuffled if every
// attempt does.
func (e *Engine) ShuffleIfStuck() bool {
	if HasAnyLegalMove(e.state, e.loop.Finder) {
		return false
	}

	stream := e.state.RNG.Get(rngdomain.DomainShuffle)
	const maxAttempts = 8
	for attempt := 0; attempt < maxAttempts; attempt++ {
		shuffleTypes(e.state, stream)
		if HasAnyLegalMove(e.state, e.loop.Finder) {
			break
		}
	}
	return true
}

func shuffleTypes(state *grid.GameState, stream *rngdomain.Stream) {
	var cells []grid.Cell
	for i, t := range state.Cells {
		if !t.IsEmpty() && t.Bomb == grid.BombNone {
			cells = append(cells, state.CellOf(i))
		}
	}
	if len(cells) < 2 {
		return
	}

	types := make([]grid.TileType, len(cells))
	for i, c := range cells {
		types[i] = state.At(c).Type
	}

	for i := len(types) - 1; i > 0; i-- {
		j := int(stream.NextU32(uint32(i + 1)))
		types[i], types[j] = types[j], types[i]
	}

	for i, c := range cells {
		tile := state.At(c)
		tile.Type = types[i]
		state.SetAt(c, tile)
	}
}
