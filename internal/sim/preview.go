package sim

import "match3core/internal/grid"

// Move names a candidate swap for PreviewMove and TrySwap.
type Move struct {
	From, To grid.Cell
}

// MovePreview summarizes what a candidate move would do if actually applied:
// the score and tile-count deltas, the cascade depth — the number of
// distinct match-phase executions observed before the board re-settled —
// and how many bomb tiles detonated along the way.
type MovePreview struct {
	Valid          bool
	ScoreDelta     int64
	TilesCleared   int
	CascadeDepth   int
	BombsActivated int
}

// PreviewMove clones state and its RNG, disables events on the clone, applies
// move, and runs the clone to stability, diffing score and tile count against
// the pre-swap snapshot. It never mutates the caller's state — every
// operation below runs against state.Clone(), and the only values read back
// out are plain scalars copied into MovePreview.
func PreviewMove(state *grid.GameState, cfg Config, move Move) MovePreview {
	before := state.Score
	beforeTiles := countOccupied(state)

	clone := state.Clone()
	previewCfg := cfg
	previewCfg.EmitEvents = false
	eng := New(clone, previewCfg)

	if !eng.TrySwap(move.From, move.To) {
		return MovePreview{Valid: false}
	}

	cascadeDepth := 0
	limit := previewCfg.MaxTicksPerRun
	if limit <= 0 {
		limit = 1
	}
	for ran := 0; ran < limit; ran++ {
		result := eng.Tick()
		if result.HasPendingMatches {
			cascadeDepth++
		}
		if result.IsStable {
			break
		}
	}

	afterTiles := countOccupied(clone)
	return MovePreview{
		Valid:          true,
		ScoreDelta:     clone.Score - before,
		TilesCleared:   beforeTiles - afterTiles,
		CascadeDepth:   cascadeDepth,
		BombsActivated: eng.BombsActivated(),
	}
}

func countOccupied(state *grid.GameState) int {
	n := 0
	for i := range state.Cells {
		if !state.Cells[i].IsEmpty() {
			n++
		}
	}
	return n
}
