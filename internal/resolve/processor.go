// Package resolve converts match groups into score, cleared cells, and
// newly created power-up tiles. The mutation pattern — walk a set of
// affected entities, mutate shared state, emit an event per entity — follows
// a hit-resolution style generalized from damage numbers to match score.
package resolve

import (
	"sort"

	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/match"
)

// DefaultBaseScore is the configurable per-tile score awarded before
// group-size multiplication.
const DefaultBaseScore = 10

// Processor turns match groups into score, destructions, and bomb
// creation. It holds no board state of its own.
type Processor struct {
	BaseScore int32
	groupSeq  int
}

// NewProcessor creates a Processor with the default per-tile base score.
func NewProcessor() *Processor {
	return &Processor{BaseScore: DefaultBaseScore}
}

// ProcessMatches clears every tile in groups, scores them, and creates a
// power-up tile at each group's anchor cell when the group's shape
// qualifies. It does not chain bomb detonations itself — a tile that already
// carried a bomb is left in place rather than cleared, and its cell is
// returned so the caller can hand it to the power-up handler to detonate
// transitively after matches are processed.
func (p *Processor) ProcessMatches(state *grid.GameState, groups []match.Group, collector events.Collector) (scoreGained int32, triggeredBombs []grid.Cell) {
	for _, g := range groups {
		size := len(g.Cells)
		scoreGained += p.BaseScore * int32(size)

		kind, anchor := classify(g)
		groupID := p.groupSeq
		p.groupSeq++

		for _, c := range g.Cells {
			tile := state.At(c)
			if tile.IsEmpty() {
				continue
			}
			becomesNewBomb := c == anchor && kind != grid.BombNone
			if tile.Bomb != grid.BombNone && !becomesNewBomb {
				// Left on the board: the power-up handler clears it as part
				// of its own detonation.
				triggeredBombs = append(triggeredBombs, c)
				continue
			}

			if collector.IsEnabled() {
				collector.Emit(events.Event{
					Type: events.TypeTileDestroyed,
					Payload: events.TileDestroyedPayload{
						TileID: tile.ID, X: c.X, Y: c.Y,
						Reason: events.DestroyReasonMatch, GroupID: groupID,
					},
				})
			}

			if becomesNewBomb {
				newTile := grid.Tile{ID: state.NewTileID(), Type: g.Type, Bomb: kind, Pos: grid.Vec2{X: float64(c.X), Y: float64(c.Y)}}
				state.SetAt(c, newTile)
				if collector.IsEnabled() {
					collector.Emit(events.Event{
						Type:    events.TypeTileCreated,
						Payload: events.TileCreatedPayload{TileID: newTile.ID, X: c.X, Y: c.Y, Type: uint8(newTile.Type)},
					})
					collector.Emit(events.Event{
						Type:    events.TypeBombCreated,
						Payload: events.BombCreatedPayload{TileID: newTile.ID, X: c.X, Y: c.Y, Kind: uint8(kind)},
					})
				}
			} else {
				state.SetAt(c, grid.EmptyTile)
			}
		}

		if collector.IsEnabled() {
			collector.Emit(events.Event{
				Type: events.TypeMatchResolved,
				Payload: events.MatchResolvedPayload{
					GroupID: groupID, TileType: uint8(g.Type), Size: size,
					ScoreGained: p.BaseScore * int32(size),
				},
			})
		}
	}

	state.Score += int64(scoreGained)
	return scoreGained, triggeredBombs
}

// classify determines the bomb kind a group creates and the cell it is
// anchored at, applying the arbitration order Area > ColorClear > Line: a
// group spanning more than one row and more than one column is a branch
// (L/T) and always yields an Area bomb regardless of its total size; only a
// single straight run is eligible for Line or ColorClear.
func classify(g match.Group) (grid.BombKind, grid.Cell) {
	if isBranch(g.Cells) {
		return grid.BombArea, intersectionCell(g.Cells)
	}

	horizontal := sameRow(g.Cells)
	anchor := middleCell(g.Cells, horizontal)

	switch {
	case len(g.Cells) >= 5:
		return grid.BombColorClear, anchor
	case len(g.Cells) == 4:
		if horizontal {
			return grid.BombLineH, anchor
		}
		return grid.BombLineV, anchor
	default:
		return grid.BombNone, anchor
	}
}

func sameRow(cells []grid.Cell) bool {
	y := cells[0].Y
	for _, c := range cells {
		if c.Y != y {
			return false
		}
	}
	return true
}

func isBranch(cells []grid.Cell) bool {
	rowSet, colSet := map[int]bool{}, map[int]bool{}
	for _, c := range cells {
		rowSet[c.Y] = true
		colSet[c.X] = true
	}
	return len(rowSet) > 1 && len(colSet) > 1
}

// intersectionCell returns the cell shared by both a horizontal and a
// vertical run within a branching group, chosen deterministically as the
// lexicographically smallest (y, x) qualifying cell.
func intersectionCell(cells []grid.Cell) grid.Cell {
	rowCount, colCount := map[int]int{}, map[int]int{}
	for _, c := range cells {
		rowCount[c.Y]++
		colCount[c.X]++
	}

	sorted := append([]grid.Cell(nil), cells...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	for _, c := range sorted {
		if rowCount[c.Y] > 1 && colCount[c.X] > 1 {
			return c
		}
	}
	return sorted[0]
}

// middleCell returns the middle cell of a straight run, ordering by X for a
// horizontal run or Y for a vertical one.
func middleCell(cells []grid.Cell, horizontal bool) grid.Cell {
	sorted := append([]grid.Cell(nil), cells...)
	sort.Slice(sorted, func(i, j int) bool {
		if horizontal {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	return sorted[(len(sorted)-1)/2]
}
