// Package physics integrates tile motion and performs post-settle column
// compaction. The accelerate-then-clamp-then-integrate shape mirrors a
// projectile-update pattern: velocity changes first, position integrates
// from velocity, then a terminal condition snaps state and flips a boolean
// flag.
package physics

import (
	"match3core/internal/events"
	"match3core/internal/grid"
)

// Update advances every falling tile's vertical position by one tick. A tile
// stops falling once its logical position reaches the integer row of the
// cell it occupies in the grid array.
func Update(state *grid.GameState, dt float64) {
	g := state.Config.GravityAccel
	vMax := state.Config.TerminalVelocity

	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			tile := state.Get(x, y)
			if tile.IsEmpty() || !tile.Falling {
				continue
			}

			tile.Vel.Y += g * dt
			if tile.Vel.Y > vMax {
				tile.Vel.Y = vMax
			}
			tile.Pos.Y += tile.Vel.Y * dt
			tile.Pos.X = float64(x)

			target := float64(y)
			if tile.Pos.Y >= target {
				tile.Pos.Y = target
				tile.Vel.Y = 0
				tile.Falling = false
			}

			state.Set(x, y, tile)
		}
	}
}

// IsStable reports whether the board has no falling and no suspended tiles.
// This is grid.GameState.IsSettled exposed under the physics system's name.
func IsStable(state *grid.GameState) bool {
	return state.IsSettled()
}

// Compact performs the post-stability column compaction pass: for each
// column, bottom to top, if a cell is empty and the cell directly
// above holds an eligible tile, that tile is reassigned down one cell and
// set falling, with its logical position left where it was so physics.Update
// interpolates the visual drop over subsequent ticks. Gaps deeper than one
// row drain over several compaction calls rather than teleporting, matching
// a real gravity sim rather than an instant sort.
func Compact(state *grid.GameState, collector events.Collector) {
	for x := 0; x < state.Width; x++ {
		for y := state.Height - 1; y >= 1; y-- {
			below := state.Get(x, y)
			if !below.IsEmpty() {
				continue
			}
			above := state.Get(x, y-1)
			if above.IsEmpty() || above.Suspended || above.Falling {
				continue
			}

			moved := above
			moved.Falling = true
			state.Set(x, y, moved)
			state.Set(x, y-1, grid.EmptyTile)

			if collector.IsEnabled() {
				collector.Emit(events.Event{
					Type: events.TypeTileMoved,
					Payload: events.TileMovedPayload{
						TileID: moved.ID,
						FromX:  x, FromY: y - 1,
						ToX: x, ToY: y,
					},
				})
			}
		}
	}
}
