// Package refill spawns new tiles into empty cells left behind by matches.
// The retry-then-fallback shape for avoiding an immediately bad draw builds
// on an engine-owned seeded RNG pattern, generalized to a domain-partitioned
// RNG service and a bounded retry loop instead of a single unconditional
// draw.
package refill

import (
	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/metrics"
	"match3core/internal/rngdomain"
)

// Generator produces non-immediately-matching tiles for empty cells.
type Generator struct {
	recencyCounter int64
	lastUsedAt     map[grid.TileType]int64
	metrics        *metrics.Metrics
}

// NewGenerator creates a Generator with an empty recency table.
func NewGenerator() *Generator {
	return &Generator{lastUsedAt: make(map[grid.TileType]int64)}
}

// WithMetrics attaches m; every subsequent GenerateNonMatching call whose
// first draw was unusable records one retry into it, however many further
// draws it took. A nil m makes recording a no-op.
func (g *Generator) WithMetrics(m *metrics.Metrics) *Generator {
	g.metrics = m
	return g
}

// GenerateNonMatching spawns a tile into the empty cell (x, y), drawing its
// type from the Refill RNG domain with up to RefillMaxRetries attempts to
// avoid an immediate match against the two cells below or two cells to the
// left. On exhaustion it falls back to the least-recently-used type,
// guaranteeing termination. The tile spawns logically one row above the
// grid and is marked falling so physics carries it in.
func (g *Generator) GenerateNonMatching(state *grid.GameState, x, y int, collector events.Collector) grid.Tile {
	rng := state.RNG.Get(rngdomain.DomainRefill)
	maxRetries := state.Config.RefillMaxRetries
	if maxRetries <= 0 {
		maxRetries = 8
	}

	var chosen grid.TileType
	found := false
	attempt := 0
	for ; attempt < maxRetries; attempt++ {
		candidate := g.weightedDraw(rng, state)
		if !wouldImmediatelyMatch(state, x, y, candidate) {
			chosen = candidate
			found = true
			break
		}
	}
	if !found {
		chosen = g.leastRecentlyUsed(state.TileTypesCount)
	}
	if attempt > 0 {
		g.metrics.RecordRefillRetry()
	}

	g.recencyCounter++
	g.lastUsedAt[chosen] = g.recencyCounter

	tile := grid.Tile{
		ID:      state.NewTileID(),
		Type:    chosen,
		Pos:     grid.Vec2{X: float64(x), Y: float64(y - 1)},
		Falling: true,
	}
	state.Set(x, y, tile)

	if collector.IsEnabled() {
		collector.Emit(events.Event{
			Type:    events.TypeTileCreated,
			Payload: events.TileCreatedPayload{TileID: tile.ID, X: x, Y: y, Type: uint8(chosen)},
		})
		collector.Emit(events.Event{
			Type: events.TypeTileMoved,
			Payload: events.TileMovedPayload{
				TileID: tile.ID,
				FromX:  x, FromY: y - 1,
				ToX: x, ToY: y,
			},
		})
	}

	return tile
}

// weightedDraw picks a tile type proportional to GameConfig.WeightFor.
func (g *Generator) weightedDraw(rng *rngdomain.Stream, state *grid.GameState) grid.TileType {
	total := 0.0
	for t := 1; t <= state.TileTypesCount; t++ {
		total += state.Config.WeightFor(grid.TileType(t))
	}
	if total <= 0 {
		return grid.TileType(1)
	}

	roll := float64(rng.NextF32()) * total
	cursor := 0.0
	for t := 1; t <= state.TileTypesCount; t++ {
		cursor += state.Config.WeightFor(grid.TileType(t))
		if roll < cursor {
			return grid.TileType(t)
		}
	}
	return grid.TileType(state.TileTypesCount)
}

// leastRecentlyUsed returns the type this generator has drawn longest ago
// (or never), used only once the retry budget is exhausted.
func (g *Generator) leastRecentlyUsed(typesCount int) grid.TileType {
	best := grid.TileType(1)
	bestAt := g.lastUsedAt[best]
	for t := 2; t <= typesCount; t++ {
		ty := grid.TileType(t)
		if at, ok := g.lastUsedAt[ty]; !ok || at < bestAt {
			best = ty
			bestAt = at
		}
	}
	return best
}

// wouldImmediatelyMatch reports whether placing candidate at (x, y) would
// complete a 3-run against the two cells directly below or the two cells
// directly to the left — the only neighbors already settled when refill
// runs, since it fills the top row after compaction.
func wouldImmediatelyMatch(state *grid.GameState, x, y int, candidate grid.TileType) bool {
	if y+2 < state.Height {
		b1, b2 := state.Get(x, y+1), state.Get(x, y+2)
		if !b1.IsEmpty() && !b2.IsEmpty() && b1.Type == candidate && b2.Type == candidate {
			return true
		}
	}
	if x-2 >= 0 {
		l1, l2 := state.Get(x-1, y), state.Get(x-2, y)
		if !l1.IsEmpty() && !l2.IsEmpty() && l1.Type == candidate && l2.Type == candidate {
			return true
		}
	}
	return false
}
