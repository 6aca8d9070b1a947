// Package powerup implements bomb activation and chained detonation.
// Chain traversal is BFS over an explicit queue, following a
// reusable-queue BFS pattern: a scratch []int queue reset and reused across
// calls rather than reallocated.
package powerup

import (
	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/metrics"
	"match3core/internal/poolutil"
)

// Handler activates bombs and resolves chained detonations.
type Handler struct {
	queuePool *poolutil.Pool[grid.Cell]
	activated int
	metrics   *metrics.Metrics
}

// Activated returns the cumulative count of bomb tiles this Handler has
// detonated across every TryActivate, ActivateTriggered, and
// ProcessSpecialMove call since it was created. It never resets on its own;
// callers that want a per-run count take a before/after snapshot.
func (h *Handler) Activated() int { return h.activated }

// WithMetrics attaches m; every subsequent activation reports into it. A nil
// m makes recording a no-op.
func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}

func (h *Handler) recordActivation(n int) {
	h.activated += n
	h.metrics.RecordBombActivated(n)
}

// NewHandler creates a Handler whose scratch BFS queue is sized for a board
// of boardCells cells.
func NewHandler(boardCells int) *Handler {
	return &Handler{queuePool: poolutil.New[grid.Cell](boardCells)}
}

// TryActivate activates the bomb at cell c, if any, and resolves its full
// chain. Returns false if c holds no bomb.
func (h *Handler) TryActivate(state *grid.GameState, c grid.Cell, collector events.Collector) bool {
	tile := state.At(c)
	if tile.IsEmpty() || tile.Bomb == grid.BombNone {
		return false
	}
	h.activateChain(state, []grid.Cell{c}, collector)
	return true
}

// ActivateTriggered runs the chain activation entry point for tiles that
// were caught inside a resolved match while already carrying a bomb, so
// any newly triggered bombs detonate transitively. Cells with no bomb, or
// already cleared, are ignored.
func (h *Handler) ActivateTriggered(state *grid.GameState, cells []grid.Cell, collector events.Collector) int {
	var seeds []grid.Cell
	for _, c := range cells {
		t := state.At(c)
		if !t.IsEmpty() && t.Bomb != grid.BombNone {
			seeds = append(seeds, c)
		}
	}
	if len(seeds) == 0 {
		return 0
	}
	return h.activateChain(state, seeds, collector)
}

// activateChain detonates every seed bomb and transitively any bomb caught
// in a resulting clear set, in BFS order, bounded by board size so no
// pathological input can loop forever. No recursion is used.
func (h *Handler) activateChain(state *grid.GameState, seeds []grid.Cell, collector events.Collector) int {
	queue := h.queuePool.Get()
	defer h.queuePool.Put(queue)
	queue = append(queue, seeds...)

	visited := make(map[grid.Cell]bool, len(seeds)*4)
	for _, s := range seeds {
		visited[s] = true
	}

	maxSteps := state.Width*state.Height + 1
	cleared := 0
	depth := 0

	for len(queue) > 0 && depth < maxSteps {
		c := queue[0]
		queue = queue[1:]
		depth++

		tile := state.At(c)
		if tile.IsEmpty() || tile.Bomb == grid.BombNone {
			continue
		}

		reason := events.DestroyReasonBomb
		if len(seeds) == 0 || !containsCell(seeds, c) {
			reason = events.DestroyReasonChain
		}
		h.recordActivation(1)

		clearSet := clearSetFor(state, c, tile)
		thisBombCleared := 0

		for _, cc := range clearSet {
			if !state.IsValid(cc) {
				continue
			}
			ct := state.At(cc)
			if ct.IsEmpty() {
				continue
			}
			if collector.IsEnabled() {
				collector.Emit(events.Event{
					Type: events.TypeTileDestroyed,
					Payload: events.TileDestroyedPayload{
						TileID: ct.ID, X: cc.X, Y: cc.Y, Reason: reason,
					},
				})
			}
			cleared++
			thisBombCleared++
			if cc != c && ct.Bomb != grid.BombNone {
				// Another bomb caught in this blast: queue it for its own
				// activation (unless already queued) instead of wiping it
				// here, so its clear set still fires.
				if !visited[cc] {
					visited[cc] = true
					queue = append(queue, cc)
				}
				continue
			}
			if cc != c {
				state.SetAt(cc, grid.EmptyTile)
			}
		}
		state.SetAt(c, grid.EmptyTile)

		if collector.IsEnabled() {
			collector.Emit(events.Event{
				Type: events.TypeBombActivated,
				Payload: events.BombActivatedPayload{
					TileID: tile.ID, X: c.X, Y: c.Y, Kind: uint8(tile.Bomb),
					TilesCleared: thisBombCleared, ChainDepth: depth,
				},
			})
		}
	}
	return cleared
}

func containsCell(cells []grid.Cell, c grid.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

// clearSetFor returns the cells a bomb at c clears, per its kind: Line
// clears the entire row or column, Area clears a 3x3 block, ColorClear
// clears every tile on the board sharing the bomb's own type (the type it
// was created from, standing in for "the type it was swapped with, or the
// most common type if activated alone").
func clearSetFor(state *grid.GameState, c grid.Cell, tile grid.Tile) []grid.Cell {
	switch tile.Bomb {
	case grid.BombLineH:
		return rowCells(state, c.Y)
	case grid.BombLineV:
		return colCells(state, c.X)
	case grid.BombArea:
		return squareCells(state, c, 1)
	case grid.BombColorClear:
		return typeCells(state, tile.Type)
	default:
		return nil
	}
}

func rowCells(state *grid.GameState, y int) []grid.Cell {
	cells := make([]grid.Cell, 0, state.Width)
	for x := 0; x < state.Width; x++ {
		cells = append(cells, grid.Cell{X: x, Y: y})
	}
	return cells
}

func colCells(state *grid.GameState, x int) []grid.Cell {
	cells := make([]grid.Cell, 0, state.Height)
	for y := 0; y < state.Height; y++ {
		cells = append(cells, grid.Cell{X: x, Y: y})
	}
	return cells
}

func squareCells(state *grid.GameState, center grid.Cell, radius int) []grid.Cell {
	var cells []grid.Cell
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c := grid.Cell{X: center.X + dx, Y: center.Y + dy}
			if state.IsValid(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func typeCells(state *grid.GameState, t grid.TileType) []grid.Cell {
	var cells []grid.Cell
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			if state.Get(x, y).Type == t {
				cells = append(cells, grid.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}
