// Package loop implements the single per-tick orchestrator. The
// phase-sequenced structure — advance physics, then run a chain of
// subsystem updates in a fixed order, then emit the outcome — follows an
// engine-tick pattern: advance sub timers/physics first, then
// combat/collision resolution, then visual effects, emitting one snapshot
// at the end. Here the phases are physics → match → resolve → power-up
// chain → compaction → refill, and the emission is the tick's event pair
// instead of a render snapshot.
package loop

import (
	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/match"
	"match3core/internal/metrics"
	"match3core/internal/physics"
	"match3core/internal/powerup"
	"match3core/internal/refill"
	"match3core/internal/resolve"
)

// AsyncGameLoop drives one tick through every system in order. "Async"
// names the loop's multi-tick settling behavior, not any concurrency — the
// loop itself is called synchronously.
type AsyncGameLoop struct {
	Finder     *match.Finder
	Processor  *resolve.Processor
	PowerUps   *powerup.Handler
	Generator  *refill.Generator
	tick       int64
	simTime    float32
}

// NewAsyncGameLoop creates a loop with fresh subsystems sized for a board
// of boardCells cells.
func NewAsyncGameLoop(boardCells int) *AsyncGameLoop {
	return &AsyncGameLoop{
		Finder:    match.NewFinder(boardCells),
		Processor: resolve.NewProcessor(),
		PowerUps:  powerup.NewHandler(boardCells),
		Generator: refill.NewGenerator(),
	}
}

// WithMetrics attaches m to every subsystem that reports a counter: the
// refill generator's retry count and the power-up handler's activation
// count. A nil m makes every recording call a no-op.
func (l *AsyncGameLoop) WithMetrics(m *metrics.Metrics) *AsyncGameLoop {
	l.Generator.WithMetrics(m)
	l.PowerUps.WithMetrics(m)
	return l
}

// Outcome summarizes what happened during one Update call, enough for the
// outer SimulationEngine to accumulate a TickResult and cascade depth
// without re-deriving state.
type Outcome struct {
	Settled      bool
	MatchesFound bool
	ScoreGained  int32
}

// Update executes one tick: physics first, then — only once the board is
// positionally stable — match detection, resolution, and any triggered
// bomb chains; otherwise gravity compaction and top-row refill. Ordering
// guarantee: within a tick, destruction events from step (a) precede their
// chained destructions from the power-up handler.
func (l *AsyncGameLoop) Update(state *grid.GameState, dt float64, collector events.Collector) Outcome {
	if collector.IsEnabled() {
		collector.Emit(events.Event{
			Type: events.TypeTickStarted, Tick: l.tick, SimTime: l.simTime,
			Payload: events.TickStartedPayload{Tick: l.tick},
		})
	}

	physics.Update(state, dt)

	var outcome Outcome
	if physics.IsStable(state) {
		groups := l.Finder.FindGroups(state, nil)
		if len(groups) > 0 {
			outcome.MatchesFound = true
			scoreGained, triggered := l.Processor.ProcessMatches(state, groups, collector)
			outcome.ScoreGained = scoreGained
			l.PowerUps.ActivateTriggered(state, triggered, collector)
		} else {
			physics.Compact(state, collector)
			for x := 0; x < state.Width; x++ {
				if state.Get(x, 0).IsEmpty() {
					l.Generator.GenerateNonMatching(state, x, 0, collector)
				}
			}
		}
	}
	outcome.Settled = physics.IsStable(state) && !l.Finder.HasMatches(state)

	if collector.IsEnabled() {
		collector.Emit(events.Event{
			Type: events.TypeTickCompleted, Tick: l.tick, SimTime: l.simTime,
			Payload: events.TickCompletedPayload{Tick: l.tick, Settled: outcome.Settled},
		})
	}

	l.tick++
	l.simTime += float32(dt)
	return outcome
}

// CurrentTick returns the tick number the next Update call will run as.
func (l *AsyncGameLoop) CurrentTick() int64 { return l.tick }
