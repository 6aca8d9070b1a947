package sim

import (
	"log"
	"time"

	"match3core/internal/events"
	"match3core/internal/grid"
	"match3core/internal/loop"
	"match3core/internal/metrics"
	"match3core/internal/physics"
)

// TickResult reports what a single tick (or the last tick of a
// run-until-stable call) observed. HasActiveProjectiles is always false:
// this core has no projectile subsystem; the field is kept so callers
// written against the wider driver API surface compile unchanged.
type TickResult struct {
	CurrentTick          int64
	ElapsedTime          float32
	IsStable             bool
	HasActiveProjectiles bool
	HasFallingTiles      bool
	HasPendingMatches    bool
	DeltaTime            float64
}

// Engine is the outer simulation driver. It owns the tick loop, the event
// collector, and the config that paces both.
type Engine struct {
	state     *grid.GameState
	cfg       Config
	loop      *loop.AsyncGameLoop
	collector events.Collector
	buffered  *events.BufferedCollector
	elapsed   float32
	metrics   *metrics.Metrics
}

// WithMetrics attaches m to the engine; every subsequent Tick/RunUntilStable
// call reports into it. A nil m (the default) makes every recording call a
// no-op, per metrics.Metrics' nil-receiver contract.
func (e *Engine) WithMetrics(m *metrics.Metrics) *Engine {
	e.metrics = m
	e.loop.WithMetrics(m)
	return e
}

// New builds an Engine over state using cfg. When cfg.EmitEvents is true a
// BufferedCollector is attached; otherwise the engine uses NullCollector so
// the hot path allocates nothing for events.
func New(state *grid.GameState, cfg Config) *Engine {
	e := &Engine{
		state: state,
		cfg:   cfg,
		loop:  loop.NewAsyncGameLoop(state.Width * state.Height),
	}
	if cfg.EmitEvents {
		e.buffered = events.NewBufferedCollector(256)
		e.collector = e.buffered
	} else {
		e.collector = events.NullCollector
	}
	return e
}

// Tick advances the simulation by one fixed step and returns the resulting
// observation.
func (e *Engine) Tick() TickResult {
	start := time.Now()
	dt := e.cfg.FixedDeltaTime * float64(e.cfg.TimeScale)
	tick, simTime := e.loop.CurrentTick(), e.elapsed
	mark := 0
	if e.buffered != nil {
		mark = e.buffered.Count()
	}
	outcome := e.loop.Update(e.state, dt, e.collector)
	if e.buffered != nil {
		// Subsystems emit events without a tick or time; stamp this tick's
		// values onto every event it produced.
		evs := e.buffered.GetEvents()
		for i := mark; i < len(evs); i++ {
			evs[i].Tick, evs[i].SimTime = tick, simTime
		}
	}
	e.elapsed += float32(dt)
	e.metrics.ObserveTick(time.Since(start).Seconds())

	return TickResult{
		CurrentTick:       e.loop.CurrentTick(),
		ElapsedTime:       e.elapsed,
		IsStable:          outcome.Settled,
		HasFallingTiles:   !physics.IsStable(e.state),
		HasPendingMatches: outcome.MatchesFound,
		DeltaTime:         dt,
	}
}

// RunUntilStable loops Tick until the board settles, bounded by
// cfg.MaxTicksPerRun. On exhaustion it returns the last result with
// IsStable forced false and emits a SimulationOverrun event — logged, the
// caller may continue ticking.
func (e *Engine) RunUntilStable() TickResult {
	var last TickResult
	limit := e.cfg.MaxTicksPerRun
	if limit <= 0 {
		limit = 1
	}

	ran, cascades := 0, 0
	for ran < limit {
		last = e.Tick()
		ran++
		if last.HasPendingMatches {
			cascades++
		}
		if last.IsStable {
			e.metrics.ObserveCascadeDepth(cascades)
			return last
		}
	}

	last.IsStable = false
	log.Printf("⚠️ sim: run_until_stable hit max_ticks_per_run=%d without settling", limit)
	e.metrics.ObserveCascadeDepth(cascades)
	e.metrics.RecordOverrun()
	if e.collector.IsEnabled() {
		e.collector.Emit(events.Event{
			Type:    events.TypeSimulationOverrun,
			Tick:    e.loop.CurrentTick(),
			SimTime: e.elapsed,
			Payload: events.SimulationOverrunPayload{TicksRun: ran, TickLimit: limit},
		})
	}
	return last
}

// TrySwap validates and applies a candidate move: from and to must be
// adjacent, in bounds, and hold tiles; the swap is committed only if it
// produces at least one match or involves a bomb tile, otherwise it is
// reverted and the call returns false with no state mutation and no event.
func (e *Engine) TrySwap(from, to grid.Cell) bool {
	if !e.state.IsValid(from) || !e.state.IsValid(to) || !grid.Adjacent(from, to) {
		return false
	}

	tFrom, tTo := e.state.At(from), e.state.At(to)
	if tFrom.IsEmpty() || tTo.IsEmpty() {
		return false
	}

	e.state.SetAt(from, tTo)
	e.state.SetAt(to, tFrom)

	finder := e.loop.Finder
	producesMatch := finder.HasMatchAt(e.state, from) || finder.HasMatchAt(e.state, to)
	involvesBomb := tFrom.Bomb != grid.BombNone || tTo.Bomb != grid.BombNone

	if !producesMatch && !involvesBomb {
		e.state.SetAt(from, tFrom)
		e.state.SetAt(to, tTo)
		return false
	}

	if involvesBomb {
		e.loop.PowerUps.ProcessSpecialMove(e.state, from, to, e.collector)
	}

	e.state.MoveCount++
	return true
}

// DrainEvents returns every event collected since the last drain and clears
// the buffer. With EmitEvents disabled this always returns nil.
func (e *Engine) DrainEvents() []events.Event {
	if e.buffered == nil {
		return nil
	}
	return e.buffered.DrainEvents()
}

// CurrentTick returns the tick number the next Tick call will run as.
func (e *Engine) CurrentTick() int64 { return e.loop.CurrentTick() }

// BombsActivated returns the cumulative count of bomb tiles this engine's
// power-up handler has detonated since construction, across every TrySwap
// and Tick call.
func (e *Engine) BombsActivated() int { return e.loop.PowerUps.Activated() }
