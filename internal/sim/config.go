// Package sim is the outer driver: it owns a SimulationConfig, steps the
// per-tick loop, and exposes the pure preview and move-validation operations
// consumed by presentation and AI callers. The preset/config shape is a
// structured-defaults pattern adapted from server listen/CORS settings to
// tick pacing and run bounds.
package sim

// Config is the construction-time tick-pacing surface.
type Config struct {
	FixedDeltaTime float64
	MaxTicksPerRun int
	EmitEvents     bool
	TimeScale      float32
}

// DefaultConfig mirrors ForHumanPlay: 60 Hz, a generous run bound, events on.
func DefaultConfig() Config {
	return Config{
		FixedDeltaTime: 1.0 / 60.0,
		MaxTicksPerRun: 10000,
		EmitEvents:     true,
		TimeScale:      1.0,
	}
}

// ForHumanPlay is an alias for DefaultConfig, named to match the standard
// preset list.
func ForHumanPlay() Config {
	return DefaultConfig()
}

// ForAI trades tick resolution for throughput: a coarse 0.1s step, events
// disabled (no collector allocation/append cost on the hot path), and a
// higher run-until-stable budget since coarser steps settle in fewer ticks.
func ForAI() Config {
	return Config{
		FixedDeltaTime: 0.1,
		MaxTicksPerRun: 50000,
		EmitEvents:     false,
		TimeScale:      1.0,
	}
}
