// Command matchsim is a headless demo driver for the simulation core: it
// loads a scenario, runs it for a fixed number of ticks, and logs what
// happened. It is deliberately thin — the simulation packages under
// internal/ never touch a flag, an env var, or a file; that ambient bootstrap
// lives here (with internal/config's env readers, used only from this
// command), keeping config loading and process wiring out of the engine
// packages.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"match3core/internal/grid"
	"match3core/internal/metrics"
	"match3core/internal/rngdomain"
	"match3core/internal/sim"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a YAML scenario file (defaults to an 8x8, 5-color board)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	scenario, err := LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("loading scenario %q: %v", *scenarioPath, err)
	}
	scenario = scenario.ApplyEnvOverrides()

	state, err := grid.NewGameState(scenario.GameConfig(), rngdomain.NewSeedManager(scenario.Seed))
	if err != nil {
		log.Fatalf("constructing game state: %v", err)
	}

	m := metrics.New()
	engine := sim.New(state, scenario.SimConfig()).WithMetrics(m)

	log.Printf("matchsim: %dx%d board, %d colors, seed=%d, preset=%s, %d ticks",
		scenario.Width, scenario.Height, scenario.Colors, scenario.Seed, scenario.Preset, scenario.Ticks)

	for i := 0; i < scenario.Ticks; i++ {
		result := engine.Tick()
		for _, ev := range engine.DrainEvents() {
			log.Printf("tick=%d sim_time=%.2f %s", ev.Tick, ev.SimTime, ev.Type)
		}
		if result.IsStable {
			if engine.ShuffleIfStuck() {
				log.Printf("tick %d: no legal move remained, board reshuffled", result.CurrentTick)
			}
			if i > 0 && i%10 == 0 {
				log.Printf("tick %d: stable, score=%d", result.CurrentTick, state.Score)
			}
		}
	}

	log.Printf("done: %d ticks, final score=%d, move_count=%d", scenario.Ticks, state.Score, state.MoveCount)
}
