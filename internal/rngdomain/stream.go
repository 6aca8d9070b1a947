// Package rngdomain implements the simulation's deterministic, domain-
// partitioned random number service. Every stream is a self-contained
// SplitMix64 generator so its entire state is a single uint64, making
// checkpointing (GetState/SetState) and cloning (for AI/MCTS branch search)
// exact and allocation-free.
package rngdomain

import "match3core/internal/simerr"

// goldenGamma is the SplitMix64 increment constant (Weyl sequence step).
const goldenGamma uint64 = 0x9E3779B97F4A7C15

// corruptState is a reserved sentinel that SetState refuses, giving the
// RngStateCorrupt error path a concrete trigger.
const corruptState uint64 = 0xFFFFFFFFFFFFFFFF

// Stream is one deterministic pseudo-random sequence. Copying a Stream by
// value produces an independent, bit-identical-to-this-point stream; this is
// what GameState.Clone relies on for MCTS branching.
type Stream struct {
	state uint64
}

func newStreamFromSeed(seed uint64) *Stream {
	s := &Stream{state: seed}
	// Burn one round so the externally visible state never equals the raw
	// seed value verbatim (keeps GetState() a meaningful checkpoint rather
	// than an alias for the constructor argument).
	s.step()
	return s
}

// step advances the generator and returns the next mixed output. This is the
// canonical SplitMix64 round: add the Weyl increment, then run the
// fixed-point avalanche mix used by java.util.SplittableRandom and Go's own
// math/rand/v2 SplitMix implementation.
func (s *Stream) step() uint64 {
	s.state += goldenGamma
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// NextU64 returns the next raw 64-bit output.
func (s *Stream) NextU64() uint64 {
	return s.step()
}

// NextF32 returns a value in [0, 1) using the top 24 bits of entropy, enough
// precision for float32 without bias toward either end of the range.
func (s *Stream) NextF32() float32 {
	return float32(s.NextU64()>>40) / float32(1<<24)
}

// NextU32 returns a value in [0, max). Returns 0 if max == 0.
func (s *Stream) NextU32(max uint32) uint32 {
	if max == 0 {
		return 0
	}
	return uint32(s.NextU64() % uint64(max))
}

// NextI32 returns a value in [min, max). Returns min if max <= min.
func (s *Stream) NextI32(min, max int32) int32 {
	if max <= min {
		return min
	}
	span := uint32(max - min)
	return min + int32(s.NextU32(span))
}

// GetState returns the stream's entire state, suitable for checkpointing.
func (s *Stream) GetState() uint64 {
	return s.state
}

// SetState restores a previously checkpointed state. Refuses the reserved
// corrupt sentinel, leaving the prior state untouched.
func (s *Stream) SetState(state uint64) error {
	if state == corruptState {
		return simerr.ErrRngStateCorrupt
	}
	s.state = state
	return nil
}

// Clone returns an independent copy that continues identically from this
// point — no shared mutable state with the original.
func (s *Stream) Clone() *Stream {
	c := *s
	return &c
}
