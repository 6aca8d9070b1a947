package rngdomain

import "log"

// SeedManager owns a master seed and a memoized stream per Domain. It is
// reconstructible bit-exactly from (masterSeed, overrides) alone, and
// clonable for independent MCTS branches.
type SeedManager struct {
	masterSeed uint64
	hasMaster  bool
	overrides  map[Domain]uint64
	streams    map[Domain]*Stream
}

// NewSeedManager creates a manager with a known master seed. Every domain
// stream derived from it reproduces bit-exactly across processes given the
// same master seed and override set.
func NewSeedManager(masterSeed uint64) *SeedManager {
	return &SeedManager{
		masterSeed: masterSeed,
		hasMaster:  true,
		overrides:  make(map[Domain]uint64),
		streams:    make(map[Domain]*Stream),
	}
}

// NewNonDeterministicSeedManager builds a manager with no master seed. Every
// domain stream it produces is still internally consistent (same process,
// same manager) but will not reproduce across runs. This is not treated as a
// hard failure — no operation currently requires determinism
// unconditionally — but each first access logs a warning.
func NewNonDeterministicSeedManager(fallbackSeed uint64) *SeedManager {
	return &SeedManager{
		masterSeed: fallbackSeed,
		hasMaster:  false,
		overrides:  make(map[Domain]uint64),
		streams:    make(map[Domain]*Stream),
	}
}

// Reconstruct rebuilds a manager from exactly the inputs needed to replay a
// run: a master seed plus the override table. Two managers built with
// Reconstruct from equal inputs produce identical streams.
func Reconstruct(masterSeed uint64, overrides map[Domain]uint64) *SeedManager {
	m := NewSeedManager(masterSeed)
	for d, seed := range overrides {
		m.SetOverride(d, seed)
	}
	return m
}

// Get returns the memoized stream for domain, deriving and caching it on
// first access.
func (m *SeedManager) Get(domain Domain) *Stream {
	if s, ok := m.streams[domain]; ok {
		return s
	}
	seed, overridden := m.overrides[domain]
	if !overridden {
		seed = deriveSeed(m.masterSeed, domain)
	}
	if !m.hasMaster {
		log.Printf("⚠️ rngdomain: no master seed set, %s stream will not reproduce across runs", domain)
	}
	s := newStreamFromSeed(seed)
	m.streams[domain] = s
	return s
}

// SetOverride replaces domain's stream with a fresh one seeded directly from
// seed, discarding whatever stream (derived or previously overridden) was in
// place. Two managers sharing a master seed and the same (domain, seed)
// override reproduce identically on that domain regardless of master seed.
func (m *SeedManager) SetOverride(domain Domain, seed uint64) {
	m.overrides[domain] = seed
	m.streams[domain] = newStreamFromSeed(seed)
}

// Overrides returns a copy of the current override table, usable with
// Reconstruct to rebuild this manager's domains elsewhere.
func (m *SeedManager) Overrides() map[Domain]uint64 {
	out := make(map[Domain]uint64, len(m.overrides))
	for d, s := range m.overrides {
		out[d] = s
	}
	return out
}

// MasterSeed returns the manager's master seed.
func (m *SeedManager) MasterSeed() uint64 {
	return m.masterSeed
}

// Clone returns an independent manager whose streams continue identically
// from this point but share no mutable state with the original, so MCTS
// branches stop interfering with each other.
func (m *SeedManager) Clone() *SeedManager {
	c := &SeedManager{
		masterSeed: m.masterSeed,
		hasMaster:  m.hasMaster,
		overrides:  m.Overrides(),
		streams:    make(map[Domain]*Stream, len(m.streams)),
	}
	for d, s := range m.streams {
		c.streams[d] = s.Clone()
	}
	return c
}
