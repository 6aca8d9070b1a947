package grid

// GameConfig is the construction-time configuration surface: board shape,
// tile-type weighting, move budget, and the physics/refill tunables that
// systems downstream read back off GameState.Config.
type GameConfig struct {
	Width, Height  int
	TileTypesCount int

	// TypeWeights, if non-nil, must have length TileTypesCount and gives the
	// relative spawn weight of each tile type: index i holds the weight of
	// type i+1 (TypeEmpty has no entry). A nil slice means uniform weighting.
	TypeWeights []float64

	MoveLimit        int32
	TargetDifficulty float32

	GravityAccel     float64
	TerminalVelocity float64
	RefillMaxRetries int
}

// DefaultGameConfig returns a standard 8x8, 5-color board, following a
// Default*() constructor style.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Width:            8,
		Height:           8,
		TileTypesCount:   5,
		MoveLimit:        30,
		TargetDifficulty: 0.5,
		GravityAccel:     30,
		TerminalVelocity: 25,
		RefillMaxRetries: 8,
	}
}

// WeightFor returns the spawn weight for t, defaulting to 1.0 when no
// explicit weight table was configured.
func (c GameConfig) WeightFor(t TileType) float64 {
	idx := int(t) - 1
	if c.TypeWeights == nil || idx < 0 || idx >= len(c.TypeWeights) {
		return 1.0
	}
	return c.TypeWeights[idx]
}
