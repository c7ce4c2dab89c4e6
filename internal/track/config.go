package track

// Config carries every tunable threshold for one analysis run. Start from
// DefaultConfig and override individual fields; the zero value disables the
// size ceilings but leaves the algorithm thresholds meaningless.
type Config struct {
	// EpsilonDeg is the Douglas-Peucker tolerance in degrees.
	EpsilonDeg float64

	// MinClimbGainM is the minimum elevation gain for a detected climb.
	MinClimbGainM float64
	// ClimbDescentM terminates an open climb once the profile drops this
	// far below its running maximum.
	ClimbDescentM float64
	// ClimbFlatLimit terminates an open climb after this many consecutive
	// non-rising points.
	ClimbFlatLimit int

	// StopSpeedKmh and StopMinMinutes classify a segment as a stop when the
	// segment speed is below the former and the segment duration exceeds
	// the latter.
	StopSpeedKmh   float64
	StopMinMinutes float64

	// Gradient bucket upper bounds, in percent of absolute slope.
	FlatMaxPct     float64
	ModerateMaxPct float64
	SteepMaxPct    float64

	// Plausible terrestrial elevation band, in meters.
	MinElevationM float64
	MaxElevationM float64

	// MaxInputBytes and MaxPoints reject oversized inputs before any
	// simplification work. Zero disables the respective ceiling.
	MaxInputBytes int
	MaxPoints     int

	// TimestampSample is how many leading points are checked when deciding
	// whether the track carries timestamps.
	TimestampSample int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		EpsilonDeg:      0.0001, // ~10 m
		MinClimbGainM:   50,
		ClimbDescentM:   10,
		ClimbFlatLimit:  3,
		StopSpeedKmh:    3,
		StopMinMinutes:  2,
		FlatMaxPct:      3,
		ModerateMaxPct:  6,
		SteepMaxPct:     10,
		MinElevationM:   -420, // Dead Sea shore
		MaxElevationM:   8850, // Everest summit
		MaxInputBytes:   20 << 20,
		MaxPoints:       500_000,
		TimestampSample: 100,
	}
}
