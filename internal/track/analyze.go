package track

// Analyze parses a GPX byte buffer and runs the full analysis pipeline.
// The byte ceiling is enforced before parsing; everything else matches
// AnalyzePoints.
func Analyze(data []byte, cfg Config) (Stats, error) {
	if cfg.MaxInputBytes > 0 && len(data) > cfg.MaxInputBytes {
		return Stats{}, &InputTooLargeError{Bytes: len(data), MaxBytes: cfg.MaxInputBytes}
	}
	points, err := ParseGPX(data)
	if err != nil {
		return Stats{}, err
	}
	return AnalyzePoints(points, cfg)
}

// AnalyzePoints validates an already-parsed point sequence, simplifies it,
// and fans out to the speed, climb, and gradient analyzers. The whole run
// is deterministic and synchronous; on any error no partial statistics are
// returned.
func AnalyzePoints(points []Point, cfg Config) (Stats, error) {
	if len(points) == 0 {
		return Stats{}, ErrEmptyTrack
	}
	if cfg.MaxPoints > 0 && len(points) > cfg.MaxPoints {
		return Stats{}, &InputTooLargeError{Points: len(points), MaxPoints: cfg.MaxPoints}
	}
	if err := validateElevations(points, cfg); err != nil {
		return Stats{}, err
	}

	simplified := Simplify(points, cfg)

	stats := Stats{
		DistanceKm:           simplified[len(simplified)-1].DistanceKm,
		Start:                Coordinate{Lat: points[0].Lat, Lon: points[0].Lon},
		End:                  Coordinate{Lat: points[len(points)-1].Lat, Lon: points[len(points)-1].Lon},
		OriginalPointCount:   len(points),
		SimplifiedPointCount: len(simplified),
		HasElevation:         anyElevation(points),
		HasTimestamps:        anyTimestamps(points, cfg.TimestampSample),
		Points:               simplified,
		Climbs:               []Climb{},
	}

	if stats.HasElevation {
		gain, loss, minE, maxE := elevationSummary(points)
		stats.ElevationGainM = &gain
		stats.ElevationLossM = &loss
		stats.MinElevationM = &minE
		stats.MaxElevationM = &maxE
		stats.Climbs = DetectClimbs(simplified, cfg)
		stats.Gradients = ClassifyGradients(simplified, cfg)
	}
	if stats.HasTimestamps {
		stats.Speed = AnalyzeSpeed(points, cfg)
	}
	return stats, nil
}

// elevationSummary folds gain, loss, and the elevation extremes over the
// raw sequence, pairing each elevation-carrying point with the previous
// one that also carries elevation.
func elevationSummary(points []Point) (gain, loss, minElev, maxElev float64) {
	var prev *float64
	first := true
	for i := range points {
		ele := points[i].Elevation
		if ele == nil {
			continue
		}
		if first {
			minElev, maxElev = *ele, *ele
			first = false
		} else {
			if *ele < minElev {
				minElev = *ele
			}
			if *ele > maxElev {
				maxElev = *ele
			}
			if delta := *ele - *prev; delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		prev = ele
	}
	return gain, loss, minElev, maxElev
}
