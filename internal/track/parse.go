package track

import (
	"math"

	gpxlib "github.com/tkrajina/gpxgo/gpx"
)

// ParseGPX decodes a GPX document and flattens every track segment, in
// document order, into one point sequence. Multi-segment and multi-track
// files become a single route.
func ParseGPX(data []byte) ([]Point, error) {
	doc, err := gpxlib.ParseBytes(data)
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	var points []Point
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for i := range seg.Points {
				src := &seg.Points[i]
				p := Point{Lat: src.Latitude, Lon: src.Longitude}
				if src.Elevation.NotNull() {
					ele := src.Elevation.Value()
					p.Elevation = &ele
				}
				if !src.Timestamp.IsZero() {
					ts := src.Timestamp
					p.Time = &ts
				}
				points = append(points, p)
			}
		}
	}
	return points, nil
}

func anyElevation(points []Point) bool {
	for i := range points {
		if points[i].Elevation != nil {
			return true
		}
	}
	return false
}

// anyTimestamps only samples a prefix of the sequence; a timestamp within
// the first sample points is taken as timestamps being present throughout,
// which avoids a full scan on very large tracks.
func anyTimestamps(points []Point, sample int) bool {
	if sample <= 0 || sample > len(points) {
		sample = len(points)
	}
	for i := 0; i < sample; i++ {
		if points[i].Time != nil {
			return true
		}
	}
	return false
}

// validateElevations rejects the whole track when any elevation value falls
// outside the configured plausibility band. Tracks without elevation pass.
func validateElevations(points []Point, cfg Config) error {
	minSeen, maxSeen := math.Inf(1), math.Inf(-1)
	found := false
	for i := range points {
		if points[i].Elevation == nil {
			continue
		}
		found = true
		ele := *points[i].Elevation
		if ele < minSeen {
			minSeen = ele
		}
		if ele > maxSeen {
			maxSeen = ele
		}
	}
	if !found {
		return nil
	}
	if minSeen < cfg.MinElevationM || maxSeen > cfg.MaxElevationM {
		return &ElevationAnomalyError{
			MinSeenM:  minSeen,
			MaxSeenM:  maxSeen,
			MinValidM: cfg.MinElevationM,
			MaxValidM: cfg.MaxElevationM,
		}
	}
	return nil
}
