package track

import "math"

// ClassifyGradients buckets every simplified segment by the magnitude of
// its slope. Segments missing elevation on either endpoint are excluded
// from both the bucket distances and the percentage denominator, so the
// percentages cover elevation-annotated distance only. A track without any
// elevation yields all-zero buckets.
func ClassifyGradients(points []SimplifiedPoint, cfg Config) GradientDistribution {
	var dist GradientDistribution
	var coveredKm float64

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if prev.Elevation == nil || cur.Elevation == nil {
			continue
		}
		segKm := cur.DistanceKm - prev.DistanceKm
		if segKm <= 0 {
			continue
		}
		gradPct := math.Abs(*cur.Elevation-*prev.Elevation) / (segKm * 1000) * 100
		coveredKm += segKm

		switch {
		case gradPct <= cfg.FlatMaxPct:
			dist.Flat.DistanceKm += segKm
		case gradPct <= cfg.ModerateMaxPct:
			dist.Moderate.DistanceKm += segKm
		case gradPct <= cfg.SteepMaxPct:
			dist.Steep.DistanceKm += segKm
		default:
			dist.VerySteep.DistanceKm += segKm
		}
	}

	if coveredKm > 0 {
		dist.Flat.Percent = dist.Flat.DistanceKm / coveredKm * 100
		dist.Moderate.Percent = dist.Moderate.DistanceKm / coveredKm * 100
		dist.Steep.Percent = dist.Steep.DistanceKm / coveredKm * 100
		dist.VerySteep.Percent = dist.VerySteep.DistanceKm / coveredKm * 100
	}
	return dist
}
