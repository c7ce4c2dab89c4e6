package track

import (
	"math"

	"backend-trailmetrics/internal/shared/geo"
)

// Simplify reduces the sequence with Douglas-Peucker on the lat/lon curve
// and rebuilds the cumulative distance and gradient annotations for the
// retained points. Sequences shorter than three points are carried over
// without simplification.
func Simplify(points []Point, cfg Config) []SimplifiedPoint {
	var retained []int
	if len(points) < 3 {
		retained = make([]int, len(points))
		for i := range retained {
			retained[i] = i
		}
	} else {
		retained = douglasPeucker(points, cfg.EpsilonDeg)
	}
	return annotate(points, retained)
}

// douglasPeucker returns the indices of the retained points, always
// including both endpoints. Correspondence stays index-based so that
// distinct points sharing identical coordinates never collapse.
func douglasPeucker(points []Point, epsilonDeg float64) []int {
	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	markKept(points, 0, len(points)-1, epsilonDeg, keep)

	retained := make([]int, 0, len(points))
	for i, k := range keep {
		if k {
			retained = append(retained, i)
		}
	}
	return retained
}

func markKept(points []Point, first, last int, epsilon float64, keep []bool) {
	if last-first < 2 {
		return
	}
	maxDist, maxIdx := 0.0, 0
	for i := first + 1; i < last; i++ {
		if d := perpendicularDistance(points[i], points[first], points[last]); d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	if maxDist > epsilon {
		keep[maxIdx] = true
		markKept(points, first, maxIdx, epsilon, keep)
		markKept(points, maxIdx, last, epsilon, keep)
	}
}

// perpendicularDistance measures the deviation of p from the chord a-b in
// raw degrees, matching the unit of the tolerance.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	if dx == 0 && dy == 0 {
		return math.Hypot(p.Lon-a.Lon, p.Lat-a.Lat)
	}
	num := math.Abs(dy*p.Lon - dx*p.Lat + b.Lon*a.Lat - b.Lat*a.Lon)
	return num / math.Hypot(dx, dy)
}

func annotate(points []Point, retained []int) []SimplifiedPoint {
	out := make([]SimplifiedPoint, 0, len(retained))
	cumKm := 0.0
	for seq, idx := range retained {
		p := points[idx]
		sp := SimplifiedPoint{
			Lat:       p.Lat,
			Lon:       p.Lon,
			Elevation: p.Elevation,
			Sequence:  seq,
		}
		if seq > 0 {
			prev := points[retained[seq-1]]
			segKm := geo.HaversineKm(prev.Lat, prev.Lon, p.Lat, p.Lon)
			cumKm += segKm
			// Zero-length segments have no defined gradient.
			if p.Elevation != nil && prev.Elevation != nil && segKm > 0 {
				g := (*p.Elevation - *prev.Elevation) / (segKm * 1000) * 100
				sp.Gradient = &g
			}
		}
		sp.DistanceKm = cumKm
		out = append(out, sp)
	}
	return out
}
