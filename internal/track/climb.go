package track

import "sort"

// climbState is the in-progress climb threaded through the single pass over
// the simplified sequence.
type climbState struct {
	startIdx  int
	startElev float64
	maxElev   float64
	maxIdx    int
	flatCount int
}

func newClimbState(idx int, elev float64) climbState {
	return climbState{startIdx: idx, startElev: elev, maxElev: elev, maxIdx: idx}
}

// step advances the state machine by one point. When a descent beyond the
// threshold or a prolonged flat section terminates the climb, step reports
// the candidate span [startIdx, endIdx] and restarts the state at the
// current point.
func (s *climbState) step(idx int, elev float64, cfg Config) (emit bool, startIdx, endIdx int) {
	if elev > s.maxElev {
		s.maxElev = elev
		s.maxIdx = idx
		s.flatCount = 0
		return false, 0, 0
	}
	s.flatCount++
	if s.maxElev-elev > cfg.ClimbDescentM || s.flatCount >= cfg.ClimbFlatLimit {
		startIdx, endIdx = s.startIdx, s.maxIdx
		*s = newClimbState(idx, elev)
		return true, startIdx, endIdx
	}
	return false, 0, 0
}

type rankedClimb struct {
	Climb
	score float64
}

// DetectClimbs walks the simplified sequence once, collecting candidate
// ascents and returning the hardest ones, at most three, ranked by a score
// balancing raw gain against steepness.
func DetectClimbs(points []SimplifiedPoint, cfg Config) []Climb {
	var state *climbState
	var candidates []rankedClimb

	for i := range points {
		if points[i].Elevation == nil {
			continue
		}
		elev := *points[i].Elevation
		if state == nil {
			s := newClimbState(i, elev)
			state = &s
			continue
		}
		if emit, start, end := state.step(i, elev, cfg); emit {
			if c, ok := buildClimb(points, start, end, cfg); ok {
				candidates = append(candidates, c)
			}
		}
	}
	if state != nil {
		// Flush the still-open climb at sequence end.
		if c, ok := buildClimb(points, state.startIdx, state.maxIdx, cfg); ok {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}

	climbs := make([]Climb, len(candidates))
	for i, c := range candidates {
		climbs[i] = c.Climb
	}
	return climbs
}

// buildClimb applies the minimum-gain and positive-distance filters to a
// candidate span and scores the survivors.
func buildClimb(points []SimplifiedPoint, start, end int, cfg Config) (rankedClimb, bool) {
	if end <= start {
		return rankedClimb{}, false
	}
	gain := *points[end].Elevation - *points[start].Elevation
	distM := (points[end].DistanceKm - points[start].DistanceKm) * 1000
	if gain < cfg.MinClimbGainM || distM <= 0 {
		return rankedClimb{}, false
	}
	grad := gain / distM * 100
	return rankedClimb{
		Climb: Climb{
			StartKm:        points[start].DistanceKm,
			EndKm:          points[end].DistanceKm,
			ElevationGainM: gain,
			AvgGradientPct: grad,
		},
		score: gain * (1 + grad/10),
	}, true
}
