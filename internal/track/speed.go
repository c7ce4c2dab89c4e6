package track

import "backend-trailmetrics/internal/shared/geo"

// AnalyzeSpeed computes elapsed time, moving time, and average/maximum speed
// over the raw point sequence. Stops keep their distance but lose their
// time, so the average reflects speed while actually moving. Returns nil
// when the endpoints carry no timestamps.
func AnalyzeSpeed(points []Point, cfg Config) *SpeedMetrics {
	if len(points) < 2 {
		return nil
	}
	first, last := points[0].Time, points[len(points)-1].Time
	if first == nil || last == nil {
		return nil
	}

	totalMin := last.Sub(*first).Minutes()
	var movingMin, distKm, maxSpeed float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		segKm := geo.HaversineKm(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		distKm += segKm

		if prev.Time == nil || cur.Time == nil {
			continue
		}
		segMin := cur.Time.Sub(*prev.Time).Minutes()
		if segMin <= 0 {
			continue
		}
		segSpeed := segKm / segMin * 60
		if segSpeed > maxSpeed {
			maxSpeed = segSpeed
		}
		if segSpeed < cfg.StopSpeedKmh && segMin > cfg.StopMinMinutes {
			continue
		}
		movingMin += segMin
	}

	metrics := &SpeedMetrics{
		MaxSpeedKmh:       maxSpeed,
		TotalTimeMinutes:  totalMin,
		MovingTimeMinutes: movingMin,
	}
	if movingMin > 0 {
		avg := distKm / movingMin * 60
		metrics.AvgSpeedKmh = &avg
	}
	return metrics
}
