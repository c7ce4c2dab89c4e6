package track

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

// mountainGPX builds a timestamped out-and-back track climbing 400 m.
func mountainGPX(t *testing.T) []byte {
	t.Helper()
	start := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	var segs strings.Builder
	for i := 0; i < 40; i++ {
		ele := 800 + 20*float64(i)
		if i >= 20 {
			ele = 800 + 20*float64(40-i)
		}
		ts := start.Add(time.Duration(i) * 2 * time.Minute)
		segs.WriteString(trkpt(46.5+float64(i)*latDegPerKm/4, 8.0+math.Sin(float64(i)/3)*0.002, f64(ele), &ts))
	}
	return gpxDocument(segs.String())
}

func TestAnalyzeFullPipeline(t *testing.T) {
	stats, err := Analyze(mountainGPX(t), DefaultConfig())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if !stats.HasElevation || !stats.HasTimestamps {
		t.Fatalf("expected elevation and timestamp flags set")
	}
	if stats.SimplifiedPointCount > stats.OriginalPointCount {
		t.Fatalf("simplified count exceeds original")
	}
	if stats.DistanceKm <= 0 {
		t.Fatalf("expected positive distance")
	}
	if stats.ElevationGainM == nil || *stats.ElevationGainM < 0 {
		t.Fatalf("expected non-negative gain, got %v", stats.ElevationGainM)
	}
	if stats.ElevationLossM == nil || *stats.ElevationLossM < 0 {
		t.Fatalf("expected non-negative loss, got %v", stats.ElevationLossM)
	}
	if *stats.MaxElevationM < *stats.MinElevationM {
		t.Fatalf("max elevation below min")
	}
	if stats.Speed == nil {
		t.Fatalf("expected speed metrics for timestamped track")
	}
	if len(stats.Climbs) == 0 || len(stats.Climbs) > 3 {
		t.Fatalf("expected 1-3 climbs, got %d", len(stats.Climbs))
	}
	for _, c := range stats.Climbs {
		if c.ElevationGainM < 50 {
			t.Fatalf("climb below minimum gain: %+v", c)
		}
	}

	total := stats.Gradients.Flat.Percent + stats.Gradients.Moderate.Percent +
		stats.Gradients.Steep.Percent + stats.Gradients.VerySteep.Percent
	if math.Abs(total-100) > 1 {
		t.Fatalf("gradient percentages sum to %v", total)
	}
}

func TestAnalyzeEmptyTrack(t *testing.T) {
	_, err := Analyze(gpxDocument(""), DefaultConfig())
	if !errors.Is(err, ErrEmptyTrack) {
		t.Fatalf("expected ErrEmptyTrack, got %v", err)
	}
}

func TestAnalyzeElevationAnomaly(t *testing.T) {
	doc := gpxDocument(
		trkpt(46.5, 8.0, f64(1200), nil) + trkpt(46.51, 8.01, f64(10000), nil),
	)
	_, err := Analyze(doc, DefaultConfig())
	var anomaly *ElevationAnomalyError
	if !errors.As(err, &anomaly) {
		t.Fatalf("expected ElevationAnomalyError, got %v", err)
	}
}

func TestAnalyzeInputTooLargeBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInputBytes = 16
	_, err := Analyze(mountainGPX(t), cfg)
	var tooLarge *InputTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected InputTooLargeError, got %v", err)
	}
	if !strings.Contains(tooLarge.Error(), "bytes") {
		t.Fatalf("expected byte limit in message: %s", tooLarge.Error())
	}
}

func TestAnalyzePointsTooMany(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPoints = 5
	points := make([]Point, 6)
	for i := range points {
		points[i] = Point{Lat: float64(i) * latDegPerKm, Lon: 0}
	}
	_, err := AnalyzePoints(points, cfg)
	var tooLarge *InputTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected InputTooLargeError, got %v", err)
	}
	if !strings.Contains(tooLarge.Error(), "points") {
		t.Fatalf("expected point limit in message: %s", tooLarge.Error())
	}
}

func TestAnalyzeNoElevationGracefulPath(t *testing.T) {
	doc := gpxDocument(
		trkpt(46.5, 8.0, nil, nil) +
			trkpt(46.51, 8.01, nil, nil) +
			trkpt(46.52, 8.0, nil, nil),
	)
	stats, err := Analyze(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.HasElevation {
		t.Fatalf("expected has_elevation false")
	}
	if stats.ElevationGainM != nil || stats.ElevationLossM != nil ||
		stats.MaxElevationM != nil || stats.MinElevationM != nil {
		t.Fatalf("elevation fields must all be nil together")
	}
	for _, p := range stats.Points {
		if p.Gradient != nil {
			t.Fatalf("per-point gradient must be nil without elevation")
		}
	}
	if len(stats.Climbs) != 0 {
		t.Fatalf("expected no climbs without elevation")
	}
	if stats.Speed != nil {
		t.Fatalf("expected nil speed metrics without timestamps")
	}
}

func TestAnalyzePointsTwoPointPassthrough(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: latDegPerKm, Lon: 0},
	}
	stats, err := AnalyzePoints(points, DefaultConfig())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.SimplifiedPointCount != 2 {
		t.Fatalf("expected <3 point input unmodified, got %d points", stats.SimplifiedPointCount)
	}
	if stats.Start.Lat != 0 || stats.End.Lat != latDegPerKm {
		t.Fatalf("unexpected endpoints: %+v %+v", stats.Start, stats.End)
	}
}
