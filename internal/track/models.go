package track

import "time"

// Point is one GPS fix as parsed from the input track. Elevation and Time
// are nil when the source omits them; a Point is never mutated after the
// parser creates it.
type Point struct {
	Lat       float64
	Lon       float64
	Elevation *float64
	Time      *time.Time
}

// SimplifiedPoint is one retained point after curve simplification,
// annotated with the cumulative distance from the route start and the
// gradient of the segment leading into it. Gradient is nil for the first
// point and whenever either endpoint of the segment lacks elevation.
type SimplifiedPoint struct {
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Elevation  *float64 `json:"elevation_m,omitempty"`
	DistanceKm float64  `json:"distance_km"`
	Sequence   int      `json:"sequence"`
	Gradient   *float64 `json:"gradient_pct,omitempty"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SpeedMetrics is nil on the enclosing Stats when the track carries no
// timestamps. AvgSpeedKmh is additionally nil when the moving time is zero.
type SpeedMetrics struct {
	AvgSpeedKmh       *float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh       float64  `json:"max_speed_kmh"`
	TotalTimeMinutes  float64  `json:"total_time_minutes"`
	MovingTimeMinutes float64  `json:"moving_time_minutes"`
}

// Climb is one sustained ascent, located by cumulative route distance.
type Climb struct {
	StartKm        float64 `json:"start_km"`
	EndKm          float64 `json:"end_km"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	AvgGradientPct float64 `json:"avg_gradient_pct"`
}

type GradientBucket struct {
	DistanceKm float64 `json:"distance_km"`
	Percent    float64 `json:"percent"`
}

// GradientDistribution splits the elevation-covered distance into four
// slope bands by absolute gradient.
type GradientDistribution struct {
	Flat      GradientBucket `json:"flat"`
	Moderate  GradientBucket `json:"moderate"`
	Steep     GradientBucket `json:"steep"`
	VerySteep GradientBucket `json:"very_steep"`
}

// Stats is the full analysis result for one track. The elevation summary
// fields are all nil together when HasElevation is false, and Speed is nil
// when HasTimestamps is false.
type Stats struct {
	DistanceKm           float64              `json:"distance_km"`
	ElevationGainM       *float64             `json:"elevation_gain_m,omitempty"`
	ElevationLossM       *float64             `json:"elevation_loss_m,omitempty"`
	MaxElevationM        *float64             `json:"max_elevation_m,omitempty"`
	MinElevationM        *float64             `json:"min_elevation_m,omitempty"`
	Start                Coordinate           `json:"start"`
	End                  Coordinate           `json:"end"`
	OriginalPointCount   int                  `json:"original_point_count"`
	SimplifiedPointCount int                  `json:"simplified_point_count"`
	HasElevation         bool                 `json:"has_elevation"`
	HasTimestamps        bool                 `json:"has_timestamps"`
	Points               []SimplifiedPoint    `json:"points"`
	Speed                *SpeedMetrics        `json:"speed,omitempty"`
	Climbs               []Climb              `json:"climbs"`
	Gradients            GradientDistribution `json:"gradients"`
}
