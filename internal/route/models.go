package route

import "time"

// Route is the stored summary row for one processed track. The full Stats
// document lives in a jsonb column and is served separately.
type Route struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	DistanceKm     float64   `json:"distance_km"`
	ElevationGainM float64   `json:"elevation_gain_m"`
	PointCount     int       `json:"point_count"`
	HasElevation   bool      `json:"has_elevation"`
	HasTimestamps  bool      `json:"has_timestamps"`
	CreatedAt      time.Time `json:"created_at"`
}
