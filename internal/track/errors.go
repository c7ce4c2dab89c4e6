package track

import (
	"errors"
	"fmt"
)

// ErrEmptyTrack signals an input that parsed cleanly but contains no points.
var ErrEmptyTrack = errors.New("track contains no points")

// FormatError wraps a container parse failure.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "invalid track format: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

// ElevationAnomalyError reports elevation values outside the plausible
// terrestrial band.
type ElevationAnomalyError struct {
	MinSeenM  float64
	MaxSeenM  float64
	MinValidM float64
	MaxValidM float64
}

func (e *ElevationAnomalyError) Error() string {
	return fmt.Sprintf("elevation out of range: observed [%.1f m, %.1f m], valid [%.1f m, %.1f m]",
		e.MinSeenM, e.MaxSeenM, e.MinValidM, e.MaxValidM)
}

// InputTooLargeError rejects inputs exceeding the configured byte or point
// ceiling. It is raised before any simplification work starts.
type InputTooLargeError struct {
	Bytes     int
	MaxBytes  int
	Points    int
	MaxPoints int
}

func (e *InputTooLargeError) Error() string {
	if e.MaxBytes > 0 && e.Bytes > e.MaxBytes {
		return fmt.Sprintf("track input too large: %d bytes (limit %d)", e.Bytes, e.MaxBytes)
	}
	return fmt.Sprintf("track has too many points: %d (limit %d)", e.Points, e.MaxPoints)
}
