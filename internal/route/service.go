package route

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend-trailmetrics/internal/db"
	"backend-trailmetrics/internal/notify"
	"backend-trailmetrics/internal/track"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "routes:stats:"

// ErrNotOwner is returned when a caller tries to delete a route they do not
// own.
var ErrNotOwner = errors.New("route not owned by caller")

type Service struct {
	db       db.Querier
	redis    *redis.Client
	hub      *notify.Hub
	engine   track.Config
	cacheTTL time.Duration
}

func NewService(querier db.Querier, redisClient *redis.Client, hub *notify.Hub, engine track.Config, cacheTTL time.Duration) *Service {
	return &Service{
		db:       querier,
		redis:    redisClient,
		hub:      hub,
		engine:   engine,
		cacheTTL: cacheTTL,
	}
}

// Upload analyzes a raw GPX buffer and persists both the summary row and
// the full stats document, retaining the original bytes alongside. The
// engine's typed errors pass through untouched for the handler to map.
func (s *Service) Upload(ctx context.Context, userID, name string, raw []byte) (Route, track.Stats, error) {
	stats, err := track.Analyze(raw, s.engine)
	if err != nil {
		return Route{}, track.Stats{}, err
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return Route{}, track.Stats{}, err
	}

	route := Route{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		DistanceKm:    stats.DistanceKm,
		PointCount:    stats.SimplifiedPointCount,
		HasElevation:  stats.HasElevation,
		HasTimestamps: stats.HasTimestamps,
	}
	if stats.ElevationGainM != nil {
		route.ElevationGainM = *stats.ElevationGainM
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, user_id, name, distance_km, elevation_gain_m, point_count, has_elevation, has_timestamps, stats, raw_gpx)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, route.ID, route.UserID, route.Name, route.DistanceKm, route.ElevationGainM,
		route.PointCount, route.HasElevation, route.HasTimestamps, statsJSON, raw)
	if err := row.Scan(&route.CreatedAt); err != nil {
		return Route{}, track.Stats{}, err
	}

	s.cacheStats(ctx, route.ID, statsJSON)

	if s.hub != nil {
		s.hub.Publish(userID, notify.RouteProcessed{
			RouteID:    route.ID,
			Name:       route.Name,
			DistanceKm: route.DistanceKm,
		})
	}

	return route, stats, nil
}

func (s *Service) GetRoute(ctx context.Context, id string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, distance_km, elevation_gain_m, point_count, has_elevation, has_timestamps, created_at
		FROM routes WHERE id=$1
	`, id)

	var r Route
	if err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.DistanceKm, &r.ElevationGainM,
		&r.PointCount, &r.HasElevation, &r.HasTimestamps, &r.CreatedAt); err != nil {
		return Route{}, err
	}
	return r, nil
}

// Stats serves the full stats document, preferring the redis cache and
// falling back to the stored jsonb on a miss.
func (s *Service) Stats(ctx context.Context, id string) (track.Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsKeyPrefix+id).Bytes(); err == nil {
			var stats track.Stats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return stats, nil
			}
		}
	}

	var statsJSON []byte
	row := s.db.QueryRow(ctx, `SELECT stats FROM routes WHERE id=$1`, id)
	if err := row.Scan(&statsJSON); err != nil {
		return track.Stats{}, err
	}

	var stats track.Stats
	if err := json.Unmarshal(statsJSON, &stats); err != nil {
		return track.Stats{}, err
	}
	s.cacheStats(ctx, id, statsJSON)
	return stats, nil
}

func (s *Service) ListRoutes(ctx context.Context, userID string) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, distance_km, elevation_gain_m, point_count, has_elevation, has_timestamps, created_at
		FROM routes WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.DistanceKm, &r.ElevationGainM,
			&r.PointCount, &r.HasElevation, &r.HasTimestamps, &r.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotOwner
	}
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsKeyPrefix+id).Err()
	}
	return nil
}

func (s *Service) cacheStats(ctx context.Context, id string, statsJSON []byte) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Set(ctx, statsKeyPrefix+id, statsJSON, s.cacheTTL).Err()
}
