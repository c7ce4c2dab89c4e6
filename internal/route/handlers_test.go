package route

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-trailmetrics/internal/track"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func testApp(t *testing.T, svc *Service, userID string) *fiber.App {
	t.Helper()
	app := fiber.New()
	authStub := func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
	RegisterRoutes(app.Group("/routes"), svc, authStub)
	return app
}

func TestUploadHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Hill repeats", pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), true, true, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock, nil, nil, track.DefaultConfig(), time.Minute)
	app := testApp(t, svc, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/routes/?name=Hill+repeats", bytes.NewReader(sampleGPX()))
	req.Header.Set("Content-Type", "application/gpx+xml")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status: %v %d", err, resp.StatusCode)
	}
}

func TestUploadHandlerErrorMapping(t *testing.T) {
	svc := NewService(nil, nil, nil, track.DefaultConfig(), time.Minute)
	app := testApp(t, svc, "user-1")

	// Malformed container is a 400.
	req := httptest.NewRequest(http.MethodPost, "/routes/", bytes.NewReader([]byte("<gpx><trk>")))
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed gpx, got %d", resp.StatusCode)
	}

	// Empty body is rejected before the engine runs.
	req = httptest.NewRequest(http.MethodPost, "/routes/", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty payload, got %d", resp.StatusCode)
	}

	// Implausible elevation is a 422.
	doc := []byte(`<?xml version="1.0"?><gpx version="1.1" creator="t" xmlns="http://www.topografix.com/GPX/1/1"><trk><trkseg>` +
		`<trkpt lat="46.5" lon="8.0"><ele>1200</ele></trkpt>` +
		`<trkpt lat="46.6" lon="8.1"><ele>10000</ele></trkpt>` +
		`</trkseg></trk></gpx>`)
	req = httptest.NewRequest(http.MethodPost, "/routes/", bytes.NewReader(doc))
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for elevation anomaly, got %d", resp.StatusCode)
	}

	// Oversized input is a 413.
	small := track.DefaultConfig()
	small.MaxInputBytes = 16
	svc = NewService(nil, nil, nil, small, time.Minute)
	app = testApp(t, svc, "user-1")
	req = httptest.NewRequest(http.MethodPost, "/routes/", bytes.NewReader(sampleGPX()))
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized upload, got %d", resp.StatusCode)
	}
}

func TestGetRouteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, distance_km`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock, nil, nil, track.DefaultConfig(), time.Minute)
	app := testApp(t, svc, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/routes/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteHandlerNotOwner(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM routes`).
		WithArgs("route-1", "user-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	svc := NewService(mock, nil, nil, track.DefaultConfig(), time.Minute)
	app := testApp(t, svc, "user-2")

	req := httptest.NewRequest(http.MethodDelete, "/routes/route-1", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign route, got %d", resp.StatusCode)
	}
}
