package route

import (
	"errors"
	"io"

	"backend-trailmetrics/internal/track"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
		}

		raw, err := gpxFromRequest(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		name := c.Query("name")
		if name == "" {
			name = "Untitled route"
		}

		route, stats, err := svc.Upload(c.Context(), userID, name, raw)
		if err != nil {
			return engineError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"route": route, "stats": stats})
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		routes, err := svc.ListRoutes(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		route, err := svc.GetRoute(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(route)
	})

	r.Get("/:id/stats", func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(stats)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.DeleteRoute(c.Context(), c.Params("id"), userID); err != nil {
			if errors.Is(err, ErrNotOwner) {
				return fiber.NewError(fiber.StatusNotFound, "route not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// gpxFromRequest accepts either a multipart form with a "gpx" file field or
// the GPX document as the raw request body.
func gpxFromRequest(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("gpx"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body := c.Body()
	if len(body) == 0 {
		return nil, errors.New("gpx payload required")
	}
	return body, nil
}

// engineError maps the engine's typed failures onto HTTP statuses.
func engineError(err error) *fiber.Error {
	var formatErr *track.FormatError
	var anomaly *track.ElevationAnomalyError
	var tooLarge *track.InputTooLargeError

	switch {
	case errors.Is(err, track.ErrEmptyTrack), errors.As(err, &formatErr):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &anomaly):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &tooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
