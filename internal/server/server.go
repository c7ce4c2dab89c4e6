package server

import (
	"time"

	"backend-trailmetrics/internal/auth"
	"backend-trailmetrics/internal/config"
	"backend-trailmetrics/internal/notify"
	"backend-trailmetrics/internal/route"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Notify *notify.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.EngineConfig().MaxInputBytes,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Notify: notify.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	cacheTTL := time.Duration(s.Cfg.StatsCacheTTLSeconds) * time.Second

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB, s.Redis))
	route.RegisterRoutes(s.App.Group("/routes"),
		route.NewService(s.DB, s.Redis, s.Notify, s.Cfg.EngineConfig(), cacheTTL), jwtMiddleware)
	notify.RegisterRoutes(s.App.Group("/notify"), s.Notify)
}
