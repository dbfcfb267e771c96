package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/api"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/api/middleware"
	v1 "github.com/pushpitkamboj/lyftrAI-assignment/internal/api/v1"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/config"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/database"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/service"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/signature"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConn,
			repository.NewMessageRepository,
			newVerifier,
			service.NewWebhookService,
			service.NewQueryService,
			service.NewStatsService,
			v1.NewHandler,
			newFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func newVerifier(cfg *config.Config) *signature.Verifier {
	return signature.NewVerifier(cfg.Webhook.Secret)
}

func newFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger,
	lc fx.Lifecycle) {
	app.Use(middleware.RequestLogger(logger))
	api.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
