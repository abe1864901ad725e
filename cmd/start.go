package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"variant-manager/core/loader"
	"variant-manager/core/logger"
	"variant-manager/core/middleware/auth"
	"variant-manager/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "variant-manager/docs/swagger"
)

// @title Variant Manager API
// @version 1.0
// @description API for generating product variants and reconciling inventory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the variant manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer a.Close()
		zap.ReplaceGlobals(a.logger)
		logg := a.logger

		srv := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager()
		mgr.Register(a.variantsFeature())
		mgr.Register(a.inventoryFeature())
		mgr.Register(a.integrityFeature())

		// RayID first so every later log line carries it.
		srv.Use(rayid.New())

		srv.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			c.SetUserContext(logger.IntoContext(c.UserContext(), l))
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		srv.Get("/swagger/*", swagger.HandlerDefault)

		srv.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))
		if !a.cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, API is unauthenticated")
		}

		if err := mgr.LoadAll(srv); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			errCh <- srv.Listen(a.cfg.Server.Address())
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}
		logg.Info("Shutting down server...")
		return srv.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
