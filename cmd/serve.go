package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpapi "gigcircle.com/gigcircle/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the HTTP API and the background expiry sweeper",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.close()
		cfg := a.cfg

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sweeper := a.expiryService()
		sweeper.Start()

		e := echo.New()
		e.HideBanner = true
		handler := httpapi.NewHandler(httpapi.Services{
			Users:  a.users,
			Groups: a.groups,
			Tasks:  a.tasks,
			Wallet: a.wallet,
			Review: a.review,
		}, cfg.SyncPollSeconds)
		httpapi.Register(e, handler, httpapi.RouteOptions{
			JWTSecret:          cfg.JWTSecret,
			AdminUserID:        cfg.AdminUserID,
			RateLimitPerMinute: cfg.RateLimit,
		})

		server := &http.Server{
			Addr: cfg.AppURL,
			Handler: cors.New(cors.Options{
				AllowedOrigins: cfg.CORSAllowedOrigins,
				AllowedMethods: []string{
					http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
				},
				AllowedHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
			}).Handler(e),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
		sweeper.Shutdown(shutdownCtx)

		log.Info("HTTP server and expiry sweeper shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
