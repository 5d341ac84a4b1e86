package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manishadtanii/varalobackendv.0/internal/config"
	httpx "github.com/manishadtanii/varalobackendv.0/internal/http"
	"github.com/manishadtanii/varalobackendv.0/internal/http/handlers"
	"github.com/manishadtanii/varalobackendv.0/internal/http/middleware"
)

// shutdownTimeout bounds how long in-flight requests may finish after a stop signal
const shutdownTimeout = 10 * time.Second

// Router builds the HTTP router over the container's services
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	h := httpx.Handlers{
		Auth:     handlers.NewAuthHandlers(c.AuthSvc, cfg.IsProduction()),
		Pages:    handlers.NewPageHandlers(c.PageSvc, c.SectionSvc, cfg.MaxUploadSize),
		Contacts: handlers.NewContactHandlers(c.ContactSvc, cfg.MaxUploadSize),
		Uploads:  handlers.NewUploadHandlers(c.UploadSvc, c.SectionSvc, cfg.MaxUploadSize),
		Admin:    handlers.NewAdminHandlers(c.AuthSvc, c.PolicySvc),
	}

	return httpx.BuildRouter(h,
		middleware.NewAuthMW(c.TokenSvc, c.UserRepo),
		middleware.NewCasbinMW(c.PolicySvc),
		c.Logger,
		httpx.Options{
			AllowedOrigins:     cfg.AllowedOrigins,
			AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
			AuthRateLimitBurst: cfg.AuthRateLimitBurst,
			MaxUploadSize:      cfg.MaxUploadSize,
			MaxContentSize:     int64(cfg.MaxContentSize),
		})
}

// Run serves the API until ctx is cancelled, then drains in-flight requests
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
