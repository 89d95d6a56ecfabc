package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
	"github.com/custodia-labs/grimoire/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the gin engine with every route mounted.
func NewRouter(catalog driving.CatalogService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if report := catalog.LastReport(); report != nil {
			status["loadId"] = report.LoadID
			status["records"] = report.Records
			status["diagnostics"] = len(report.Diagnostics)
		} else {
			status["status"] = "loading"
		}
		c.JSON(http.StatusOK, status)
	})

	NewHandler(catalog).RegisterRoutes(router.Group("/api"))
	return router
}

// requestLogger logs each request through the shared zap logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Zap().Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, catalog driving.CatalogService) error {
	if addr == "" {
		return domain.ErrInvalidInput
	}
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(catalog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
