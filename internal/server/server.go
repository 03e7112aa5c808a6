package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/penwyp/go-eld-log/internal/core/constants"
	"github.com/penwyp/go-eld-log/internal/util"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Service is what the server needs from the analyzer.
type Service interface {
	logService
	pinger
}

type HealthChecker struct {
	db pinger
}

func NewHealthChecker(db pinger) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"source": gin.H{"status": "down", "error": err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"source": gin.H{"status": "up"},
	})
}

// NewRouter wires health and log routes onto a fresh engine.
func NewRouter(svc Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	NewHealthChecker(svc).Register(r)
	NewLogHandler(svc).Register(r.Group("/api"))
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		util.LogDebug("HTTP request",
			util.F("method", c.Request.Method),
			util.F("path", c.Request.URL.Path),
			util.F("status", c.Writer.Status()),
			util.F("latency", time.Since(start).String()))
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		util.LogInfo("Listening", util.F("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		util.LogInfo("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
