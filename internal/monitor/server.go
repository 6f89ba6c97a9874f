// Package monitor exposes the receive node over HTTP: health, prometheus
// metrics, link session counters, and the latest decoded payloads.
package monitor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ivsomov/beamlink/internal/link"
	"github.com/ivsomov/beamlink/internal/observability"
)

// Server is the HTTP monitor surface for one beamd node.
type Server struct {
	node     string
	addr     string
	session  *link.Session
	router   *gin.Engine
	appeared time.Time
}

func New(node, addr string, session *link.Session, corsOrigins []string) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(node))
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		node:     node,
		addr:     addr,
		session:  session,
		router:   r,
		appeared: time.Now(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.appeared).String(),
			"node":    s.node,
			"version": "0.1.0",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"node":  s.node,
			"stats": s.session.Stats(),
		})
	})

	s.router.GET("/telemetry", func(c *gin.Context) {
		tm, ok := s.session.LastTelemetry()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no telemetry received yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"roll":  tm.Roll,
			"pitch": tm.Pitch,
			"yaw":   tm.Yaw,
		})
	})

	s.router.GET("/battery", func(c *gin.Context) {
		bat, ok := s.session.LastBattery()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no battery status received yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"voltage_mv": bat.VoltageMV,
			"current_ma": bat.CurrentMA,
			"percent":    bat.Percent,
		})
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
