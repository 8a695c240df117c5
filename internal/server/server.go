// Package server exposes extraction over HTTP for the upload front end.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukaji3/pdsextract-go/internal/config"
	"github.com/ukaji3/pdsextract-go/internal/store"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
)

// Server is the HTTP server.
type Server struct {
	router    *gin.Engine
	store     *store.Store
	schema    *mapping.Schema
	opts      pdsextract.Options
	uploadDir string
	maxUpload int64
	log       *zap.Logger
	started   time.Time
}

// New creates a server extracting uploads with schema and recording them
// in st.
func New(cfg *config.AppConfig, schema *mapping.Schema, st *store.Store, log *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if _, err := config.EnsureDataDir(cfg); err != nil {
		return nil, err
	}

	s := &Server{
		router: gin.New(),
		store:  st,
		schema: schema,
		opts: pdsextract.Options{
			Logger:       log,
			DefaultSheet: cfg.Mapping.DefaultSheet,
		},
		uploadDir: cfg.UploadDir(),
		maxUpload: cfg.MaxUploadBytes(),
		log:       log,
		started:   time.Now(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), requestLogger(s.log), cors())

	api := s.router.Group("/api")
	{
		api.GET("/status", s.GetStatus)
		api.POST("/extract", s.Extract)
		api.GET("/extractions", s.ListExtractions)
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
