// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the geocoding proxy and its web page over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/geomap/geocache"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templates embed.FS

const shutdownTimeout = 10 * time.Second

// Geocoder resolves a query taken from a request body.
type Geocoder interface {
	Lookup(ctx context.Context, query any) (*geocache.Result, error)
}

// Options configuration for Server.
type Options struct {
	// Listen is the address the server binds to
	Listen string

	// CORSOrigins are the origins allowed to call the API from a browser;
	// "*" allows any. CORS is disabled when empty
	CORSOrigins []string

	// Version is shown in the page footer
	Version string

	Logger *zap.Logger
}

type Server struct {
	geocoder Geocoder
	options  Options
	logger   *zap.Logger
}

func NewServer(geocoder Geocoder, options *Options) *Server {
	if options == nil {
		options = &Options{}
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		geocoder: geocoder,
		options:  *options,
		logger:   logger,
	}
}

// Handler builds the gin engine with every route and middleware.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templates, "templates/*.html")))

	r.Use(requestID(), accessLog(s.logger), recovery(s.logger))

	if c, ok := corsConfig(s.options.CORSOrigins); ok {
		r.Use(cors.New(c))
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	r.GET("/", s.indexView)
	r.GET("/ping", s.ping)
	r.POST("/api/geocache", s.geocode)

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.options.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", zap.String("addr", s.options.Listen))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true

			return c, true
		}
	}

	c.AllowOrigins = origins

	return c, true
}
