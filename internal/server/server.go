// Package server implements the local preview server behind
// `kintree serve`. All artifacts are rendered once at startup from the
// immutable family table and served from memory.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mreyes/kintree/pkg/export"
	"github.com/mreyes/kintree/pkg/family"
	"github.com/mreyes/kintree/pkg/render"
	"github.com/mreyes/kintree/pkg/tree"
)

// Config controls what the preview server renders.
type Config struct {
	Title  string
	RootID int
	Colors tree.Options
	Legend bool
	Logger *log.Logger
}

// Server holds the pre-rendered artifacts and the HTTP router.
type Server struct {
	router chi.Router
	logger *log.Logger

	// etag is regenerated per process so browsers refetch after a
	// restart but cache within one run.
	etag string

	html []byte
	svg  []byte
	png  []byte
	dot  []byte
	data []byte
}

// New renders every artifact for the table and wires up the routes.
func New(ctx context.Context, t *family.Table, cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	b := tree.New(t, cfg.RootID, cfg.Colors)
	dot := render.ToDOT(b.Build(), render.DOTOptions{Legend: cfg.Legend, Colors: cfg.Colors})

	svg, err := render.SVG(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	png, err := render.PNG(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	html, err := render.HTML(svg, render.PageData{
		Title:       cfg.Title,
		Persons:     b.PersonCount(),
		Generations: b.GenerationCount(),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, export.Build(b)); err != nil {
		return nil, err
	}

	s := &Server{
		logger: logger,
		etag:   fmt.Sprintf("%q", uuid.NewString()),
		html:   html,
		svg:    svg,
		png:    png,
		dot:    []byte(dot),
		data:   buf.Bytes(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.artifact("text/html; charset=utf-8", func() []byte { return s.html }))
	r.Get("/tree.svg", s.artifact("image/svg+xml", func() []byte { return s.svg }))
	r.Get("/tree.png", s.artifact("image/png", func() []byte { return s.png }))
	r.Get("/tree.dot", s.artifact("text/vnd.graphviz; charset=utf-8", func() []byte { return s.dot }))
	r.Get("/data.json", s.artifact("application/json", func() []byte { return s.data }))

	s.router = r
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Infof("Serving family tree on http://%s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) artifact(contentType string, body func() []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == s.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("ETag", s.etag)
		_, _ = w.Write(body())
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
