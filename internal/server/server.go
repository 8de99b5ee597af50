package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pable/go-cs-matchlog/internal/logging"
	"github.com/pable/go-cs-matchlog/internal/model"
)

// Server serves one match document read-only over HTTP. The document is
// encoded once in New and never modified, so handlers need no locking.
type Server struct {
	Match   *model.MatchData
	MatchID string // optional; reported by /api/match/summary
	Log     logging.Interface

	doc     []byte
	metrics *metrics
}

// New encodes md and prepares the server. log may be nil.
func New(md *model.MatchData, log logging.Interface) (*Server, error) {
	if md == nil {
		return nil, errors.New("nil match document")
	}
	doc, err := json.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Server{Match: md, Log: log, doc: doc, metrics: newMetrics()}, nil
}

// Handler returns the routed handler for the API and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "GET /api/match", s.handleMatch)
	s.handle(mux, "GET /api/match/map", s.handleMap)
	s.handle(mux, "GET /api/match/summary", s.handleSummary)
	s.handle(mux, "GET /api/match/rounds", s.handleRounds)
	s.handle(mux, "GET /api/match/rounds/{number}", s.handleRound)
	s.handle(mux, "GET /api/match/players", s.handlePlayers)
	s.handle(mux, "GET /api/match/players/{name}", s.handlePlayer)
	s.handle(mux, "GET /api/match/teams", s.handleTeams)
	s.handle(mux, "GET /api/match/query", s.handleQuery)
	s.handle(mux, "GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())
	return mux
}

// handle registers h under pattern, wrapped with request logging and metrics.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		took := time.Since(start)
		s.metrics.observe(pattern, rec.status, took)
		s.Log.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, took)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.Log.Infof("serving %s on http://%s/api/match", s.Match.Map, addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
