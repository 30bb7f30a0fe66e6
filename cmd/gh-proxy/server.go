package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Sternrassler/gh-rest-client/internal/config"
	"github.com/Sternrassler/gh-rest-client/pkg/client"
	"github.com/Sternrassler/gh-rest-client/pkg/metrics"
	"github.com/Sternrassler/gh-rest-client/pkg/repos"
	"github.com/rs/zerolog"
)

// server holds the HTTP handlers of gh-proxy.
type server struct {
	repos     *repos.Service
	batchSize int
	maxLimit  int
	logger    zerolog.Logger
}

func newServer(svc *repos.Service, cfg config.ServerConfig, logger zerolog.Logger) *server {
	return &server{
		repos:     svc,
		batchSize: cfg.BatchSize,
		maxLimit:  cfg.MaxLimit,
		logger:    logger,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /repos/{owner}/{repo}", s.getRepository)
	mux.HandleFunc("GET /orgs/{org}/repos", s.listOrgRepositories)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *server) getRepository(w http.ResponseWriter, r *http.Request) {
	owner, name := r.PathValue("owner"), r.PathValue("repo")

	repo, err := s.repos.Get(r.Context(), owner, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, repo)
}

// listOrgRepositories returns up to limit repositories (default one page).
func (s *server) listOrgRepositories(w http.ResponseWriter, r *http.Request) {
	limit := s.batchSize
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > s.maxLimit {
			s.writeJSON(w, http.StatusBadRequest, errorBody{
				Message: fmt.Sprintf("limit must be between 1 and %d", s.maxLimit),
			})
			return
		}
		limit = n
	}

	opts := &repos.OrgListOptions{
		Type:      r.URL.Query().Get("type"),
		Sort:      r.URL.Query().Get("sort"),
		Direction: r.URL.Query().Get("direction"),
	}

	p, err := s.repos.ListForOrg(r.PathValue("org"), opts, min(s.batchSize, limit))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := p.Take(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []repos.Repository{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

type errorBody struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// statusForError maps client errors onto proxy responses: GitHub's own
// rejections pass through, everything upstream-related becomes 502.
func statusForError(err error) (int, errorBody) {
	var reqErr *client.RequestError
	var cfgErr *client.ConfigurationError

	switch {
	case errors.As(err, &reqErr):
		return reqErr.StatusCode, errorBody{
			Message:          reqErr.Payload.Message,
			DocumentationURL: reqErr.Payload.DocumentationURL,
		}
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, errorBody{Message: cfgErr.Error()}
	case errors.Is(err, client.ErrDeserialization):
		return http.StatusBadGateway, errorBody{Message: "unexpected response from GitHub"}
	default:
		return http.StatusBadGateway, errorBody{Message: "GitHub unavailable"}
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusForError(err)
	s.logger.Warn().
		Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Proxy request failed")
	s.writeJSON(w, status, body)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}
