// Package api exposes the review pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/Sveder/riftwind/internal/analyzer"
	"github.com/Sveder/riftwind/internal/model"
	"github.com/Sveder/riftwind/internal/riot"
)

// Reviewer runs the fetch, analyze and narrate pipeline for one player.
// Both methods return the same shape; only the prose differs.
type Reviewer interface {
	Review(ctx context.Context, gameName, tagLine, region string) (*Review, error)
	Roast(ctx context.Context, gameName, tagLine, region string) (*Review, error)
}

// Review is the JSON payload served to clients.
type Review struct {
	Summoner         SummonerInfo    `json:"summoner"`
	Analysis         analyzer.Result `json:"analysis"`
	Narrative        string          `json:"narrative"`
	MatchesAnalyzed  int             `json:"matches_analyzed"`
	MatchesRequested int             `json:"matches_requested"`
}

// SummonerInfo is the player header of a review.
type SummonerInfo struct {
	GameName      string  `json:"gameName"`
	TagLine       string  `json:"tagLine"`
	ProfileIconID int     `json:"profileIconId"`
	SummonerLevel int     `json:"summonerLevel"`
	WinRate       float64 `json:"winrate"`
}

// NewSummonerInfo builds the header from a repository.
func NewSummonerInfo(repo *model.MatchRepository) SummonerInfo {
	return SummonerInfo{
		GameName:      repo.Account.GameName,
		TagLine:       repo.Account.TagLine,
		ProfileIconID: repo.Summoner.ProfileIconID,
		SummonerLevel: repo.Summoner.SummonerLevel,
		WinRate:       repo.WinRate(),
	}
}

// reviewRequest is the body of POST /api/review and /api/roast.
type reviewRequest struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Region   string `json:"region"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the review API.
type Server struct {
	reviewer Reviewer
	log      zerolog.Logger
}

func NewServer(reviewer Reviewer, log zerolog.Logger) *Server {
	return &Server{reviewer: reviewer, log: log}
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/review", s.handleReview)
		r.Post("/roast", s.handleRoast)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, s.reviewer.Review)
}

func (s *Server) handleRoast(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, s.reviewer.Roast)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request, run func(context.Context, string, string, string) (*Review, error)) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.GameName == "" || req.TagLine == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "gameName and tagLine are required"})
		return
	}

	start := time.Now()
	review, err := run(r.Context(), req.GameName, req.TagLine, req.Region)
	if err != nil {
		status := http.StatusBadGateway
		msg := "upstream request failed"
		if errors.Is(err, riot.ErrNotFound) {
			status = http.StatusNotFound
			msg = fmt.Sprintf("player %s#%s not found", req.GameName, req.TagLine)
		} else if errors.Is(err, riot.ErrRateLimited) {
			status = http.StatusTooManyRequests
			msg = "rate limited by the Riot API, try again shortly"
		}
		s.log.Error().Err(err).
			Str("gameName", req.GameName).
			Str("tagLine", req.TagLine).
			Int("status", status).
			Msg("review failed")
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	s.log.Info().
		Str("gameName", req.GameName).
		Str("tagLine", req.TagLine).
		Int("matches", review.MatchesAnalyzed).
		Dur("elapsed", time.Since(start)).
		Msg("review served")
	writeJSON(w, http.StatusOK, review)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
