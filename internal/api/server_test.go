package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Sveder/riftwind/internal/riot"
)

type stubReviewer struct {
	review *Review
	err    error
	calls  []string
}

func (s *stubReviewer) Review(ctx context.Context, gameName, tagLine, region string) (*Review, error) {
	s.calls = append(s.calls, "review:"+gameName+"#"+tagLine+"@"+region)
	return s.review, s.err
}

func (s *stubReviewer) Roast(ctx context.Context, gameName, tagLine, region string) (*Review, error) {
	s.calls = append(s.calls, "roast:"+gameName+"#"+tagLine+"@"+region)
	return s.review, s.err
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestReviewEndpoint(t *testing.T) {
	stub := &stubReviewer{review: &Review{
		Summoner:         SummonerInfo{GameName: "Faker", TagLine: "KR1", WinRate: 55.0},
		Narrative:        "What a year!",
		MatchesAnalyzed:  95,
		MatchesRequested: 100,
	}}
	srv := NewServer(stub, zerolog.Nop())

	rec := postJSON(t, srv.Router(), "/api/review", `{"gameName":"Faker","tagLine":"KR1","region":"kr"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got Review
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MatchesAnalyzed != 95 || got.MatchesRequested != 100 {
		t.Fatalf("counts = %d/%d", got.MatchesAnalyzed, got.MatchesRequested)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "review:Faker#KR1@kr" {
		t.Fatalf("calls = %v", stub.calls)
	}
}

func TestRoastEndpoint(t *testing.T) {
	stub := &stubReviewer{review: &Review{Narrative: "ouch"}}
	srv := NewServer(stub, zerolog.Nop())

	rec := postJSON(t, srv.Router(), "/api/roast", `{"gameName":"Faker","tagLine":"KR1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "roast:Faker#KR1@" {
		t.Fatalf("calls = %v", stub.calls)
	}
}

func TestReviewNotFoundMapsTo404(t *testing.T) {
	stub := &stubReviewer{err: fmt.Errorf("resolve Faker#KR1: %w", riot.ErrNotFound)}
	srv := NewServer(stub, zerolog.Nop())

	rec := postJSON(t, srv.Router(), "/api/review", `{"gameName":"Faker","tagLine":"KR1"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestReviewUpstreamFailureMapsTo502(t *testing.T) {
	stub := &stubReviewer{err: fmt.Errorf("fetch summoner: %w", riot.ErrUnavailable)}
	srv := NewServer(stub, zerolog.Nop())

	rec := postJSON(t, srv.Router(), "/api/review", `{"gameName":"Faker","tagLine":"KR1"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestReviewRejectsMissingFields(t *testing.T) {
	srv := NewServer(&stubReviewer{}, zerolog.Nop())

	rec := postJSON(t, srv.Router(), "/api/review", `{"gameName":"Faker"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	rec = postJSON(t, srv.Router(), "/api/review", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := NewServer(&stubReviewer{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
