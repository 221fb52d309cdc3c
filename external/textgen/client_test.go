package textgen

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

func samplePrompt() usecase.AnalysisPrompt {
	return usecase.AnalysisPrompt{
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		League:       "Premier League",
		KickoffAt:    time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC),
		Venue:        "Emirates Stadium",
		HomeStanding: &match.Standing{Rank: 1, Points: 19, Played: 7, Won: 6, Draw: 1, GoalsDiff: 12, Form: "WWDWW"},
		HeadToHead: []match.HeadToHeadEntry{
			{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), HomeTeam: "Chelsea", AwayTeam: "Arsenal", HomeGoals: 1, AwayGoals: 1, Winner: match.WinnerDraw},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	text := BuildPrompt(samplePrompt())
	for _, want := range []string{
		"Fixture: Arsenal vs Chelsea",
		"Competition: Premier League",
		"Venue: Emirates Stadium",
		"Arsenal standing: rank 1, 19 pts",
		"form WWDWW",
		"- 2026-03-01 Chelsea 1-1 Arsenal (draw)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("prompt missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Chelsea standing") {
		t.Fatalf("away standing should be omitted when unknown:\n%s", text)
	}
}

func TestClient_GenerateAnalysis(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != completionPath || r.Header.Get("Authorization") != "Bearer gen-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var req chatRequest
		if err := sonic.Unmarshal(raw, &req); err != nil || req.Model != "test-model" || len(req.Messages) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("{\"choices\":[{\"message\":{\"role\":\"assistant\",\"content\":\"```html\\n<p>Arsenal edge it.</p>\\n```\"}}]}"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "gen-key", Model: "test-model", Timeout: 5 * time.Second, Logger: logging.NewNop()})
	html, err := client.GenerateAnalysis(context.Background(), samplePrompt())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if html != "<p>Arsenal edge it.</p>" {
		t.Fatalf("unexpected html %q", html)
	}
}

func TestClient_GenerateAnalysisErrors(t *testing.T) {
	t.Parallel()

	status := http.StatusTooManyRequests
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	if _, err := client.GenerateAnalysis(context.Background(), samplePrompt()); !errors.Is(err, usecase.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	if _, err := client.GenerateAnalysis(context.Background(), usecase.AnalysisPrompt{HomeTeam: "Arsenal"}); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_GenerateAnalysisServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	if _, err := client.GenerateAnalysis(context.Background(), samplePrompt()); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	if got := stripCodeFence("<p>x</p>"); got != "<p>x</p>" {
		t.Fatalf("plain content changed: %q", got)
	}
	if got := stripCodeFence("```\n<p>x</p>\n```"); got != "<p>x</p>" {
		t.Fatalf("fence not stripped: %q", got)
	}
}
