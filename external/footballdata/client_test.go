package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/competitions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(authHeader) != "token-123" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"competitions":[{"id":2021,"code":"PL","name":"Premier League","type":"LEAGUE","emblem":"https://crests.example/pl.png"}]}`))
	})
	mux.HandleFunc("/competitions/PL/matches", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "SCHEDULED" {
			t.Errorf("expected status=SCHEDULED, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"matches":[{"id":537785,"utcDate":"2026-10-18T14:00:00Z","status":"TIMED","matchday":8,"homeTeam":{"id":57,"name":"Arsenal FC"},"awayTeam":{"id":61,"name":"Chelsea FC"},"score":{"fullTime":{"home":null,"away":null}}}]}`))
	})
	mux.HandleFunc("/matches/537785", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":537785,"utcDate":"2026-10-18T14:00:00Z","status":"TIMED","homeTeam":{"id":57,"name":"Arsenal FC"},"awayTeam":{"id":61,"name":"Chelsea FC"},"competition":{"code":"PL","name":"Premier League"}}`))
	})
	mux.HandleFunc("/matches/1", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/competitions/ELC/matches", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"matches":[{"id":600001,"homeTeam":{"name":"Leeds United FC"},"awayTeam":{"name":"Burnley FC"},"venue":{"name":"Elland Road"}},{"id":600002,"matchday":"eight","homeTeam":{"name":"Hull City AFC"},"awayTeam":{"name":"Stoke City FC"}},{"id":600003,"homeTeam":{"name":"Norwich City FC"},"awayTeam":{"name":"Watford FC"},"venue":"Carrow Road"}]}`))
	})
	mux.HandleFunc("/competitions/CL/matches", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{BaseURL: baseURL, Token: "token-123", Logger: logging.NewNop()})
}

func TestClient_ListCompetitions(t *testing.T) {
	t.Parallel()

	client := newTestClient(newTestServer(t).URL)
	items, err := client.ListCompetitions(context.Background())
	if err != nil {
		t.Fatalf("list competitions: %v", err)
	}
	if len(items) != 1 || items[0].Code != "PL" || items[0].Type != "LEAGUE" {
		t.Fatalf("unexpected competitions: %+v", items)
	}
}

func TestClient_ListScheduledMatches(t *testing.T) {
	t.Parallel()

	client := newTestClient(newTestServer(t).URL)
	items, err := client.ListScheduledMatches(context.Background(), "PL")
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 1 || items[0].ID != 537785 || items[0].HomeTeam.Name != "Arsenal FC" {
		t.Fatalf("unexpected matches: %+v", items)
	}
	if items[0].Matchday == nil || *items[0].Matchday != 8 {
		t.Fatalf("expected matchday 8")
	}
	if items[0].Score.FullTime.Home != nil {
		t.Fatalf("expected nil score for an unplayed match")
	}

	if _, err := client.ListScheduledMatches(context.Background(), "CL"); !errors.Is(err, usecase.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestClient_ListScheduledMatchesSkipsMistypedRecord(t *testing.T) {
	t.Parallel()

	client := newTestClient(newTestServer(t).URL)
	items, err := client.ListScheduledMatches(context.Background(), "ELC")
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(items), items)
	}
	if items[0].ID != 600001 || items[0].Venue != "Elland Road" {
		t.Fatalf("unexpected first match: %+v", items[0])
	}
	if items[1].ID != 600003 || items[1].Venue != "Carrow Road" {
		t.Fatalf("unexpected second match: %+v", items[1])
	}
}

func TestClient_GetMatch(t *testing.T) {
	t.Parallel()

	client := newTestClient(newTestServer(t).URL)
	item, err := client.GetMatch(context.Background(), "537785")
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if item.Competition == nil || item.Competition.Code != "PL" {
		t.Fatalf("expected embedded competition, got %+v", item.Competition)
	}

	if _, err := client.GetMatch(context.Background(), "1"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
