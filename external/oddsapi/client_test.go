package oddsapi

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
	mux.HandleFunc("/sports/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(apiKeyParam) != "odds-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set(headerRemaining, "480")
		w.Header().Set(headerUsed, "20")
		_, _ = w.Write([]byte(`[{"key":"soccer_epl","group":"Soccer","title":"EPL","description":"English Premier League","active":true,"has_outrights":false}]`))
	})
	mux.HandleFunc("/sports/soccer_epl/events/abc/odds", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("regions") != "eu" || q.Get("bookmakers") != "bet365,paddypower,williamhill" || q.Get("markets") != "h2h,spreads,totals" {
			t.Errorf("unexpected odds query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":"abc","sport_key":"soccer_epl","sport_title":"EPL","commence_time":"2026-10-18T14:00:00Z","home_team":"Arsenal","away_team":"Chelsea","bookmakers":[{"key":"bet365","title":"Bet365","last_update":"2026-10-16T08:00:00Z","markets":[{"key":"h2h","outcomes":[{"name":"Arsenal","price":1.9},{"name":"Chelsea","price":4.2},{"name":"Draw","price":3.5}]}]}]}`))
	})
	mux.HandleFunc("/sports/soccer_epl/events/limited/odds", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{BaseURL: baseURL, Key: "odds-key", Logger: logging.NewNop()})
}

func TestClient_ListSportsReadsQuota(t *testing.T) {
	t.Parallel()

	client := newTestClient(newTestServer(t).URL)
	sports, quota, err := client.ListSports(context.Background())
	if err != nil {
		t.Fatalf("list sports: %v", err)
	}
	if len(sports) != 1 || sports[0].Key != "soccer_epl" {
		t.Fatalf("unexpected sports: %+v", sports)
	}
	if quota.Remaining != 480 || quota.Used != 20 {
		t.Fatalf("unexpected quota: %+v", quota)
	}
}

func TestClient_EventOdds(t *testing.T) {
	t.Parallel()

	client := newTestClient(newTestServer(t).URL)
	ev, err := client.EventOdds(context.Background(), "soccer_epl", "abc")
	if err != nil {
		t.Fatalf("event odds: %v", err)
	}
	if ev.HomeTeam != "Arsenal" || len(ev.Bookmakers) != 1 || len(ev.Bookmakers[0].Markets[0].Outcomes) != 3 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, err := client.EventOdds(context.Background(), "soccer_epl", "limited"); !errors.Is(err, usecase.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestQuotaFromHeaderIgnoresGarbage(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set(headerRemaining, "n/a")
	header.Set(headerUsed, "12.0")
	quota := quotaFromHeader(header)
	if quota.Remaining != 0 || quota.Used != 12 {
		t.Fatalf("unexpected quota: %+v", quota)
	}
}
