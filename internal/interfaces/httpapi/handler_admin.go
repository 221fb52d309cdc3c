package httpapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

const dashboardTrendingLimit = 10

type adminLoginDTO struct {
	LoginRequired bool   `json:"loginRequired"`
	SessionCookie string `json:"sessionCookie"`
}

type upstreamStatusDTO struct {
	Name    string              `json:"name"`
	Circuit resilience.Snapshot `json:"circuit"`
}

type adminDashboardDTO struct {
	Upstreams   []upstreamStatusDTO    `json:"upstreams"`
	Trending    []usecase.TrendingItem `json:"trending"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// AdminLogin sends callers that already hold a session to the dashboard.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLogin")
	defer span.End()

	if _, ok := adminSessionFromContext(ctx); ok {
		http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adminLoginDTO{LoginRequired: true, SessionCookie: h.sessionCookie})
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDashboard")
	defer span.End()

	names := make([]string, 0, len(h.upstreams))
	for name := range h.upstreams {
		names = append(names, name)
	}
	sort.Strings(names)

	upstreams := make([]upstreamStatusDTO, 0, len(names))
	for _, name := range names {
		upstreams = append(upstreams, upstreamStatusDTO{Name: name, Circuit: h.upstreams[name].Breaker()})
	}

	trending, err := h.aggregationService.GetTrending(ctx, dashboardTrendingLimit)
	if err != nil {
		h.logger.WarnContext(ctx, "dashboard trending failed", "error", err)
		trending = []usecase.TrendingItem{}
	}

	writeSuccess(ctx, w, http.StatusOK, adminDashboardDTO{
		Upstreams:   upstreams,
		Trending:    trending,
		GeneratedAt: time.Now().UTC(),
	})
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLogout")
	defer span.End()

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.InfoContext(ctx, "admin session closed")
	http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
}

func (h *Handler) AdminRefreshLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRefreshLeagues")
	defer span.End()

	result, err := h.aggregationService.RefreshLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "admin refresh leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "admin refresh leagues completed",
		"competitions", result.Competitions,
		"failed_competitions", result.FailedCompetitions,
		"matches", result.Matches,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) AdminCleanup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCleanup")
	defer span.End()

	report := h.maintenanceService.RunCleanup(ctx)
	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) AdminRegenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRegenerateAnalysis")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	analysis, err := h.matchDetailService.RegenerateAnalysis(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "regenerate analysis failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analysis)
}
