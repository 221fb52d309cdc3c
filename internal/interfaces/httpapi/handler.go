package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

const maxBatchEvents = 500

// BreakerReporter exposes an upstream client's circuit state.
type BreakerReporter interface {
	Breaker() resilience.Snapshot
}

type Handler struct {
	aggregationService *usecase.AggregationService
	matchDetailService *usecase.MatchDetailService
	interestService    *usecase.InterestService
	oddsService        *usecase.OddsService
	maintenanceService *usecase.MaintenanceService
	upstreams          map[string]BreakerReporter
	sessionCookie      string
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	aggregationService *usecase.AggregationService,
	matchDetailService *usecase.MatchDetailService,
	interestService *usecase.InterestService,
	oddsService *usecase.OddsService,
	maintenanceService *usecase.MaintenanceService,
	upstreams map[string]BreakerReporter,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		aggregationService: aggregationService,
		matchDetailService: matchDetailService,
		interestService:    interestService,
		oddsService:        oddsService,
		maintenanceService: maintenanceService,
		upstreams:          upstreams,
		sessionCookie:      defaultSessionCookie,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	view, err := h.aggregationService.GetLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) ListFixturesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByDate")
	defer span.End()

	date := strings.TrimSpace(r.PathValue("date"))
	view, err := h.aggregationService.GetFixturesForDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

// GetMatchDetail answers 200 with matchFound=false for unknown matches.
func (h *Handler) GetMatchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetail")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.matchDetailService.GetMatchDetail(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match detail failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetMatchAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchAnalytics")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	record, err := h.interestService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match analytics failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, record)
}

type trackEventRequest struct {
	Event     string `json:"event" validate:"required"`
	TimeSpent int    `json:"timeSpent" validate:"gte=0,lte=86400"`
}

func (h *Handler) TrackMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TrackMatchEvent")
	defer span.End()

	var req trackEventRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	record, err := h.interestService.Track(ctx, usecase.TrackInput{
		MatchID:   matchID,
		Event:     req.Event,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "track match event failed", "match_id", matchID, "event", req.Event, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, record)
}

type trackBatchRequest struct {
	Events []usecase.TrackInput `json:"events"`
}

// TrackEventBatch applies each event independently and reports per-item status.
func (h *Handler) TrackEventBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TrackEventBatch")
	defer span.End()

	var req trackBatchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if len(req.Events) == 0 || len(req.Events) > maxBatchEvents {
		writeError(ctx, w, fmt.Errorf("%w: events must contain between 1 and %d items", usecase.ErrInvalidInput, maxBatchEvents))
		return
	}

	result, err := h.interestService.TrackBatch(ctx, req.Events)
	if err != nil {
		h.logger.WarnContext(ctx, "track event batch failed", "events", len(req.Events), "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Failed > 0 && result.Applied > 0 {
		status = http.StatusMultiStatus
	}
	writeSuccess(ctx, w, status, result)
}

func (h *Handler) ListTrending(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTrending")
	defer span.End()

	limit, err := parseOptionalLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.aggregationService.GetTrending(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list trending failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListOddsSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOddsSports")
	defer span.End()

	list, err := h.oddsService.ListSports(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list odds sports failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, list)
}

func (h *Handler) GetEventOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventOdds")
	defer span.End()

	sportKey := strings.TrimSpace(r.PathValue("sportKey"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	event, err := h.oddsService.GetEventOdds(ctx, sportKey, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event odds failed", "sport_key", sportKey, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, event)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, 1<<20))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// parseOptionalLimit returns 0 for an absent value so the service default applies.
func parseOptionalLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}
