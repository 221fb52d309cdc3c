package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/fixtures/{date}", handler.ListFixturesByDate)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatchDetail)
	mux.HandleFunc("GET /v1/matches/{matchID}/analytics", handler.GetMatchAnalytics)
	mux.HandleFunc("POST /v1/matches/{matchID}/events", handler.TrackMatchEvent)
	mux.HandleFunc("POST /v1/analytics/events", handler.TrackEventBatch)
	mux.HandleFunc("GET /v1/trending", handler.ListTrending)
	mux.HandleFunc("GET /v1/odds/sports", handler.ListOddsSports)
	mux.HandleFunc("GET /v1/odds/{sportKey}/events/{eventID}", handler.GetEventOdds)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /admin/login", handler.AdminLogin)
	mux.Handle("GET /admin/dashboard", RequireAdminSession(http.HandlerFunc(handler.AdminDashboard)))
	mux.Handle("POST /admin/logout", RequireAdminSession(http.HandlerFunc(handler.AdminLogout)))
	mux.Handle("GET /admin/logout", RequireAdminSession(http.HandlerFunc(handler.AdminLogout)))
	mux.Handle("POST /admin/refresh/leagues", RequireAdminSession(http.HandlerFunc(handler.AdminRefreshLeagues)))
	mux.Handle("POST /admin/cleanup", RequireAdminSession(http.HandlerFunc(handler.AdminCleanup)))
	mux.Handle("POST /admin/matches/{matchID}/analysis", RequireAdminSession(http.HandlerFunc(handler.AdminRegenerateAnalysis)))
}
