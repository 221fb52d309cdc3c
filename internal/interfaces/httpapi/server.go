package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

const defaultSessionCookie = "sessionid"

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	SessionCookie      string
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	cookie := strings.TrimSpace(cfg.SessionCookie)
	if cookie == "" {
		cookie = defaultSessionCookie
	}
	handler.sessionCookie = cookie

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerPublicRoutes(mux, handler)
	registerAdminRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, LoadAdminSession(cookie, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
