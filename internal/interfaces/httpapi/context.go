package httpapi

import (
	"context"
)

type contextKey string

const sessionContextKey contextKey = "admin_session"

// adminSession is the cookie value presented by an admin request.
type adminSession struct {
	Token string
}

func withAdminSession(ctx context.Context, s adminSession) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func adminSessionFromContext(ctx context.Context) (adminSession, bool) {
	s, ok := ctx.Value(sessionContextKey).(adminSession)
	return s, ok && s.Token != ""
}
