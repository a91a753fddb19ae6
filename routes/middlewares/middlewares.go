package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/ymurata/kaiyaku-form/app"
	"github.com/ymurata/kaiyaku-form/httpx"
	"github.com/ymurata/kaiyaku-form/log"
)

type ctxKey int

const (
	passwordKey ctxKey = iota
	tokenKey
)

// SessionCookie carries the session token for browser page loads, which
// cannot set an Authorization header.
const SessionCookie = "session_token"

// Session gates admin routes behind a bearer session token. The session's
// cached plaintext password goes into the request context, because every
// admin gateway call re-authenticates with the credential itself.
func Session(store app.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "session.token_missing")
				return
			}

			password, ok := store.SessionPassword(r.Context(), token)
			if !ok {
				httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "session.invalid")
				return
			}

			ctx := context.WithValue(r.Context(), passwordKey, password)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Password returns the session's cached admin credential.
func Password(ctx context.Context) string {
	password, _ := ctx.Value(passwordKey).(string)
	return password
}

// Token returns the bearer token the session was resolved from.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
