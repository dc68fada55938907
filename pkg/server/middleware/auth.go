package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/handlers/respond"
	"github.com/de-tools/dashboard/pkg/services/auth"
)

const bearerPrefix = "Bearer "

// Auth attaches the principal of a valid bearer token to the request. Requests
// without a valid token pass through anonymously.
func Auth(svc auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, req)
				return
			}

			ctx := req.Context()
			username, err := svc.Authenticate(ctx, strings.TrimSpace(header[len(bearerPrefix):]))
			if err != nil {
				zerolog.Ctx(ctx).Debug().Err(err).Msg("ignoring invalid bearer token")
				next.ServeHTTP(w, req)
				return
			}

			logger := zerolog.Ctx(ctx).With().Str("principal", username).Logger()
			ctx = logger.WithContext(auth.WithPrincipal(ctx, username))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests Auth did not attach a principal to.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if _, ok := auth.PrincipalFrom(req.Context()); !ok {
			respond.Fail(w, req, http.StatusUnauthorized, respond.MessageUnauthorized)
			return
		}
		next.ServeHTTP(w, req)
	})
}
