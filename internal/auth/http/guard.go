package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// SessionGuard authenticates requests with a bearer access token. On success
// it attaches an Identity to the request context; role and two-factor guards
// run after it. Challenge and refresh tokens are rejected here by kind.
func SessionGuard(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := httpx.BearerToken(r)
			if token == "" {
				httpx.WriteBearerError(w, "missing bearer token")
				return
			}

			auth, err := sessions.ValidateAccessToken(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrSessionExpired):
					httpx.WriteBearerError(w, "session expired")
				case errors.Is(err, service.ErrInvalidToken):
					httpx.WriteBearerError(w, "invalid access token")
				default:
					slogx.FromContext(r.Context()).Error("session validation failed", "err", err)
					httpx.ErrServerError.WriteError(w)
				}
				return
			}

			ctx := httpx.ContextWithIdentity(r.Context(), httpx.Identity{
				UserID:    auth.User.ID,
				Email:     auth.User.Email,
				RoleID:    auth.Role.ID,
				Role:      string(auth.Role.Name),
				SessionID: strconv.FormatInt(auth.Session.ID, 10),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identity pulls the authenticated identity out of the context, writing a 401
// when the guard did not run. Handlers call this first.
func identity(w http.ResponseWriter, r *http.Request) (httpx.Identity, bool) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrInvalidToken.WriteError(w)
		return httpx.Identity{}, false
	}
	return id, true
}

// currentSessionID parses the session id the guard stored on the identity.
func currentSessionID(id httpx.Identity) int64 {
	n, _ := strconv.ParseInt(id.SessionID, 10, 64)
	return n
}
