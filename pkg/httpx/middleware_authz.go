package httpx

import (
	"context"
	"net/http"

	"github.com/hogarcare/hogar/pkg/slogx"
)

// RequireAnyRole allows the request through when the authenticated identity
// holds at least one of the listed role names. Must run after the session
// guard has attached an Identity.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, name := range required {
		want[name] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				ErrInvalidToken.WriteError(w)
				return
			}

			if _, ok := want[id.Role]; !ok {
				ErrForbidden.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// TwoFactorChecker reports whether a user has an enabled two-factor
// credential.
type TwoFactorChecker interface {
	TwoFactorEnabled(ctx context.Context, userID int64) (bool, error)
}

// RequireTwoFactor gates sensitive mutations behind the caller having
// two-factor authentication configured and enabled. It does not demand a
// fresh code per request; the access token is assumed to come from a login
// that already passed the second factor.
func RequireTwoFactor(checker TwoFactorChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, ok := IdentityFromContext(ctx)
			if !ok {
				ErrInvalidToken.WriteError(w)
				return
			}

			enabled, err := checker.TwoFactorEnabled(ctx, id.UserID)
			if err != nil {
				slogx.FromContext(ctx).Error("two-factor check failed", "user_id", id.UserID, "err", err)
				ErrServerError.WriteError(w)
				return
			}
			if !enabled {
				NewAPIError(http.StatusForbidden, ErrorCodeForbidden,
					"this operation requires two-factor authentication to be enabled").WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
