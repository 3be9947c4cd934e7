package notify

import (
	"context"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// LogNotifier writes notifications to the structured log instead of a broker.
// Development only. The code itself is never logged, just the fact that one
// was issued.
type LogNotifier struct{}

func (LogNotifier) SendResetCode(ctx context.Context, user domain.User, _ string, expiresAt time.Time) error {
	slogx.FromContext(ctx).Info("password reset code issued",
		"user_id", user.ID,
		"email", user.Email,
		"expires_at", expiresAt,
	)
	return nil
}
