package service

import (
	"context"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

// Notifier delivers messages to users. Delivery is best effort: callers log
// failures and continue, so a broken mail path never blocks a password reset
// request.
type Notifier interface {
	// SendResetCode delivers a password reset code to the user.
	SendResetCode(ctx context.Context, user domain.User, code string, expiresAt time.Time) error
}
