package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/cryptox"
	"github.com/hogarcare/hogar/pkg/slogx"
)

const (
	resetCodeLength   = 8 // decimal digits
	minPasswordLength = 8

	// DefaultResetTokenTTL bounds how long a mailed reset code stays usable.
	DefaultResetTokenTTL = 15 * time.Minute
)

// PasswordResetService implements the forgot/reset flow. Codes are 8-digit
// numbers mailed to the user; only their SHA-256 fingerprints are stored, so
// verification hash-compares against every usable candidate.
type PasswordResetService struct {
	store    store.Store
	notifier Notifier
	audit    AuditSink
	ttl      time.Duration
}

func NewPasswordResetService(st store.Store, notifier Notifier, audit AuditSink, ttl time.Duration) *PasswordResetService {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	if audit == nil {
		audit = NopAuditSink{}
	}
	return &PasswordResetService{store: st, notifier: notifier, audit: audit, ttl: ttl}
}

// Forgot starts a reset for the given email. It always returns nil for
// anything short of an internal failure: unknown and inactive accounts take
// the same path outwardly, so the endpoint cannot be used to probe which
// emails exist.
func (s *PasswordResetService) Forgot(ctx context.Context, email string, client domain.ClientInfo) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("look up user: %w", err)
	}
	if !user.Active {
		return nil
	}

	code, err := cryptox.GenerateNumericCode(resetCodeLength)
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	tokenID, err := s.store.ResetTokens().Create(ctx, domain.PasswordResetToken{
		UserID:    user.ID,
		CodeHash:  cryptox.FingerprintToken(code),
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendResetCode(ctx, user, code, expiresAt); err != nil {
			slogx.FromContext(ctx).Warn("reset code delivery failed", "user_id", user.ID, "err", err)
		}
	}

	s.audit.Record(ctx, user.ID, domain.AuditResetRequested, "password_reset_tokens", tokenID,
		fmt.Sprintf("password reset requested from %s", client.IP))
	return nil
}

// Reset consumes a valid code and sets the new password. On success the token
// is terminally marked used and every active session of the user is revoked,
// all within one transaction.
func (s *PasswordResetService) Reset(ctx context.Context, code, newPassword string) error {
	code = strings.TrimSpace(code)
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	now := time.Now().UTC()
	fingerprint := cryptox.FingerprintToken(code)

	candidates, err := s.store.ResetTokens().ListUsable(ctx, now)
	if err != nil {
		return fmt.Errorf("list reset tokens: %w", err)
	}

	var match *domain.PasswordResetToken
	for i := range candidates {
		if subtle.ConstantTimeCompare([]byte(candidates[i].CodeHash), []byte(fingerprint)) == 1 {
			match = &candidates[i]
			break
		}
	}
	if match == nil {
		return ErrInvalidCode
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var revoked int64
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		// MarkUsed is conditional on used=0, so a concurrent reset with the
		// same code fails here instead of applying twice.
		if err := tx.ResetTokens().MarkUsed(ctx, match.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCode
			}
			return fmt.Errorf("mark token used: %w", err)
		}

		if err := tx.Users().UpdatePasswordHash(ctx, match.UserID, newHash); err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		n, err := tx.Sessions().InvalidateAllForUser(ctx, match.UserID)
		if err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		revoked = n
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, match.UserID, domain.AuditResetCompleted, "users", match.UserID,
		fmt.Sprintf("password reset completed, %d sessions revoked", revoked))
	return nil
}
