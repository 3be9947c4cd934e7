package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/cryptox"
)

const (
	backupCodeCount  = 10
	backupCodeLength = 8 // hex chars
)

// TwoFactorService manages TOTP enrolment and verification. The base32 secret
// is stored as-is (TOTP needs it back), but backup codes only ever exist as
// per-row fingerprints: one row per code, spent by conditional delete.
type TwoFactorService struct {
	store  store.Store
	audit  AuditSink
	issuer string
}

func NewTwoFactorService(st store.Store, audit AuditSink, issuer string) *TwoFactorService {
	if audit == nil {
		audit = NopAuditSink{}
	}
	return &TwoFactorService{store: st, audit: audit, issuer: issuer}
}

// Setup generates a fresh TOTP secret and a batch of backup codes for the
// user. Calling it again before enabling replaces any previous pending setup.
// The returned secret, provisioning URI and raw backup codes are shown exactly
// once; only fingerprints survive.
func (s *TwoFactorService) Setup(ctx context.Context, userID int64) (domain.TwoFactorSetup, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TwoFactorSetup{}, ErrNotFound
		}
		return domain.TwoFactorSetup{}, fmt.Errorf("look up user: %w", err)
	}

	existing, err := s.store.TwoFactor().GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.TwoFactorSetup{}, fmt.Errorf("look up credential: %w", err)
	}
	if err == nil && existing.Enabled {
		return domain.TwoFactorSetup{}, ErrTwoFactorAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return domain.TwoFactorSetup{}, fmt.Errorf("generate totp secret: %w", err)
	}

	codes := make([]string, 0, backupCodeCount)
	for range backupCodeCount {
		code, err := cryptox.GenerateHexCode(backupCodeLength)
		if err != nil {
			return domain.TwoFactorSetup{}, fmt.Errorf("generate backup code: %w", err)
		}
		codes = append(codes, code)
	}

	now := time.Now().UTC()
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.TwoFactor().Upsert(ctx, domain.TwoFactorCredential{
			UserID:    userID,
			Secret:    key.Secret(),
			Enabled:   false,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("upsert credential: %w", err)
		}

		if err := tx.BackupCodes().DeleteAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("clear old backup codes: %w", err)
		}
		for _, code := range codes {
			if err := tx.BackupCodes().Create(ctx, userID, cryptox.FingerprintToken(code)); err != nil {
				return fmt.Errorf("store backup code: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.TwoFactorSetup{}, err
	}

	return domain.TwoFactorSetup{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		BackupCodes:     codes,
	}, nil
}

// Enable flips the pending credential on after the user proves possession of
// the secret with a valid code. Backup codes are accepted too, and spending
// one here reduces the remaining count this returns.
func (s *TwoFactorService) Enable(ctx context.Context, userID int64, code string) (int, error) {
	cred, err := s.store.TwoFactor().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrTwoFactorNotSetup
		}
		return 0, fmt.Errorf("look up credential: %w", err)
	}
	if cred.Enabled {
		return 0, ErrTwoFactorAlreadyEnabled
	}

	if err := s.verifyAgainst(ctx, cred, code); err != nil {
		return 0, err
	}

	if err := s.store.TwoFactor().Enable(ctx, userID); err != nil {
		return 0, fmt.Errorf("enable credential: %w", err)
	}

	remaining, err := s.store.BackupCodes().CountForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count backup codes: %w", err)
	}

	s.audit.Record(ctx, userID, domain.AuditTwoFactorEnable, "two_factor_credentials", cred.ID, "two-factor enabled")
	return remaining, nil
}

// Disable removes the credential and all backup codes. It requires a valid
// code so a hijacked session cannot silently strip the second factor. Only an
// enabled credential can be disabled; a pending setup is replaced by running
// setup again, not through here.
func (s *TwoFactorService) Disable(ctx context.Context, userID int64, code string) error {
	cred, err := s.store.TwoFactor().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTwoFactorNotSetup
		}
		return fmt.Errorf("look up credential: %w", err)
	}
	if !cred.Enabled {
		return ErrTwoFactorNotEnabled
	}

	if err := s.verifyAgainst(ctx, cred, code); err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.TwoFactor().Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}
		if err := tx.BackupCodes().DeleteAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("delete backup codes: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, userID, domain.AuditTwoFactorDisable, "two_factor_credentials", cred.ID, "two-factor disabled")
	return nil
}

// VerifyCode checks a TOTP or backup code against an enabled credential.
// Used by login and by the completion endpoint.
func (s *TwoFactorService) VerifyCode(ctx context.Context, userID int64, code string) error {
	cred, err := s.store.TwoFactor().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTwoFactorNotEnabled
		}
		return fmt.Errorf("look up credential: %w", err)
	}
	if !cred.Enabled {
		return ErrTwoFactorNotEnabled
	}
	return s.verifyAgainst(ctx, cred, code)
}

// TwoFactorEnabled reports whether the user has an enabled credential. A
// missing row means two-factor was never set up, which is not an error.
func (s *TwoFactorService) TwoFactorEnabled(ctx context.Context, userID int64) (bool, error) {
	cred, err := s.store.TwoFactor().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("look up credential: %w", err)
	}
	return cred.Enabled, nil
}

// BackupCodesRemaining returns how many unspent backup codes the user holds.
func (s *TwoFactorService) BackupCodesRemaining(ctx context.Context, userID int64) (int, error) {
	return s.store.BackupCodes().CountForUser(ctx, userID)
}

// verifyAgainst tries the code as TOTP first, then as a backup code. The
// ordering matters: a TOTP match never spends a backup code. Backup code
// consumption is a single conditional delete, so a code verifies at most once.
func (s *TwoFactorService) verifyAgainst(ctx context.Context, cred domain.TwoFactorCredential, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrInvalidCode
	}

	now := time.Now().UTC()

	if totp.Validate(code, cred.Secret) {
		return s.markUsed(ctx, cred.UserID, now)
	}

	consumed, err := s.store.BackupCodes().Consume(ctx, cred.UserID, cryptox.FingerprintToken(code))
	if err != nil {
		return fmt.Errorf("consume backup code: %w", err)
	}
	if !consumed {
		return ErrInvalidCode
	}
	return s.markUsed(ctx, cred.UserID, now)
}

func (s *TwoFactorService) markUsed(ctx context.Context, userID int64, now time.Time) error {
	if err := s.store.TwoFactor().UpdateLastUsed(ctx, userID, now); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("update last used: %w", err)
	}
	return nil
}
