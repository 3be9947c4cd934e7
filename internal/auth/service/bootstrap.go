package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/cryptox"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// BootstrapService seeds an empty database: the role catalog plus one
// super_admin account. Guarded by a deploy-time shared token and refused
// outright once any user exists.
type BootstrapService struct {
	store store.Store
	audit AuditSink
	token string
}

func NewBootstrapService(st store.Store, audit AuditSink, token string) *BootstrapService {
	if audit == nil {
		audit = NopAuditSink{}
	}
	return &BootstrapService{store: st, audit: audit, token: token}
}

// BootstrapInput describes the initial super_admin account.
type BootstrapInput struct {
	Email          string
	Password       string
	FullName       string
	Identification string
}

// Bootstrap creates the role catalog and the first super_admin. The whole
// seed runs in one transaction, so a failed bootstrap leaves nothing behind.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in BootstrapInput) (domain.UserSummary, error) {
	if s.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return domain.UserSummary{}, ErrForbidden
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if len(in.Password) < minPasswordLength {
		return domain.UserSummary{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.UserSummary{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	var summary domain.UserSummary

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return fmt.Errorf("check users: %w", err)
		}
		if !empty {
			return ErrBootstrapDone
		}

		rolesEmpty, err := tx.Roles().IsEmpty(ctx)
		if err != nil {
			return fmt.Errorf("check roles: %w", err)
		}
		if rolesEmpty {
			for _, name := range domain.AllRoleNames() {
				if _, err := tx.Roles().Create(ctx, domain.Role{
					Name:      name,
					CreatedAt: now,
					UpdatedAt: now,
				}); err != nil {
					return fmt.Errorf("seed role %s: %w", name, err)
				}
			}
		}

		role, err := tx.Roles().GetByName(ctx, domain.RoleSuperAdmin)
		if err != nil {
			return fmt.Errorf("load super_admin role: %w", err)
		}

		userID, err := tx.Users().Create(ctx, domain.User{
			Identification: in.Identification,
			Email:          in.Email,
			FullName:       in.FullName,
			PasswordHash:   hash,
			Active:         true,
			RoleID:         role.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("create super_admin: %w", err)
		}

		summary = domain.UserSummary{
			ID:       userID,
			Email:    in.Email,
			FullName: in.FullName,
			Role:     string(domain.RoleSuperAdmin),
		}
		return nil
	})
	if err != nil {
		return domain.UserSummary{}, err
	}

	s.audit.Record(ctx, summary.ID, domain.AuditBootstrap, "users", summary.ID, "initial super_admin created")
	slogx.FromContext(ctx).Info("bootstrap completed", "user_id", summary.ID, "email", summary.Email)
	return summary, nil
}
