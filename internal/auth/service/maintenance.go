package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
)

// DefaultAttemptRetention is how long login attempt history is kept.
const DefaultAttemptRetention = 30 * 24 * time.Hour

// MaintenanceService runs on-demand housekeeping. There is no background
// sweeper; an admin (or an external scheduler hitting the admin endpoint)
// decides when cleanup happens.
type MaintenanceService struct {
	store            store.Store
	audit            AuditSink
	attemptRetention time.Duration
}

func NewMaintenanceService(st store.Store, audit AuditSink, attemptRetention time.Duration) *MaintenanceService {
	if attemptRetention <= 0 {
		attemptRetention = DefaultAttemptRetention
	}
	if audit == nil {
		audit = NopAuditSink{}
	}
	return &MaintenanceService{store: st, audit: audit, attemptRetention: attemptRetention}
}

// RunCleanup deactivates expired-but-active sessions, deletes dead reset
// tokens and trims old login attempts, reporting the counts.
func (s *MaintenanceService) RunCleanup(ctx context.Context, actorID int64) (domain.CleanupReport, error) {
	now := time.Now().UTC()

	sessions, err := s.store.Sessions().DeactivateExpired(ctx, now)
	if err != nil {
		return domain.CleanupReport{}, fmt.Errorf("deactivate expired sessions: %w", err)
	}

	tokens, err := s.store.ResetTokens().DeleteDead(ctx, now)
	if err != nil {
		return domain.CleanupReport{}, fmt.Errorf("delete dead reset tokens: %w", err)
	}

	attempts, err := s.store.LoginAttempts().DeleteOlderThan(ctx, now.Add(-s.attemptRetention))
	if err != nil {
		return domain.CleanupReport{}, fmt.Errorf("trim login attempts: %w", err)
	}

	report := domain.CleanupReport{
		ExpiredSessions:    sessions,
		DeletedResetTokens: tokens,
		DeletedAttempts:    attempts,
	}

	s.audit.Record(ctx, actorID, domain.AuditCleanupRun, "sessions", 0,
		fmt.Sprintf("cleanup: %d sessions, %d reset tokens, %d attempts", sessions, tokens, attempts))
	return report, nil
}
