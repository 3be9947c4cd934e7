package service

import (
	"context"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// AuditSink records audit trail entries. Implementations must be fire and
// forget: a failing sink never fails the operation being audited.
type AuditSink interface {
	Record(ctx context.Context, userID int64, action domain.AuditAction, tableName string, recordID int64, description string)
}

// StoreAuditSink writes entries into the digital_records table, swallowing
// and logging errors.
type StoreAuditSink struct {
	Store store.Store
}

func (s *StoreAuditSink) Record(ctx context.Context, userID int64, action domain.AuditAction, tableName string, recordID int64, description string) {
	err := s.Store.Audit().Record(ctx, domain.AuditEntry{
		UserID:      userID,
		Action:      action,
		TableName:   tableName,
		RecordID:    recordID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("audit record failed",
			"action", string(action), "user_id", userID, "err", err)
	}
}

// NopAuditSink discards everything. Used in tests that don't assert on audit.
type NopAuditSink struct{}

func (NopAuditSink) Record(context.Context, int64, domain.AuditAction, string, int64, string) {}
