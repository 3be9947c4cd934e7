package sqlite

import (
	"context"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

type auditRepo struct {
	db dbtx
}

func (r *auditRepo) Record(ctx context.Context, e domain.AuditEntry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO digital_records (user_id, action, table_name, record_id, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, string(e.Action), e.TableName, e.RecordID, e.Description, created)
	return err
}

func (r *auditRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, action, table_name, record_id, description, created_at
		FROM digital_records
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.TableName, &e.RecordID, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
