package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) Create(ctx context.Context, t domain.PasswordResetToken) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (user_id, code_hash, expires_at, used, created_at)
		VALUES (?, ?, ?, 0, ?)`,
		t.UserID, t.CodeHash, t.ExpiresAt.UTC(), time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *resetTokensRepo) ListUsable(ctx context.Context, now time.Time) ([]domain.PasswordResetToken, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, code_hash, expires_at, used, used_at, created_at
		FROM password_reset_tokens
		WHERE used = 0 AND expires_at > ?
		ORDER BY created_at DESC`, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.PasswordResetToken
	for rows.Next() {
		var t domain.PasswordResetToken
		var usedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.CodeHash, &t.ExpiresAt, &t.Used, &usedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.UsedAt = mapNullTimePtr(usedAt)
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// MarkUsed is conditional on used=0 so a token can only be consumed once even
// under concurrent resets.
func (r *resetTokensRepo) MarkUsed(ctx context.Context, id int64, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = 1, used_at = ? WHERE id = ? AND used = 0`,
		now.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *resetTokensRepo) DeleteDead(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE used = 1 OR expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
