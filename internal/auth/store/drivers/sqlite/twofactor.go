package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

type twoFactorRepo struct {
	db dbtx
}

func (r *twoFactorRepo) GetByUserID(ctx context.Context, userID int64) (domain.TwoFactorCredential, error) {
	var c domain.TwoFactorCredential
	var lastUsed sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, secret, enabled, last_used_at, created_at, updated_at
		FROM two_factor_credentials WHERE user_id = ?`, userID).
		Scan(&c.ID, &c.UserID, &c.Secret, &c.Enabled, &lastUsed, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.TwoFactorCredential{}, mapNotFound(err)
	}

	c.LastUsedAt = mapNullTimePtr(lastUsed)
	return c, nil
}

// Upsert replaces any existing credential with a fresh disabled one. A
// re-run of setup before the first verification simply rotates the secret.
func (r *twoFactorRepo) Upsert(ctx context.Context, c domain.TwoFactorCredential) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO two_factor_credentials (user_id, secret, enabled, last_used_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			secret = excluded.secret,
			enabled = excluded.enabled,
			last_used_at = excluded.last_used_at,
			updated_at = excluded.updated_at`,
		c.UserID, c.Secret, c.Enabled, mapOptionalTime(c.LastUsedAt), now, now,
	)
	return err
}

func (r *twoFactorRepo) Enable(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE two_factor_credentials SET enabled = 1, updated_at = ? WHERE user_id = ?`,
		time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *twoFactorRepo) UpdateLastUsed(ctx context.Context, userID int64, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE two_factor_credentials SET last_used_at = ?, updated_at = ? WHERE user_id = ?`,
		now.UTC(), now.UTC(), userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *twoFactorRepo) Delete(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM two_factor_credentials WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
