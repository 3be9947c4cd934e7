package sqlite

import (
	"context"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

type loginAttemptsRepo struct {
	db dbtx
}

func (r *loginAttemptsRepo) Record(ctx context.Context, a domain.LoginAttempt) error {
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO login_attempts (email, success, reason, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Email, a.Success, a.Reason, a.IPAddress, a.UserAgent, created)
	return err
}

func (r *loginAttemptsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM login_attempts WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
