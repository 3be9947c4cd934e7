package sqlite

import (
	"context"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, user_id, sid, token_hash, refresh_token_hash, ip_address, user_agent,
	active, two_factor_verified, expires_at, created_at, last_activity`

func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.SID, &s.TokenHash, &s.RefreshTokenHash,
		&s.IPAddress, &s.UserAgent, &s.Active, &s.TwoFactorVerified,
		&s.ExpiresAt, &s.CreatedAt, &s.LastActivity,
	)
	return s, err
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, sid, token_hash, refresh_token_hash, ip_address, user_agent,
			active, two_factor_verified, expires_at, created_at, last_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.SID, s.TokenHash, s.RefreshTokenHash, s.IPAddress, s.UserAgent,
		s.Active, s.TwoFactorVerified, s.ExpiresAt, s.CreatedAt, s.LastActivity,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *sessionsRepo) GetByID(ctx context.Context, id int64) (domain.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) GetActiveByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE token_hash = ? AND active = 1`, tokenHash))
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) GetActiveByRefreshHash(ctx context.Context, refreshHash string) (domain.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE refresh_token_hash = ? AND active = 1`, refreshHash))
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) TouchActivity(ctx context.Context, id int64, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_activity = ? WHERE id = ?`, now.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sessionsRepo) RotateTokens(ctx context.Context, id int64, tokenHash, refreshTokenHash string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET token_hash = ?, refresh_token_hash = ?, expires_at = ?, last_activity = ?
		WHERE id = ? AND active = 1`,
		tokenHash, refreshTokenHash, expiresAt.UTC(), time.Now().UTC(), id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

func (r *sessionsRepo) Invalidate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET active = 0 WHERE id = ? AND active = 1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sessionsRepo) InvalidateAllForUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET active = 0 WHERE user_id = ? AND active = 1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionsRepo) ListActiveForUser(ctx context.Context, userID int64) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE user_id = ? AND active = 1
		 ORDER BY last_activity DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionsRepo) ListUserActiveCounts(ctx context.Context, min int64) ([]store.UserSessionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.user_id, u.email, COUNT(*) AS n
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.active = 1
		GROUP BY s.user_id, u.email
		HAVING n >= ?
		ORDER BY n DESC`, min)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []store.UserSessionCount
	for rows.Next() {
		var c store.UserSessionCount
		if err := rows.Scan(&c.UserID, &c.Email, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *sessionsRepo) ListUserStaleCounts(ctx context.Context, cutoff time.Time) ([]store.UserSessionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.user_id, u.email, COUNT(*) AS n
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.active = 1 AND s.last_activity < ?
		GROUP BY s.user_id, u.email
		ORDER BY n DESC`, cutoff.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []store.UserSessionCount
	for rows.Next() {
		var c store.UserSessionCount
		if err := rows.Scan(&c.UserID, &c.Email, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *sessionsRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET active = 0 WHERE active = 1 AND expires_at < ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
