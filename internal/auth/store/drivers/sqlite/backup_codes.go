package sqlite

import (
	"context"
	"time"
)

type backupCodesRepo struct {
	db dbtx
}

func (r *backupCodesRepo) Create(ctx context.Context, userID int64, codeHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO backup_codes (user_id, code_hash, created_at)
		VALUES (?, ?, ?)`,
		userID, codeHash, time.Now().UTC())
	return mapConstraint(err)
}

// Consume deletes the matching code in a single conditional statement. The
// affected-row count is the consumption proof: two concurrent submissions of
// the same code race on the DELETE and only one sees a row removed.
func (r *backupCodesRepo) Consume(ctx context.Context, userID int64, codeHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE user_id = ? AND code_hash = ?`,
		userID, codeHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *backupCodesRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE user_id = ?`, userID)
	return err
}

func (r *backupCodesRepo) CountForUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM backup_codes WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
