package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/applytrack/applytrack-server/internal/model"
)

// EmailRepo manages the user_emails table. The invariant is at most one
// primary address per user; SetPrimary maintains it with a
// clear-all-then-set-one pair wrapped in a single transaction.
type EmailRepo struct {
	db *sql.DB
}

// NewEmailRepo returns an EmailRepo bound to the given database.
func NewEmailRepo(db *sql.DB) *EmailRepo { return &EmailRepo{db: db} }

const emailColumns = "id, user_id, email, is_primary, created_at"

// ListByUser returns a user's addresses, primary first, newest first after
// that.
func (r *EmailRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserEmail, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+emailColumns+" FROM user_emails WHERE user_id = ? ORDER BY is_primary DESC, created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.UserEmail{}
	for rows.Next() {
		var e model.UserEmail
		if err := rows.Scan(&e.ID, &e.UserID, &e.Email, &e.IsPrimary, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Add registers a new address for the user. The first address a user adds
// becomes primary automatically. Duplicates return ErrEmailExists.
func (r *EmailRepo) Add(ctx context.Context, userID uint64, email string) (model.UserEmail, error) {
	email = strings.TrimSpace(email)

	var existing uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM user_emails WHERE user_id = ? AND email = ? LIMIT 1",
		userID, email).Scan(&existing)
	if err == nil {
		return model.UserEmail{}, ErrEmailExists
	}
	if err != sql.ErrNoRows {
		return model.UserEmail{}, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_emails WHERE user_id = ?", userID).Scan(&count); err != nil {
		return model.UserEmail{}, err
	}
	isPrimary := count == 0

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO user_emails (user_id, email, is_primary) VALUES (?,?,?)",
		userID, email, isPrimary)
	if err != nil {
		if isDuplicateKey(err) {
			return model.UserEmail{}, ErrEmailExists
		}
		return model.UserEmail{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UserEmail{}, err
	}
	return r.getByID(ctx, userID, uint64(id))
}

// Delete removes an owned address. Returns ErrNotFound for missing or
// foreign rows.
func (r *EmailRepo) Delete(ctx context.Context, userID, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_emails WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPrimary makes the given address the user's single primary one. Both
// statements run in one transaction so a crash between them cannot leave
// the user with zero or two primaries visible to other requests.
func (r *EmailRepo) SetPrimary(ctx context.Context, userID, id uint64) (model.UserEmail, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.UserEmail{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE user_emails SET is_primary = false WHERE user_id = ?", userID); err != nil {
		return model.UserEmail{}, err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE user_emails SET is_primary = true WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return model.UserEmail{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.UserEmail{}, err
	}
	if n == 0 {
		// Unknown id: roll everything back so the previous primary survives.
		return model.UserEmail{}, ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return model.UserEmail{}, err
	}
	return r.getByID(ctx, userID, id)
}

func (r *EmailRepo) getByID(ctx context.Context, userID, id uint64) (model.UserEmail, error) {
	var e model.UserEmail
	err := r.db.QueryRowContext(ctx,
		"SELECT "+emailColumns+" FROM user_emails WHERE id = ? AND user_id = ? LIMIT 1",
		id, userID).Scan(&e.ID, &e.UserID, &e.Email, &e.IsPrimary, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return model.UserEmail{}, ErrNotFound
	}
	return e, err
}
