package repository

import (
	"context"
	"database/sql"

	"github.com/applytrack/applytrack-server/internal/model"
)

// ResumeRepo provides persistence for uploaded resume documents. The
// backing file on disk is the handler's concern; this repo only tracks
// its metadata and path.
type ResumeRepo struct {
	db *sql.DB
}

// NewResumeRepo returns a ResumeRepo bound to the given database.
func NewResumeRepo(db *sql.DB) *ResumeRepo { return &ResumeRepo{db: db} }

const resumeColumns = "id, user_id, file_name, original_name, file_path, file_size, mime_type, uploaded_at"

func scanResume(row rowScanner) (model.Resume, error) {
	var m model.Resume
	err := row.Scan(&m.ID, &m.UserID, &m.FileName, &m.OriginalName,
		&m.FilePath, &m.FileSize, &m.MimeType, &m.UploadedAt)
	return m, err
}

// Create records an uploaded file and returns the stored row.
func (r *ResumeRepo) Create(ctx context.Context, userID uint64, fileName, originalName, filePath string, fileSize int64, mimeType string) (model.Resume, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO resumes (user_id, file_name, original_name, file_path, file_size, mime_type)
		 VALUES (?,?,?,?,?,?)`,
		userID, fileName, originalName, filePath, fileSize, mimeType)
	if err != nil {
		return model.Resume{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Resume{}, err
	}
	return r.GetByID(ctx, userID, uint64(id))
}

// ListByUser returns the user's resumes, newest upload first.
func (r *ResumeRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Resume, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+resumeColumns+" FROM resumes WHERE user_id = ? ORDER BY uploaded_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Resume{}
	for rows.Next() {
		m, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID fetches an owned resume. Returns ErrNotFound for missing or
// foreign rows.
func (r *ResumeRepo) GetByID(ctx context.Context, userID, id uint64) (model.Resume, error) {
	m, err := scanResume(r.db.QueryRowContext(ctx,
		"SELECT "+resumeColumns+" FROM resumes WHERE id = ? AND user_id = ? LIMIT 1",
		id, userID))
	if err == sql.ErrNoRows {
		return model.Resume{}, ErrNotFound
	}
	return m, err
}

// Delete removes the database row together with its application links.
// Callers delete the backing file afterwards, best-effort.
func (r *ResumeRepo) Delete(ctx context.Context, userID, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM application_resumes WHERE resume_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM resumes WHERE id = ? AND user_id = ?", id, userID)
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
	return tx.Commit()
}
