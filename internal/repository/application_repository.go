package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/applytrack/applytrack-server/internal/model"
)

// ApplicationRepo provides CRUD and search over job_applications and the
// application_resumes link table. Every statement carries the owning
// user's id in its predicate, so a row belonging to someone else behaves
// exactly like a missing row.
type ApplicationRepo struct {
	db *sql.DB
}

// NewApplicationRepo returns an ApplicationRepo bound to the given database.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// ApplicationParams carries every writable field of an application. The
// API has full-record update semantics: PUT resends all fields, so there
// is no partial-patch variant. ResumeIDs nil means "leave links alone";
// an empty non-nil slice clears them.
type ApplicationParams struct {
	CompanyName       string
	JobTitle          string
	ExperienceLevel   string
	JobDescription    *string
	JobRequirements   *string
	Location          *string
	JobURL            *string
	SalaryMin         *int64
	SalaryMax         *int64
	ApplicationDate   *string // YYYY-MM-DD
	ApplicationSource *string
	Status            string
	Notes             *string
	FollowUpDate      *string // YYYY-MM-DD
	InterviewRound    int
	InterviewNotes    *string
	ResumeIDs         []uint64
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (model.Application, error) {
	var a model.Application
	var (
		jobDescription, jobRequirements, location, jobURL sql.NullString
		applicationDate, applicationSource                sql.NullString
		notes, followUpDate, interviewNotes               sql.NullString
		salaryMin, salaryMax                              sql.NullInt64
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.CompanyName, &a.JobTitle, &a.ExperienceLevel,
		&jobDescription, &jobRequirements, &location, &jobURL,
		&salaryMin, &salaryMax,
		&applicationDate, &applicationSource, &a.Status, &notes,
		&followUpDate, &a.InterviewRound, &interviewNotes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Application{}, err
	}
	a.JobDescription = strPtr(jobDescription)
	a.JobRequirements = strPtr(jobRequirements)
	a.Location = strPtr(location)
	a.JobURL = strPtr(jobURL)
	a.SalaryMin = intPtr(salaryMin)
	a.SalaryMax = intPtr(salaryMax)
	a.ApplicationDate = strPtr(applicationDate)
	a.ApplicationSource = strPtr(applicationSource)
	a.Notes = strPtr(notes)
	a.FollowUpDate = strPtr(followUpDate)
	a.InterviewNotes = strPtr(interviewNotes)
	return a, nil
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// GetByID fetches one application with its resume summaries. Returns
// ErrNotFound when the row is missing or owned by another user.
func (r *ApplicationRepo) GetByID(ctx context.Context, userID, id uint64) (model.Application, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM job_applications ja WHERE ja.id = ? AND ja.user_id = ?",
		id, userID)
	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return model.Application{}, ErrNotFound
	}
	if err != nil {
		return model.Application{}, err
	}
	a.IsOverdue = model.Overdue(a.FollowUpDate, a.Status, time.Now().Format(model.DateLayout))
	apps := []model.Application{a}
	if err := r.attachResumes(ctx, apps); err != nil {
		return model.Application{}, err
	}
	return apps[0], nil
}

// Create inserts a new application and its resume links in one
// transaction and returns the stored row.
func (r *ApplicationRepo) Create(ctx context.Context, userID uint64, p ApplicationParams) (model.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Application{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO job_applications
		 (user_id, company_name, job_title, experience_level, job_description, job_requirements,
		  location, job_url, salary_min, salary_max, application_date, application_source,
		  status, notes, follow_up_date, interview_round, interview_notes)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		userID, p.CompanyName, p.JobTitle, p.ExperienceLevel, p.JobDescription, p.JobRequirements,
		p.Location, p.JobURL, p.SalaryMin, p.SalaryMax, p.ApplicationDate, p.ApplicationSource,
		p.Status, p.Notes, p.FollowUpDate, p.InterviewRound, p.InterviewNotes)
	if err != nil {
		return model.Application{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Application{}, err
	}
	if err := linkResumesTx(ctx, tx, userID, uint64(id), p.ResumeIDs); err != nil {
		return model.Application{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Application{}, err
	}
	return r.GetByID(ctx, userID, uint64(id))
}

// Update replaces every field of an owned application. When ResumeIDs is
// non-nil the link set is replaced wholesale within the same transaction.
func (r *ApplicationRepo) Update(ctx context.Context, userID, id uint64, p ApplicationParams) (model.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Application{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var owned uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM job_applications WHERE id = ? AND user_id = ?", id, userID).Scan(&owned)
	if err == sql.ErrNoRows {
		return model.Application{}, ErrNotFound
	}
	if err != nil {
		return model.Application{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE job_applications SET
		 company_name = ?, job_title = ?, experience_level = ?, job_description = ?,
		 job_requirements = ?, location = ?, job_url = ?, salary_min = ?, salary_max = ?,
		 application_date = ?, application_source = ?, status = ?, notes = ?,
		 follow_up_date = ?, interview_round = ?, interview_notes = ?
		 WHERE id = ? AND user_id = ?`,
		p.CompanyName, p.JobTitle, p.ExperienceLevel, p.JobDescription,
		p.JobRequirements, p.Location, p.JobURL, p.SalaryMin, p.SalaryMax,
		p.ApplicationDate, p.ApplicationSource, p.Status, p.Notes,
		p.FollowUpDate, p.InterviewRound, p.InterviewNotes,
		id, userID)
	if err != nil {
		return model.Application{}, err
	}

	if p.ResumeIDs != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM application_resumes WHERE application_id = ?", id); err != nil {
			return model.Application{}, err
		}
		if err := linkResumesTx(ctx, tx, userID, id, p.ResumeIDs); err != nil {
			return model.Application{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Application{}, err
	}
	return r.GetByID(ctx, userID, id)
}

// Delete removes an owned application together with its resume links.
// Both deletes run in one transaction so no orphaned link rows survive.
func (r *ApplicationRepo) Delete(ctx context.Context, userID, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var owned uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM job_applications WHERE id = ? AND user_id = ?", id, userID).Scan(&owned)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM application_resumes WHERE application_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM job_applications WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// linkResumesTx inserts application_resumes rows for each resume id the
// user actually owns. Foreign resume ids are silently skipped, mirroring
// the guarded insert the API has always done.
func linkResumesTx(ctx context.Context, tx *sql.Tx, userID, appID uint64, resumeIDs []uint64) error {
	for _, rid := range resumeIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO application_resumes (application_id, resume_id)
			 SELECT ?, id FROM resumes WHERE id = ? AND user_id = ?`,
			appID, rid, userID)
		if err != nil {
			return err
		}
	}
	return nil
}

// StatusSummary holds the dashboard counters returned by
// GET /api/applications/stats/summary.
type StatusSummary struct {
	Applied    int `json:"applied"`
	Assessment int `json:"assessment"`
	Interview  int `json:"interview"`
	Offer      int `json:"offer"`
	Rejected   int `json:"rejected"`
	Ghosted    int `json:"ghosted"`
	Total      int `json:"total"`
}

// GetStatusSummary counts the user's applications per status in a single
// pass over the table.
func (r *ApplicationRepo) GetStatusSummary(ctx context.Context, userID uint64) (StatusSummary, error) {
	var parts []string
	args := make([]any, 0, len(model.ValidStatuses)+1)
	for range model.ValidStatuses {
		parts = append(parts, "COALESCE(SUM(status = ?), 0)")
	}
	for _, s := range model.ValidStatuses {
		args = append(args, s)
	}
	args = append(args, userID)

	var s StatusSummary
	err := r.db.QueryRowContext(ctx,
		"SELECT "+strings.Join(parts, ", ")+", COUNT(*) FROM job_applications WHERE user_id = ?",
		args...).Scan(&s.Applied, &s.Assessment, &s.Interview, &s.Offer, &s.Rejected, &s.Ghosted, &s.Total)
	return s, err
}
