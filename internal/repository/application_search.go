package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/applytrack/applytrack-server/internal/model"
)

// ApplicationQuery defines the optional filters and sorting for the
// application listing. Zero values mean "no filter". All values end up as
// bound query parameters; column and direction names are validated against
// closed allow-lists before they touch the SQL text.
type ApplicationQuery struct {
	Search         string   // substring over company, title, notes (case-insensitive)
	Status         string   // exact status match
	Statuses       []string // membership match; ignored when empty
	DateFrom       string   // inclusive YYYY-MM-DD lower bound on application_date
	DateTo         string   // inclusive upper bound
	ResumeID       uint64   // only applications linked to this resume
	NeedsAttention bool     // overdue follow-up, non-terminal status
	Sort           string   // allow-listed column or "urgency"; falls back to updated_at
	Order          string   // "asc" or anything-else = desc
}

// applicationSortColumns is the allow-list for ORDER BY. Anything not in
// this map (other than the virtual "urgency" sort) falls back to
// updated_at, so a hostile sort value can never reach the SQL text.
var applicationSortColumns = map[string]bool{
	"updated_at":       true,
	"created_at":       true,
	"application_date": true,
	"company_name":     true,
	"status":           true,
	"follow_up_date":   true,
}

const applicationColumns = `ja.id, ja.user_id, ja.company_name, ja.job_title, ja.experience_level,
	ja.job_description, ja.job_requirements, ja.location, ja.job_url,
	ja.salary_min, ja.salary_max,
	DATE_FORMAT(ja.application_date, '%Y-%m-%d') AS application_date,
	ja.application_source, ja.status, ja.notes,
	DATE_FORMAT(ja.follow_up_date, '%Y-%m-%d') AS follow_up_date,
	ja.interview_round, ja.interview_notes, ja.created_at, ja.updated_at`

// buildSearchQuery assembles the listing SELECT for one user. It returns
// the SQL text and the bound arguments, in order.
func buildSearchQuery(userID uint64, q ApplicationQuery) (string, []any) {
	where := []string{"ja.user_id = ?"}
	args := []any{userID}

	if q.Status != "" {
		where = append(where, "ja.status = ?")
		args = append(args, q.Status)
	}
	if len(q.Statuses) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(q.Statuses)), ",")
		where = append(where, "ja.status IN ("+ph+")")
		for _, s := range q.Statuses {
			args = append(args, s)
		}
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(ja.company_name) LIKE ? OR LOWER(ja.job_title) LIKE ? OR LOWER(ja.notes) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.DateFrom != "" {
		where = append(where, "ja.application_date >= ?")
		args = append(args, q.DateFrom)
	}
	if q.DateTo != "" {
		where = append(where, "ja.application_date <= ?")
		args = append(args, q.DateTo)
	}
	if q.ResumeID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM application_resumes ar WHERE ar.application_id = ja.id AND ar.resume_id = ?)")
		args = append(args, q.ResumeID)
	}
	if q.NeedsAttention {
		where = append(where, "ja.follow_up_date < CURDATE() AND ja.status NOT IN (?,?)")
		args = append(args, model.StatusOffer, model.StatusRejected)
	}

	query := "SELECT " + applicationColumns + "\nFROM job_applications ja\nWHERE " +
		strings.Join(where, " AND ") + orderClause(q.Sort, q.Order)
	return query, args
}

// orderClause maps the requested sort to a safe ORDER BY. The "urgency"
// sort puts overdue follow-ups first, then due today, then future
// follow-ups ascending, then rows without one. For column sorts the
// IS NULL term keeps NULL values last in either direction.
func orderClause(sort, order string) string {
	if sort == "urgency" {
		return `
ORDER BY CASE
	WHEN ja.follow_up_date < CURDATE() THEN 0
	WHEN ja.follow_up_date = CURDATE() THEN 1
	WHEN ja.follow_up_date IS NOT NULL THEN 2
	ELSE 3 END,
	ja.follow_up_date IS NULL, ja.follow_up_date ASC`
	}
	col := sort
	if !applicationSortColumns[col] {
		col = "updated_at"
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("\nORDER BY ja.%s IS NULL, ja.%s %s", col, col, dir)
}

// Search runs the listing query and annotates each row with its linked
// resume summaries and the overdue flag.
func (r *ApplicationRepo) Search(ctx context.Context, userID uint64, q ApplicationQuery) ([]model.Application, error) {
	query, args := buildSearchQuery(userID, q)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := time.Now().Format(model.DateLayout)
	out := []model.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		a.IsOverdue = model.Overdue(a.FollowUpDate, a.Status, today)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachResumes(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachResumes loads the resume summaries linked to the given
// applications in one query and assigns them in place.
func (r *ApplicationRepo) attachResumes(ctx context.Context, apps []model.Application) error {
	for i := range apps {
		apps[i].Resumes = []model.ResumeSummary{}
	}
	if len(apps) == 0 {
		return nil
	}

	ph := strings.TrimSuffix(strings.Repeat("?,", len(apps)), ",")
	args := make([]any, 0, len(apps))
	index := make(map[uint64]int, len(apps))
	for i, a := range apps {
		args = append(args, a.ID)
		index[a.ID] = i
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT ar.application_id, r.id, r.file_name, r.original_name
		 FROM application_resumes ar
		 JOIN resumes r ON r.id = ar.resume_id
		 WHERE ar.application_id IN (`+ph+`)
		 ORDER BY r.uploaded_at DESC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var appID uint64
		var rs model.ResumeSummary
		if err := rows.Scan(&appID, &rs.ID, &rs.FileName, &rs.OriginalName); err != nil {
			return err
		}
		if i, ok := index[appID]; ok {
			apps[i].Resumes = append(apps[i].Resumes, rs)
		}
	}
	return rows.Err()
}
