package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/applytrack/applytrack-server/internal/model"
)

// AnalyticsRepo computes the read-only aggregate views over a user's
// applications. Each method is a single independent query with no side
// effects, so callers may request any subset in any order.
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo returns an AnalyticsRepo bound to the given database.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// StatusCount is one row of the status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// GetStatusCounts groups the user's applications by status, most frequent
// first, and returns the overall total alongside.
func (r *AnalyticsRepo) GetStatusCounts(ctx context.Context, userID uint64) ([]StatusCount, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) AS count
		 FROM job_applications
		 WHERE user_id = ?
		 GROUP BY status
		 ORDER BY count DESC`, userID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []StatusCount{}
	total := 0
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, 0, err
		}
		total += sc.Count
		out = append(out, sc)
	}
	return out, total, rows.Err()
}

// TimeBucket is one period of the over-time view.
type TimeBucket struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// overTimeWindows pairs each allowed grouping with its date format and
// trailing window. The interval text is spliced into the SQL, which is
// why this map is the only place it may come from: the closed set keeps
// arbitrary interval expressions out of the query.
var overTimeWindows = map[string]struct {
	format   string // MySQL DATE_FORMAT pattern; %x-%v is ISO year-week
	interval string
}{
	"week":  {format: "%x-%v", interval: "INTERVAL 12 WEEK"},
	"month": {format: "%Y-%m", interval: "INTERVAL 6 MONTH"},
}

// GetApplicationsOverTime buckets the user's applications by ISO week or
// calendar month over a fixed trailing window (12 weeks or 6 months).
// Rows without an application_date fall back to their creation date.
// Unknown periods behave as "week". The normalized period is returned so
// the handler can echo it back.
func (r *AnalyticsRepo) GetApplicationsOverTime(ctx context.Context, userID uint64, period string) ([]TimeBucket, string, error) {
	if _, ok := overTimeWindows[period]; !ok {
		period = "week"
	}
	w := overTimeWindows[period]

	rows, err := r.db.QueryContext(ctx,
		`SELECT DATE_FORMAT(COALESCE(application_date, DATE(created_at)), ?) AS period, COUNT(*) AS count
		 FROM job_applications
		 WHERE user_id = ?
		   AND COALESCE(application_date, DATE(created_at)) >= DATE_SUB(CURDATE(), `+w.interval+`)
		 GROUP BY period
		 ORDER BY period ASC`, w.format, userID)
	if err != nil {
		return nil, period, err
	}
	defer rows.Close()

	out := []TimeBucket{}
	for rows.Next() {
		var tb TimeBucket
		if err := rows.Scan(&tb.Period, &tb.Count); err != nil {
			return nil, period, err
		}
		out = append(out, tb)
	}
	return out, period, rows.Err()
}

// ResumeUsage counts how many applications a resume is linked to.
type ResumeUsage struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}

// GetResumeUsage returns every resume of the user with its link count,
// most used first. The left join keeps unused resumes in the result with
// a count of zero.
func (r *AnalyticsRepo) GetResumeUsage(ctx context.Context, userID uint64) ([]ResumeUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.original_name AS name, COUNT(ar.application_id) AS usage_count
		 FROM resumes r
		 LEFT JOIN application_resumes ar ON r.id = ar.resume_id
		 WHERE r.user_id = ?
		 GROUP BY r.id, r.original_name
		 ORDER BY usage_count DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ResumeUsage{}
	for rows.Next() {
		var ru ResumeUsage
		if err := rows.Scan(&ru.ID, &ru.Name, &ru.UsageCount); err != nil {
			return nil, err
		}
		out = append(out, ru)
	}
	return out, rows.Err()
}

// CompanyCount is one company with its application count and the distinct
// statuses seen there.
type CompanyCount struct {
	CompanyName string   `json:"company_name"`
	Count       int      `json:"count"`
	Statuses    []string `json:"statuses"`
}

// GetTopCompanies returns the ten companies with the most applications.
func (r *AnalyticsRepo) GetTopCompanies(ctx context.Context, userID uint64) ([]CompanyCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT company_name, COUNT(*) AS count,
		        GROUP_CONCAT(DISTINCT status ORDER BY status) AS statuses
		 FROM job_applications
		 WHERE user_id = ?
		 GROUP BY company_name
		 ORDER BY count DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CompanyCount{}
	for rows.Next() {
		var cc CompanyCount
		var statuses sql.NullString
		if err := rows.Scan(&cc.CompanyName, &cc.Count, &statuses); err != nil {
			return nil, err
		}
		if statuses.Valid && statuses.String != "" {
			cc.Statuses = strings.Split(statuses.String, ",")
		} else {
			cc.Statuses = []string{}
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// FollowUpSummary is the urgency breakdown of pending follow-ups.
type FollowUpSummary struct {
	Overdue           int `json:"overdue"`
	Today             int `json:"today"`
	Upcoming          int `json:"upcoming"` // due within the next 7 days
	TotalWithFollowUp int `json:"total_with_followup"`
}

// GetFollowUpSummary counts follow-ups by urgency, ignoring applications
// already in a terminal status.
func (r *AnalyticsRepo) GetFollowUpSummary(ctx context.Context, userID uint64) (FollowUpSummary, error) {
	var s FollowUpSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(follow_up_date < CURDATE()), 0) AS overdue,
		   COALESCE(SUM(follow_up_date = CURDATE()), 0) AS today,
		   COALESCE(SUM(follow_up_date > CURDATE() AND follow_up_date <= DATE_ADD(CURDATE(), INTERVAL 7 DAY)), 0) AS upcoming,
		   COALESCE(SUM(follow_up_date IS NOT NULL), 0) AS total_with_followup
		 FROM job_applications
		 WHERE user_id = ? AND status NOT IN (?,?)`,
		userID, model.StatusOffer, model.StatusRejected).
		Scan(&s.Overdue, &s.Today, &s.Upcoming, &s.TotalWithFollowUp)
	return s, err
}
