package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/applytrack/applytrack-server/internal/model"
)

func TestBuildSearchQueryDefaults(t *testing.T) {
	query, args := buildSearchQuery(7, ApplicationQuery{})

	assert.Contains(t, query, "FROM job_applications ja")
	assert.Contains(t, query, "WHERE ja.user_id = ?")
	assert.NotContains(t, query, "AND") // no filters, single condition
	assert.Contains(t, query, "ORDER BY ja.updated_at IS NULL, ja.updated_at DESC")
	assert.Equal(t, []any{uint64(7)}, args)
}

func TestBuildSearchQueryFilters(t *testing.T) {
	q := ApplicationQuery{
		Search:   "acme",
		Status:   model.StatusApplied,
		DateFrom: "2026-01-01",
		DateTo:   "2026-06-30",
		ResumeID: 42,
	}
	query, args := buildSearchQuery(7, q)

	assert.Contains(t, query, "ja.status = ?")
	assert.Contains(t, query, "LOWER(ja.company_name) LIKE ?")
	assert.Contains(t, query, "LOWER(ja.job_title) LIKE ?")
	assert.Contains(t, query, "LOWER(ja.notes) LIKE ?")
	assert.Contains(t, query, "ja.application_date >= ?")
	assert.Contains(t, query, "ja.application_date <= ?")
	assert.Contains(t, query, "ar.resume_id = ?")

	// user id, status, three search needles, two dates, resume id
	assert.Equal(t, []any{
		uint64(7), model.StatusApplied,
		"%acme%", "%acme%", "%acme%",
		"2026-01-01", "2026-06-30",
		uint64(42),
	}, args)
}

func TestBuildSearchQueryStatusesMembership(t *testing.T) {
	q := ApplicationQuery{Statuses: []string{model.StatusApplied, model.StatusInterview, model.StatusOffer}}
	query, args := buildSearchQuery(1, q)

	assert.Contains(t, query, "ja.status IN (?,?,?)")
	assert.Equal(t, []any{uint64(1), model.StatusApplied, model.StatusInterview, model.StatusOffer}, args)
}

func TestBuildSearchQueryNeedsAttention(t *testing.T) {
	query, args := buildSearchQuery(1, ApplicationQuery{NeedsAttention: true, Status: model.StatusGhosted})

	// Filters AND-intersect: both the status filter and the attention
	// predicate must appear.
	assert.Contains(t, query, "ja.status = ?")
	assert.Contains(t, query, "ja.follow_up_date < CURDATE() AND ja.status NOT IN (?,?)")
	assert.Equal(t, []any{uint64(1), model.StatusGhosted, model.StatusOffer, model.StatusRejected}, args)
}

func TestBuildSearchQuerySearchIsCaseInsensitive(t *testing.T) {
	_, args := buildSearchQuery(1, ApplicationQuery{Search: "AcMe Corp"})
	assert.Equal(t, "%acme corp%", args[1])
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		name  string
		sort  string
		order string
		want  string
	}{
		{"default falls back to updated_at desc", "", "", "ORDER BY ja.updated_at IS NULL, ja.updated_at DESC"},
		{"unknown column falls back", "password_hash; DROP TABLE users", "asc", "ORDER BY ja.updated_at IS NULL, ja.updated_at ASC"},
		{"allowed column asc", "company_name", "asc", "ORDER BY ja.company_name IS NULL, ja.company_name ASC"},
		{"allowed column default desc", "application_date", "", "ORDER BY ja.application_date IS NULL, ja.application_date DESC"},
		{"order is case insensitive", "created_at", "ASC", "ORDER BY ja.created_at IS NULL, ja.created_at ASC"},
		{"unknown order means desc", "status", "sideways", "ORDER BY ja.status IS NULL, ja.status DESC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := orderClause(tc.sort, tc.order)
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestOrderClauseUrgency(t *testing.T) {
	got := orderClause("urgency", "desc")

	// Overdue first, then today, then future, then rows with no date.
	assert.Contains(t, got, "WHEN ja.follow_up_date < CURDATE() THEN 0")
	assert.Contains(t, got, "WHEN ja.follow_up_date = CURDATE() THEN 1")
	assert.Contains(t, got, "WHEN ja.follow_up_date IS NOT NULL THEN 2")
	assert.Contains(t, got, "ELSE 3")
	assert.Contains(t, got, "ja.follow_up_date IS NULL, ja.follow_up_date ASC")
}

func TestBuildSearchQueryPlaceholdersMatchArgs(t *testing.T) {
	q := ApplicationQuery{
		Search:         "go",
		Statuses:       []string{model.StatusApplied, model.StatusGhosted},
		DateFrom:       "2026-01-01",
		ResumeID:       3,
		NeedsAttention: true,
		Sort:           "urgency",
	}
	query, args := buildSearchQuery(9, q)
	assert.Equal(t, strings.Count(query, "?"), len(args))
}
