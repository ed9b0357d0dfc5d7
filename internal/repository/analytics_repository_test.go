package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCountsSumsTotal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepo(db)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("Applied", 12).
		AddRow("Rejected", 5).
		AddRow("Interview", 2)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count`).
		WithArgs(uint64(4)).
		WillReturnRows(rows)

	counts, total, err := repo.GetStatusCounts(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 19, total)
	require.Len(t, counts, 3)
	assert.Equal(t, StatusCount{Status: "Applied", Count: 12}, counts[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetApplicationsOverTimeNormalizesPeriod(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepo(db)

	rows := sqlmock.NewRows([]string{"period", "count"}).
		AddRow("2026-33", 3).
		AddRow("2026-34", 1)
	// Unknown period falls back to week: the DATE_FORMAT pattern bound
	// must be the ISO week one.
	mock.ExpectQuery(`INTERVAL 12 WEEK`).
		WithArgs("%x-%v", uint64(4)).
		WillReturnRows(rows)

	buckets, period, err := repo.GetApplicationsOverTime(context.Background(), 4, "fortnight")
	require.NoError(t, err)
	assert.Equal(t, "week", period)
	require.Len(t, buckets, 2)
	assert.Equal(t, TimeBucket{Period: "2026-33", Count: 3}, buckets[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetApplicationsOverTimeMonth(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepo(db)

	mock.ExpectQuery(`INTERVAL 6 MONTH`).
		WithArgs("%Y-%m", uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"period", "count"}))

	buckets, period, err := repo.GetApplicationsOverTime(context.Background(), 4, "month")
	require.NoError(t, err)
	assert.Equal(t, "month", period)
	assert.Empty(t, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopCompaniesSplitsStatuses(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepo(db)

	rows := sqlmock.NewRows([]string{"company_name", "count", "statuses"}).
		AddRow("Acme", 4, "Applied,Interview,Rejected").
		AddRow("Globex", 1, nil)
	mock.ExpectQuery(`GROUP_CONCAT\(DISTINCT status ORDER BY status\)`).
		WithArgs(uint64(4)).
		WillReturnRows(rows)

	companies, err := repo.GetTopCompanies(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, []string{"Applied", "Interview", "Rejected"}, companies[0].Statuses)
	assert.Equal(t, []string{}, companies[1].Statuses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFollowUpSummaryExcludesTerminalStatuses(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepo(db)

	rows := sqlmock.NewRows([]string{"overdue", "today", "upcoming", "total_with_followup"}).
		AddRow(2, 1, 3, 8)
	mock.ExpectQuery(`status NOT IN \(\?,\?\)`).
		WithArgs(uint64(4), "Offer", "Rejected").
		WillReturnRows(rows)

	s, err := repo.GetFollowUpSummary(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, FollowUpSummary{Overdue: 2, Today: 1, Upcoming: 3, TotalWithFollowUp: 8}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
