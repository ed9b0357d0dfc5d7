package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestApplicationDeleteRemovesLinksFirst(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM job_applications WHERE id = \? AND user_id = \?`).
		WithArgs(uint64(5), uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`DELETE FROM application_resumes WHERE application_id = \?`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM job_applications WHERE id = \? AND user_id = \?`).
		WithArgs(uint64(5), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 1, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationDeleteForeignRowIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM job_applications WHERE id = \? AND user_id = \?`).
		WithArgs(uint64(5), uint64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatusSummary(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepo(db)

	rows := sqlmock.NewRows([]string{"applied", "assessment", "interview", "offer", "rejected", "ghosted", "total"}).
		AddRow(10, 2, 3, 1, 4, 5, 25)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(status = \?\), 0\)`).
		WithArgs("Applied", "Assessment", "Interview", "Offer", "Rejected", "Ghosted", uint64(9)).
		WillReturnRows(rows)

	s, err := repo.GetStatusSummary(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, StatusSummary{
		Applied: 10, Assessment: 2, Interview: 3,
		Offer: 1, Rejected: 4, Ghosted: 5, Total: 25,
	}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForeignRowRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM job_applications WHERE id = \? AND user_id = \?`).
		WithArgs(uint64(3), uint64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 1, 3, ApplicationParams{
		CompanyName: "Acme", JobTitle: "Engineer", Status: "Applied",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
