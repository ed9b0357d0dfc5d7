package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/applytrack-server/internal/repository"
	"github.com/applytrack/applytrack-server/internal/utils"
)

const testSecret = "test-secret"

func userRepoMock(t *testing.T) (*repository.UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewUserRepo(db), mock
}

func expectUserRow(mock sqlmock.Sqlmock, id uint64) {
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at"}).
		AddRow(id, "a@example.com", "hash", nil, nil, time.Now())
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \?`).WithArgs(id).WillReturnRows(rows)
}

func runAuth(t *testing.T, users *repository.UserRepo, prep func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prep(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret, users)(func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"id": u.ID})
	})
	require.NoError(t, h(c))
	return rec
}

func TestAuthAcceptsBearerHeader(t *testing.T) {
	users, mock := userRepoMock(t)
	expectUserRow(mock, 7)

	tok, err := utils.NewSessionToken(testSecret, 7, 1)
	require.NoError(t, err)

	rec := runAuth(t, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthAcceptsCookie(t *testing.T) {
	users, mock := userRepoMock(t)
	expectUserRow(mock, 7)

	tok, err := utils.NewSessionToken(testSecret, 7, 1)
	require.NoError(t, err)

	rec := runAuth(t, users, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: tok.Token})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	users, _ := userRepoMock(t)
	rec := runAuth(t, users, func(r *http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestAuthRejectsWrongSignature(t *testing.T) {
	users, _ := userRepoMock(t)

	tok, err := utils.NewSessionToken("other-secret", 7, 1)
	require.NoError(t, err)

	rec := runAuth(t, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	users, _ := userRepoMock(t)

	claims := jwt.MapClaims{
		"sub": uint64(7),
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := runAuth(t, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+signed)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	users, mock := userRepoMock(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \?`).
		WithArgs(uint64(7)).
		WillReturnError(sql.ErrNoRows)

	tok, err := utils.NewSessionToken(testSecret, 7, 1)
	require.NoError(t, err)

	rec := runAuth(t, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}
