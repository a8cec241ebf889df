package pgsql

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"user_id", "username", "name", "email", "profile", "about", "role", "salt", "hashed_password",
	"auth_provider", "provider_user_id", "password_login_disabled", "reset_password_link",
	"is_author_of_the_month", "created_at", "updated_at",
}

func userRow(id, email, link string) []any {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []any{
		id, "abcdef123456", "Alice", email, "http://client/profile/abcdef123456", "", int16(0), "salt", "hash",
		"local", "", false, link, false, now, now,
	}
}

func newUserRepoMock(t *testing.T) (*PgxUserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return newPgxUserRepository(mock), mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestSaveUser_DuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(anyArgs(16)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.SaveUser(context.Background(), domain.User{UserID: "u1", Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Email already exists", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUser_Success(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "abcdef123456", "Alice", "a@x.com", "p", "", int16(0), "s", "h",
			"local", "", false, "", false, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SaveUser(context.Background(), domain.User{
		UserID: "u1", Username: "abcdef123456", Name: "Alice", Email: "a@x.com", Profile: "p",
		Salt: "s", HashedPassword: "h", AuthProvider: domain.AuthProviderLocal,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
		WithArgs("missing@x.com").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.FindUserByEmail(context.Background(), "missing@x.com")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByResetLink(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE reset_password_link = $1")).
		WithArgs("tok").
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(userRow("u1", "a@x.com", "tok")...))

	u, err := repo.FindUserByResetLink(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	assert.Equal(t, "tok", u.ResetPasswordLink)
	assert.Equal(t, domain.AuthProviderLocal, u.AuthProvider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByResetLink_EmptyNeverMatches(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	u, err := repo.FindUserByResetLink(context.Background(), "")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(append(anyArgs(8), "nope")...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateUser(context.Background(), domain.User{UserID: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_DuplicateUsername(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(append([]any{"taken123"}, append(anyArgs(7), "u1")...)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.UpdateUser(context.Background(), domain.User{UserID: "u1", Username: "taken123"})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Username already exists", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUsers(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM users;")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := repo.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
