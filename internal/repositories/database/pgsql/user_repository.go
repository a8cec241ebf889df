package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/SscSPs/blog_backend/internal/models"
	"github.com/SscSPs/blog_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const usersTable = "users"

const userColumns = `user_id, username, name, email, profile, about, role, salt, hashed_password,
	auth_provider, provider_user_id, password_login_disabled, reset_password_link,
	is_author_of_the_month, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db PgxPool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Name,
		&m.Email,
		&m.Profile,
		&m.About,
		&m.Role,
		&m.Salt,
		&m.HashedPassword,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.PasswordLoginDisabled,
		&m.ResetPasswordLink,
		&m.IsAuthorOfTheMonth,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxUserRepository) findOne(ctx context.Context, op string, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, usersTable, op)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "find user by id", "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", "lower(email) = lower($1)", email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "find user by username", "username = $1", username)
}

func (r *PgxUserRepository) FindUserByResetLink(ctx context.Context, link string) (*domain.User, error) {
	if link == "" {
		return nil, fmt.Errorf("find user by reset link: %w", apperrors.ErrNotFound)
	}
	return r.findOne(ctx, "find user by reset link", "reset_password_link = $1", link)
}

func (r *PgxUserRepository) FindAuthorsOfTheMonth(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 1
	}
	query := `SELECT ` + userColumns + ` FROM users
		WHERE is_author_of_the_month
		ORDER BY updated_at DESC
		LIMIT $1;`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError(err, usersTable, "query authors of the month")
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Name,
		m.Email,
		m.Profile,
		m.About,
		m.Role,
		m.Salt,
		m.HashedPassword,
		m.AuthProvider,
		m.ProviderUserID,
		m.PasswordLoginDisabled,
		m.ResetPasswordLink,
		m.IsAuthorOfTheMonth,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	return mapError(err, usersTable, "failed to save user")
}

// UpdateUser never touches email or role.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET username = $1, name = $2, about = $3, salt = $4, hashed_password = $5,
            password_login_disabled = $6, reset_password_link = $7, updated_at = $8
        WHERE user_id = $9;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Username,
		m.Name,
		m.About,
		m.Salt,
		m.HashedPassword,
		m.PasswordLoginDisabled,
		m.ResetPasswordLink,
		m.LastUpdatedAt,
		m.UserID,
	)
	if err != nil {
		return mapError(err, usersTable, "failed to update user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) SetResetPasswordLink(ctx context.Context, userID string, link string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE users SET reset_password_link = $1, updated_at = $2 WHERE user_id = $3;`,
		link, time.Now().UTC(), userID)
	if err != nil {
		return mapError(err, usersTable, "failed to store reset link")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE lower(email) = lower($3);`,
		int16(role), time.Now().UTC(), email)
	if err != nil {
		return mapError(err, usersTable, "failed to update role")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) count(ctx context.Context, op, query string) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, mapError(err, usersTable, op)
	}
	return n, nil
}

func (r *PgxUserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "count users", `SELECT count(*) FROM users;`)
}

func (r *PgxUserRepository) CountAuthorsOfTheMonth(ctx context.Context) (int64, error) {
	return r.count(ctx, "count authors of the month", `SELECT count(*) FROM users WHERE is_author_of_the_month;`)
}
