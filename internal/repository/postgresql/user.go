package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

const hrUserColumns = `id, email, password_hash, name, created_at, updated_at`

type userRepositoryImpl struct {
	db    *database.DB
	users table[user.HRUser]
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{
		db:    db,
		users: newTable[user.HRUser](db, "hr_users", hrUserColumns),
	}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.HRUser) (*user.HRUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING ` + hrUserColumns

	var created user.HRUser
	err := q.QueryRow(ctx, query, newUser.Email, newUser.PasswordHash, newUser.Name).Scan(
		&created.ID,
		&created.Email,
		&created.PasswordHash,
		&created.Name,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, user.ErrUserEmailExists
		}
		return nil, fmt.Errorf("failed to create hr user: %w", err)
	}

	return &created, nil
}

// FindByID implements user.UserRepository.
func (r *userRepositoryImpl) FindByID(ctx context.Context, id string) (*user.HRUser, error) {
	u, err := r.users.findOne(ctx, "id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get hr user with id %s: %w", id, err)
	}
	return u, nil
}

// FindByEmail implements user.UserRepository.
func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*user.HRUser, error) {
	u, err := r.users.findOne(ctx, "LOWER(email) = LOWER($1)", email)
	if err != nil {
		if isNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get hr user by email: %w", err)
	}
	return u, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.users.exists(ctx, "LOWER(email) = LOWER($1)", email)
	if err != nil {
		return false, fmt.Errorf("failed to check hr user email: %w", err)
	}
	return exists, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE hr_users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password for hr user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
