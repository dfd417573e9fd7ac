package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, ctx context.Context, repo user.UserRepository, email string) *user.HRUser {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := repo.Create(ctx, user.HRUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         "Test HR",
	})
	require.NoError(t, err)
	return created
}

func TestUserRepository_Create_Success(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	created := createTestUser(t, ctx, userRepo, "hr@example.com")

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "hr@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	createTestUser(t, ctx, userRepo, "dup@example.com")

	_, err := userRepo.Create(ctx, user.HRUser{Email: "DUP@example.com", PasswordHash: "x", Name: "Other"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	created := createTestUser(t, ctx, userRepo, "case@example.com")

	retrieved, err := userRepo.FindByEmail(ctx, "CASE@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)

	exists, err := userRepo.ExistsByEmail(ctx, "Case@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	setup := NewTestDatabase(t)
	userRepo := postgresql.NewUserRepository(setup.DB)

	_, err := userRepo.FindByEmail(context.Background(), "notfound@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	created := createTestUser(t, ctx, userRepo, "pw@example.com")

	require.NoError(t, userRepo.UpdatePassword(ctx, created.ID, "new-hash"))

	retrieved, err := userRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", retrieved.PasswordHash)

	err = userRepo.UpdatePassword(ctx, uuid.NewString(), "new-hash")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
