package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser HRUser) (*HRUser, error)
	FindByID(ctx context.Context, id string) (*HRUser, error)
	FindByEmail(ctx context.Context, email string) (*HRUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
