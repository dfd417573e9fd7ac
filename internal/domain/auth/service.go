package auth

import (
	"context"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	GetProfile(ctx context.Context, userID string) (user.Profile, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	RefreshToken(ctx context.Context, userID string) (TokenResponse, error)
	// Logout is a no-op; tokens are stateless and expire on their own.
	Logout(ctx context.Context) error
}
