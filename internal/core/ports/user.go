package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, userID uint64) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.Session, error)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Authenticate(ctx context.Context, token string) (domain.User, error)
	CurrentUser(ctx context.Context, userID uint64) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID uint64) (string, error)
	Verify(token string) (uint64, error)
}
