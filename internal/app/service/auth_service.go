package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.Session, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
	})
	if err != nil {
		return domain.Session{}, err
	}

	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

// Authenticate resolves a bearer token to a user that still exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint64) (domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) session(user domain.User) (domain.Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.Session{User: user, Token: token}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
