// Package service holds the business rules between the HTTP handlers and the stores.
package service

import (
	"context"
	"fmt"
	"strings"

	"gospelreach/internal/domain"
	"gospelreach/pkg/utils"
)

type TokenIssuer interface {
	Issue(uid int64) (string, error)
}

// AuthResult is a user paired with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.ErrValidation, "All fields are required")
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, domain.NewError(domain.ErrConflict, "Email already registered")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrValidation, "Password cannot be used", err)
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: domain.RoleUser}
	// a concurrent signup can still lose the unique index race; the repo reports that as a conflict
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login never says which of email or password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.NewError(domain.ErrValidation, "Invalid credentials")
	}
	return s.issue(u)
}

func (s *AuthService) DeleteAccount(ctx context.Context, uid int64) error {
	ok, err := s.users.Delete(ctx, uid)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return domain.NewError(domain.ErrNotFound, "User not found")
	}
	return nil
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: tok}, nil
}
