package identity

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/docsearch/docsearch/internal/platform/apperr"
	"github.com/docsearch/docsearch/internal/platform/auth"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	users  UserRepository
	secret string
}

func NewService(users UserRepository, jwtSecret string) *Service {
	return &Service{users: users, secret: jwtSecret}
}

// Register creates a User and returns it together with a signed bearer
// token bound to (id, role).
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, "", apperr.Validation("please provide a valid name (minimum 2 characters)")
	}
	if !emailPattern.MatchString(email) {
		return nil, "", apperr.Validation("please provide a valid email address")
	}
	if len(password) < 6 {
		return nil, "", apperr.Validation("password must be at least 6 characters long")
	}
	if !ValidRole(role) {
		return nil, "", apperr.Validation(`role must be either "doctor" or "patient"`)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", apperr.Internal("hash password", err)
	}

	u := &User{Name: name, Email: email, PasswordHash: hash, Role: role}
	// The users.email unique index backs this up; a concurrent duplicate
	// registration surfaces as the same conflict error.
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := auth.IssueToken(u.ID.String(), u.Role, s.secret)
	if err != nil {
		return nil, "", apperr.Internal("issue token", err)
	}
	return u, token, nil
}

// Login verifies credentials. The error message never reveals whether the
// email exists.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	if !emailPattern.MatchString(email) {
		return nil, "", apperr.Validation("please provide a valid email address")
	}
	if password == "" {
		return nil, "", apperr.Validation("please provide a valid password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Authentication("invalid credentials")
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", apperr.Authentication("invalid credentials")
	}

	token, err := auth.IssueToken(u.ID.String(), u.Role, s.secret)
	if err != nil {
		return nil, "", apperr.Internal("issue token", err)
	}
	return u, token, nil
}

// CurrentUser returns the public profile of the authenticated user.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Authentication("invalid user id in token")
	}
	return s.users.GetByID(ctx, id)
}
