// Package service — authentication business logic.
//
// AuthService sits between the HTTP handlers and the repository/auth
// utilities:
//
//	AuthHandler (HTTP) → AuthService (business rules) → UserRepository (DB)
//	                   ↘ TokenService (JWT) / PasswordService (bcrypt)
//
// All sign-up and sign-in flows end the same way: a local user row exists
// and a JWT carrying its numeric id in the subject claim goes back to the
// client.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahulv/blog-platform/internal/apperror"
	"github.com/rahulv/blog-platform/internal/auth"
	"github.com/rahulv/blog-platform/internal/model"
	"github.com/rahulv/blog-platform/internal/repository"
)

// AuthService handles signup, signin, and GitHub social sign-in.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Call this in server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Signup registers a new email/password account and returns a JWT for it.
//
// A duplicate email propagates as apperror.ErrConflict from the repository's
// unique index — there is no check-then-insert race.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}

	if name == "" {
		// Display name falls back to the mailbox part of the email so every
		// post always has a non-empty author.name.
		name = mailboxName(email)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info("user signed up",
		slog.Int64("userID", user.ID),
		slog.String("email", email),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	return token, nil
}

// Signin authenticates an existing email/password account and returns a JWT.
//
// A wrong email and a wrong password both yield the same
// apperror.ErrUnauthorized — the response never reveals which half failed.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", apperror.Unauthorized("invalid email or password")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized("invalid email or password")
	}

	s.logger.Info("user signed in", slog.Int64("userID", user.ID))

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	return token, nil
}

// LoginOrRegisterGitHub completes GitHub social sign-in: upsert the local
// account keyed by the GitHub ID, then issue a JWT for it. First sign-in
// creates the account; later sign-ins refresh the profile fields.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (string, error) {
	if ghUser == nil {
		return "", fmt.Errorf("service/auth: GitHub user must not be nil")
	}

	name := ghUser.Name
	if name == "" {
		name = ghUser.Login
	}

	user := &model.User{
		Name:     name,
		Email:    ghUser.Email,
		GitHubID: ghUser.ID,
	}

	if err := s.users.UpsertGitHub(ctx, user); err != nil {
		return "", fmt.Errorf("service/auth: upserting user (githubID=%d): %w", ghUser.ID, err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.Int64("userID", user.ID),
		slog.String("login", ghUser.Login),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	return token, nil
}

// GetUserByID returns the user for the given internal ID. Used by the
// /api/v1/user/me handler after the middleware has validated the JWT.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("service/auth: user ID must be positive")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %d: %w", id, err)
	}

	return user, nil
}

// mailboxName returns the part of an email address before the '@'.
func mailboxName(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
