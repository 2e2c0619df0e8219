// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, account deletion, and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/akosarev/notekeeper/internal/common"
	"github.com/akosarev/notekeeper/internal/dbx"
	"github.com/akosarev/notekeeper/internal/server/auth"
	"github.com/akosarev/notekeeper/internal/server/config"
	"github.com/akosarev/notekeeper/internal/server/models"
	"github.com/akosarev/notekeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*]`)
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
// - Delete: remove an account together with its notes
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new user, storing only the bcrypt hash of the password.
// A taken username yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, email, name, phone string) (*models.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, fmt.Errorf("%w: username must contain only letters and numbers", common.ErrValidation)
	}
	if err := checkPasswordComplexity(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Name:         name,
		Phone:        phone,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// An unknown username and a wrong password are both ErrUnauthorized, with
// nothing to tell them apart.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	return s.generateTokenPair(ctx, user.ID, user.Username, s.db)
}

// Refresh validates a refresh token, rotates it transactionally, and returns
// a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		// account deleted since the token was issued
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user.ID, user.Username, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Delete removes the account. The schema cascades to the user's notes and
// refresh tokens, so ownership of orphaned notes can never dangle.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	repo := s.repomanager.Users(s.db)
	if err := repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// --- helpers below ---

func checkPasswordComplexity(password string) error {
	if len(password) < 8 ||
		!lowerRe.MatchString(password) ||
		!upperRe.MatchString(password) ||
		!digitRe.MatchString(password) ||
		!specialRe.MatchString(password) {
		return fmt.Errorf("%w: password must meet the complexity requirements", common.ErrValidation)
	}
	return nil
}

func (s *UserService) generateAccessToken(userID, username string) (string, error) {
	return auth.GenerateToken(userID, username, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID, username string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID, username)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
