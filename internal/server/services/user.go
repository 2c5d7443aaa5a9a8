// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login plus session token
// issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsmirnovs/notekeeper/internal/common"
	"github.com/dsmirnovs/notekeeper/internal/dbx"
	"github.com/dsmirnovs/notekeeper/internal/server/auth"
	"github.com/dsmirnovs/notekeeper/internal/server/config"
	"github.com/dsmirnovs/notekeeper/internal/server/models"
	"github.com/dsmirnovs/notekeeper/internal/server/repositories/repomanager"
)

// LoginResult bundles the minted access token with the authenticated user.
type LoginResult struct {
	AccessToken string
	User        *models.User
}

// UserService provides authentication-related operations:
// - Register: create users with hashed credentials
// - Login: verify credentials and mint a session token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt-hashed password. A taken
// username or email returns common.ErrConflict, whether it is caught by the
// pre-check or by the storage unique constraint when two registrations race.
func (s *UserService) Register(ctx context.Context, username string, email string, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: string(hash)}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username, email)
		if err != nil {
			return fmt.Errorf("error checking existing user: %w", err)
		}
		if exists {
			return common.ErrConflict
		}

		created, err := repo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the email/password pair and, on success, returns the user
// together with a fresh access token. Unknown email and wrong password both
// return common.ErrUnauthorized, so callers cannot probe which emails are
// registered.
func (s *UserService) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &LoginResult{AccessToken: token, User: user}, nil
}
