// Copyright (c) 2026 EasyBuy. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/validate"
)

// # Contracts & Types

// TokenIssuer signs identity tokens. [*sec.TokenService] satisfies it.
type TokenIssuer interface {
	Issue(identity sec.Identity) (string, error)
}

// Throttle configures failed-login lockout.
type Throttle struct {
	MaxAttempts int
	Lockout     time.Duration
}

// Service implements registration and login.
type Service struct {
	userRepository UserRepository
	attemptStore   AttemptStore
	tokenIssuer    TokenIssuer
	throttle       Throttle
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	attempts AttemptStore,
	issuer TokenIssuer,
	throttle Throttle,
	logger *slog.Logger,
) *Service {
	if attempts == nil {
		attempts = NoopAttemptStore{}
	}
	return &Service{
		userRepository: userRepo,
		attemptStore:   attempts,
		tokenIssuer:    issuer,
		throttle:       throttle,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register validates, hashes, and persists a brand new user account.

Rules:
  - username: trimmed, 3 to 40 characters
  - email: valid address, compared case-insensitively
  - password: 6 characters up to 72 bytes

Returns:
  - *User: Created entity
  - error: 400 on invalid input or duplicate username/email
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLen).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Username is checked first so both taken yields the username message.
	taken, err := service.userRepository.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}
	if taken {
		return nil, validate.FieldError(FieldUsername, MsgUsernameTaken)
	}

	registered, err := service.userRepository.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}
	if registered {
		return nil, validate.FieldError(FieldEmail, MsgEmailRegistered)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		// A concurrent registration can pass both checks above.
		if uniqueError, ok := dberr.AsUnique(err); ok {
			if uniqueError.Constraint == constraintEmail {
				return nil, validate.FieldError(FieldEmail, MsgEmailRegistered)
			}
			return nil, validate.FieldError(FieldUsername, MsgUsernameTaken)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_registered", slog.Int64("user_id", user.ID))

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login verifies credentials and issues an identity token.

Unknown email, wrong password and an unreadable stored hash produce the
same 401. When throttling is
enabled, an email with MaxAttempts recent failures is refused with 429 until
the lockout window passes, even with the right password.

Returns:
  - string: Signed token
  - error: 400, 401, 429 or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	validator := &validate.Validator{}
	validator.Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return "", err
	}

	if err := service.checkLockout(ctx, input.Email); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			service.recordFailure(ctx, input.Email)
			return "", apperr.Unauthorized(MsgInvalidCredentials)
		}
		return "", fmt.Errorf("auth_service_login_failed: %w", err)
	}

	matched, err := sec.CheckPasswordHash(input.Password, user.PasswordHash)
	if err != nil {
		// An unreadable stored hash can never match; the client sees a plain mismatch.
		service.logger.WarnContext(ctx, "login_stored_hash_malformed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}
	if !matched {
		service.recordFailure(ctx, input.Email)
		return "", apperr.Unauthorized(MsgInvalidCredentials)
	}

	token, err := service.tokenIssuer.Issue(user.Identity())
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.attemptStore.Reset(ctx, input.Email); err != nil {
		service.logger.WarnContext(ctx, "login_attempts_reset_failed", slog.String("error", err.Error()))
	}
	service.logger.InfoContext(ctx, "user_logged_in", slog.Int64("user_id", user.ID))

	return token, nil
}

// checkLockout refuses the attempt once the failure budget is spent.
// Store errors fail open: a Redis outage must not block every login.
func (service *Service) checkLockout(ctx context.Context, email string) error {
	if service.throttle.MaxAttempts <= 0 {
		return nil
	}

	failures, err := service.attemptStore.Failures(ctx, email)
	if err != nil {
		service.logger.WarnContext(ctx, "login_attempts_read_failed", slog.String("error", err.Error()))
		return nil
	}
	if failures >= service.throttle.MaxAttempts {
		service.logger.WarnContext(ctx, "login_locked_out", slog.Int("failures", failures))
		return apperr.RateLimited(int(service.throttle.Lockout.Seconds()))
	}

	return nil
}

func (service *Service) recordFailure(ctx context.Context, email string) {
	if service.throttle.MaxAttempts <= 0 {
		return
	}
	if _, err := service.attemptStore.RecordFailure(ctx, email, service.throttle.Lockout); err != nil {
		service.logger.WarnContext(ctx, "login_attempts_record_failed", slog.String("error", err.Error()))
	}
}
