package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/mailer"
	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/hash"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
	"github.com/Skotchmaster/bazaar-backend/pkg/tokens"
)

const (
	maxLoginAttempts = 5
	lockDuration     = 30 * time.Minute
	tokenTTL         = 7 * 24 * time.Hour
	resetTokenTTL    = 10 * time.Minute
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	passwordLetters = regexp.MustCompile(`[A-Za-z]`)
	passwordDigits  = regexp.MustCompile(`\d`)
)

// AuthService owns registration, the login/lockout policy and token issuing.
// Mailer may be nil; verification mail is best-effort.
type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Mailer    mailer.Sender
	FrontURL  string
}

type LoginResult struct {
	Token string
	User  *models.User
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if strings.TrimSpace(req.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if !validPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters long and contain both letters and numbers", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:           pwHash,
		Role:                   "user",
		IsActive:               true,
		EmailVerificationToken: randomToken(),
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user already exists with this email", ErrConflict)
		}
		return nil, err
	}

	if s.Mailer != nil {
		outcome := s.Mailer.Send(ctx, mailer.Message{
			To:       user.Email,
			Subject:  "Email Verification - Bazaar",
			Template: mailer.TemplateEmailVerification,
			Data: map[string]any{
				"name":             user.FirstName,
				"verificationLink": s.FrontURL + "/verify-email?token=" + user.EmailVerificationToken,
			},
		})
		if !outcome.Sent {
			l.Warn("verification_mail_failed", "user_id", user.ID.String(), "reason", outcome.Reason)
		}
	}

	return user, nil
}

// Login enforces the lockout policy: five consecutive failed password checks
// lock the account for thirty minutes; a successful check resets the counter.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	if user.LockUntil != nil && now.Before(*user.LockUntil) {
		return nil, ErrAccountLocked
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		attempts := user.LoginAttempts + 1
		if user.LockUntil != nil && !now.Before(*user.LockUntil) {
			// Expired lock: this failure starts a fresh streak.
			attempts = 1
		}

		var lockUntil *time.Time
		if attempts >= maxLoginAttempts {
			t := now.Add(lockDuration)
			lockUntil = &t
		}
		if err := s.Repo.RecordFailedLogin(ctx, user.ID, attempts, lockUntil); err != nil {
			l.Error("record_failed_login_error", "user_id", user.ID.String(), "error", err)
		}
		if lockUntil != nil {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.Repo.ResetLoginAttempts(ctx, user.ID, now); err != nil {
		l.Error("reset_login_attempts_error", "user_id", user.ID.String(), "error", err)
	}

	token, err := tokens.NewAccessToken(s.JWTSecret, user.ID.String(), user.Role, now.Add(tokenTTL))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, req transport.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrValidation)
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

// VerifyEmail consumes the one-time token issued at registration.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrValidation)
	}

	user, err := s.Repo.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid verification token", ErrNotFound)
		}
		return nil, err
	}

	user.EmailVerified = true
	user.EmailVerificationToken = ""
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a short-lived reset token and mails it. An unknown
// email is reported as success so the endpoint cannot be used to probe for
// accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password")

	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Info("forgot_password_unknown_email")
			return nil
		}
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = randomToken()
	user.PasswordResetExpires = &expires
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	if s.Mailer != nil {
		outcome := s.Mailer.Send(ctx, mailer.Message{
			To:       user.Email,
			Subject:  "Password Reset - Bazaar",
			Template: mailer.TemplatePasswordReset,
			Data: map[string]any{
				"name":      user.FirstName,
				"resetLink": s.FrontURL + "/reset-password?token=" + user.PasswordResetToken,
			},
		})
		if !outcome.Sent {
			l.Warn("reset_mail_failed", "user_id", user.ID.String(), "reason", outcome.Reason)
		}
	}
	return nil
}

// ResetPassword consumes a live reset token, replaces the password and clears
// any active lockout.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrValidation)
	}
	if !validPassword(password) {
		return fmt.Errorf("%w: password must be at least 8 characters long and contain both letters and numbers", ErrValidation)
	}

	user, err := s.Repo.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid reset token", ErrNotFound)
		}
		return err
	}
	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return fmt.Errorf("%w: reset token expired", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	user.PasswordHash = pwHash
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	user.LoginAttempts = 0
	user.LockUntil = nil
	return s.Repo.SaveUser(ctx, user)
}

func validPassword(p string) bool {
	return len(p) >= 8 && passwordLetters.MatchString(p) && passwordDigits.MatchString(p)
}

func randomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
