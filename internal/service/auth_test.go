package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/tokens"
)

var testSecret = []byte("test-secret")

func TestRegister(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "algorithm1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, user.EmailVerificationToken)
	assert.NotEqual(t, "algorithm1", user.PasswordHash)

	_, err = svc.Register(ctx, transport.RegisterRequest{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "algorithm1",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	cases := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{"missing first name", transport.RegisterRequest{Email: "a@b.co", Password: "abcdefg1"}},
		{"bad email", transport.RegisterRequest{FirstName: "A", Email: "not-an-email", Password: "abcdefg1"}},
		{"short password", transport.RegisterRequest{FirstName: "A", Email: "a@b.co", Password: "ab1"}},
		{"letters only", transport.RegisterRequest{FirstName: "A", Email: "a@b.co", Password: "abcdefgh"}},
		{"digits only", transport.RegisterRequest{FirstName: "A", Email: "a@b.co", Password: "12345678"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "login@example.com", "password1")

	result, err := svc.Login(ctx, transport.LoginRequest{Email: "login@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := tokens.AccessClaimsFromToken(result.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	createTestUser(t, r, "victim@example.com", "password1")

	_, err := svc.Login(ctx, transport.LoginRequest{Email: "victim@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "locked@example.com", "password1")

	for i := 0; i < 4; i++ {
		_, err := svc.Login(ctx, transport.LoginRequest{Email: "locked@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// The fifth failure trips the lock.
	_, err := svc.Login(ctx, transport.LoginRequest{Email: "locked@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	got, err := r.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LockUntil)
	assert.True(t, got.LockUntil.After(time.Now()))

	// Even the correct password is rejected while locked.
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "locked@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "reset@example.com", "password1")

	for i := 0; i < 4; i++ {
		_, err := svc.Login(ctx, transport.LoginRequest{Email: "reset@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, transport.LoginRequest{Email: "reset@example.com", Password: "password1"})
	require.NoError(t, err)

	got, err := r.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, got.LoginAttempts)
	assert.Nil(t, got.LockUntil)
	assert.NotNil(t, got.LastLogin)

	// The streak starts over: one more failure does not lock.
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "reset@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginExpiredLockStartsFreshStreak(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "expired@example.com", "password1")

	past := time.Now().Add(-time.Minute)
	require.NoError(t, r.RecordFailedLogin(ctx, user.ID, 5, &past))

	// The lock has expired, so a wrong password counts as failure number one.
	_, err := svc.Login(ctx, transport.LoginRequest{Email: "expired@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := r.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LoginAttempts)
}

func TestLoginDisabledAccount(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "disabled@example.com", "password1")
	user.IsActive = false
	require.NoError(t, r.SaveUser(ctx, user))

	_, err := svc.Login(ctx, transport.LoginRequest{Email: "disabled@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{
		FirstName: "Vera",
		Email:     "vera@example.com",
		Password:  "password1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.EmailVerificationToken)

	verified, err := svc.VerifyEmail(ctx, user.EmailVerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Empty(t, verified.EmailVerificationToken)

	// The token is single-use.
	_, err = svc.VerifyEmail(ctx, user.EmailVerificationToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	sender := &recordingSender{}
	svc := &AuthService{Repo: r, JWTSecret: testSecret, Mailer: sender, FrontURL: "https://shop.example"}
	ctx := context.Background()

	user := createTestUser(t, r, "forgetful@example.com", "oldpassword1")

	require.NoError(t, svc.ForgotPassword(ctx, "forgetful@example.com"))
	require.Len(t, sender.Sent, 1)
	assert.Contains(t, sender.Sent[0].Data["resetLink"], "https://shop.example/reset-password?token=")

	stored, err := r.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordResetToken)

	err = svc.ResetPassword(ctx, stored.PasswordResetToken, "short1")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.ResetPassword(ctx, stored.PasswordResetToken, "newpassword1"))

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "forgetful@example.com", Password: "oldpassword1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login(ctx, transport.LoginRequest{Email: "forgetful@example.com", Password: "newpassword1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// The consumed token no longer works.
	err = svc.ResetPassword(ctx, stored.PasswordResetToken, "anotherpass1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	sender := &recordingSender{}
	svc := &AuthService{Repo: r, JWTSecret: testSecret, Mailer: sender}

	// No account probe: unknown email still reports success and sends nothing.
	require.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, sender.Sent)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "late@example.com", "password1")
	expired := time.Now().Add(-time.Minute)
	user.PasswordResetToken = "stale-token"
	user.PasswordResetExpires = &expired
	require.NoError(t, r.SaveUser(ctx, user))

	err := svc.ResetPassword(ctx, "stale-token", "newpassword1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user := createTestUser(t, r, "profile@example.com", "password1")

	newFirst := "Grace"
	updated, err := svc.UpdateProfile(ctx, user.ID, transport.UpdateProfileRequest{FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)

	empty := "  "
	_, err = svc.UpdateProfile(ctx, user.ID, transport.UpdateProfileRequest{FirstName: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}
