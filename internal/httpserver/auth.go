package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

type AuthHandler struct {
	Auth *service.AuthService

	// SecureCookies marks the session cookie Secure. Off only for plain-http
	// local setups.
	SecureCookies bool
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", http.StatusBadRequest, "reason", "bad_payload")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.Auth.Register(ctx, req)
	if err != nil {
		l.Warn("register_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}

	l.Info("register_success", "user_id", user.ID.String())
	return respondMessage(c, http.StatusCreated, "registration successful", user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.Auth.Login(ctx, req)
	if err != nil {
		l.Warn("login_error", "status", statusFromError(err), "email", req.Email, "error", err)
		return fail(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	l.Info("login_success", "user_id", result.User.ID.String())
	return respondOK(c, transport.LoginResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
	})
	return respondMessage(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_email")

	var req transport.VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.Auth.VerifyEmail(ctx, req.Token)
	if err != nil {
		l.Warn("verify_email_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}

	l.Info("verify_email_success", "user_id", user.ID.String())
	return respondMessage(c, http.StatusOK, "email verified", user)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.forgot_password")

	var req transport.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.Auth.ForgotPassword(ctx, req.Email); err != nil {
		l.Warn("forgot_password_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}
	return respondMessage(c, http.StatusOK, "if the email exists, a reset link has been sent", nil)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.reset_password")

	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.Auth.ResetPassword(ctx, req.Token, req.Password); err != nil {
		l.Warn("reset_password_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}

	l.Info("reset_password_success")
	return respondMessage(c, http.StatusOK, "password updated", nil)
}

func (h *AuthHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	id := userIDFromContext(c)
	if id == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	user, err := h.Auth.GetProfile(ctx, *id)
	if err != nil {
		return fail(c, err)
	}
	return respondOK(c, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	id := userIDFromContext(c)
	if id == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.Auth.UpdateProfile(ctx, *id, req)
	if err != nil {
		l.Warn("update_profile_error", "status", statusFromError(err), "user_id", id.String(), "error", err)
		return fail(c, err)
	}

	l.Info("update_profile_success", "user_id", id.String())
	return respondOK(c, user)
}

func (h *AuthHandler) Addresses(c echo.Context) error {
	ctx := c.Request().Context()

	id := userIDFromContext(c)
	if id == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	addresses, err := h.Auth.ListAddresses(ctx, *id)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, addresses, len(addresses), nil)
}
