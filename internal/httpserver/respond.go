package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/internal/util"
)

// Envelope is the uniform JSON response shape used by every route.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalRows   int64 `json:"total_rows"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewPagination(page, size int, total int64) *Pagination {
	totalPages := util.TotalPages(total, size)
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalRows:   total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

func respondList(c echo.Context, data any, count int, p *Pagination) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pagination: p})
}

// statusFromError maps the service error taxonomy onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAccountDisabled):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAccountLocked):
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	code := statusFromError(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		// Internal details never reach the client.
		msg = "internal error"
	}
	return echo.NewHTTPError(code, msg)
}

// HTTPErrorHandler rewrites every error, echo's own included, into the
// envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}

	_ = c.JSON(code, Envelope{Success: false, Message: msg})
}

func userIDFromContext(c echo.Context) *uuid.UUID {
	s, ok := c.Get("user_id").(string)
	if !ok || s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func pageParams(c echo.Context) (page, size, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size = util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit = util.Calculate(page, size)
	// The reported page size is the clamped one actually used.
	return page, limit, offset, limit
}
