package service

import "errors"

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 409
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrAccountDisabled    = errors.New("account disabled")    // 403
	ErrAccountLocked      = errors.New("account locked")      // 423
)
