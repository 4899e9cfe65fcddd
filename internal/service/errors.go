package service

import (
	"errors"
)

// Domain errors. Handlers translate these into HTTP statuses; everything
// else surfaces as an internal error.
var (
	ErrMessageNotFound    = errors.New("message not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrFeedbackNotFound   = errors.New("feedback not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("inactive account")
	ErrEmailTaken         = errors.New("email already exists")
)
