package service

import (
	"errors"
	"fmt"
)

// Failure classes every operation reports. Operations wrap them with detail,
// so compare with errors.Is.
var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrExpired          = errors.New("expired")
	ErrInvalidInput     = errors.New("invalid input")
)

// ErrNoActiveOrganization is returned when an operation needs the caller's
// active organization and none is selected.
var ErrNoActiveOrganization = fmt.Errorf("%w: no active organization", ErrAccessDenied)
