package services

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNotOwner       = errors.New("recording belongs to another user")
	ErrDuplicateEmail = errors.New("user with this email already exists")
	ErrInvalidToken   = errors.New("invalid or expired token")
)
