package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
