package domain

import "errors"

// User-facing failures. Front ends render these as notices.
var (
	ErrNameRequired        = errors.New("please enter a table name")
	ErrTableNotFound       = errors.New("no table found with that name")
	ErrCredentialsRequired = errors.New("please provide both email and password")
	ErrUserExists          = errors.New("user already exists, please log in")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotLoggedIn         = errors.New("no user logged in")
	ErrCellOutOfRange      = errors.New("cell out of range")
)
