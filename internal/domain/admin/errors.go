package admin

import "errors"

var (
	// ErrInvalidCredentials for a wrong email or password. One error for
	// both so responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAdminNotFound when the account does not exist
	ErrAdminNotFound = errors.New("admin not found")
)
