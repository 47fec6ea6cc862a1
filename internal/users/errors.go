package users

import "errors"

// Error kinds returned by the repository and service. Handlers map these to
// response shapes with errors.Is; anything not listed here is treated as a
// storage failure and surfaces as a 5xx.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrNotFound           = errors.New("user not found")
)
