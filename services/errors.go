package services

import "errors"

// Error taxonomy. Everything here is recoverable at the request boundary:
// handlers map these to a notice plus a redirect or a 4xx body. Any other
// error coming out of a service is an unexpected store failure and surfaces
// as a 500.
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrPlayNotFound       = errors.New("play not found")
	ErrForbidden          = errors.New("play does not belong to caller")
	ErrPlayNotActive      = errors.New("play is not active")
	ErrUnknownLevel       = errors.New("unknown level")
	ErrLevelLocked        = errors.New("previous level incomplete")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
