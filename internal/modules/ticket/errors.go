package ticket

import "errors"

var (
	ErrNotFound       = errors.New("ticket not found")
	ErrMuseumNotFound = errors.New("museum not found")
	ErrInvalidTicket  = errors.New("invalid ticket code")
	ErrExpiredTicket  = errors.New("ticket expired")
	ErrValidation     = errors.New("validation error")
)
