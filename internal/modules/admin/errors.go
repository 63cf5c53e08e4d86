package admin

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrMuseumNotFound  = errors.New("museum not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrInvalidRole     = errors.New("invalid role")
	ErrMuseumRequired  = errors.New("admin requires a museum")
	ErrMuseumForbidden = errors.New("superadmin cannot be tied to a museum")
)
