package catalog

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrMuseumNotFound = errors.New("museum not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation error")
)
