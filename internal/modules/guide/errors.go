package guide

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrObjectNotFound = errors.New("object not found")
)
