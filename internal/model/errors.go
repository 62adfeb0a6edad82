package model

import "errors"

// ErrEmptyPlaylist is returned when a playlist resolves to zero items
var ErrEmptyPlaylist = errors.New("playlist is empty")
