package application

import "errors"

var (
	ErrAllSourcesFailed = errors.New("all quote sources failed")
	ErrRunInProgress    = errors.New("another run holds the history")
)
