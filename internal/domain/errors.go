package domain

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrInvalidPosition = errors.New("invalid position")
)
