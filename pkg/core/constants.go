package core

import "errors"

// Errors
var (
	ErrInvalidVolume       = errors.New("invalid volume")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidSide         = errors.New("invalid side")
	ErrInvalidTicker       = errors.New("invalid ticker")
	ErrInvalidCancelTarget = errors.New("invalid cancel target")
)
