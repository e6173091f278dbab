package common

import "errors"

// session specific errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrEmptySession = errors.New("user and token must not be empty")
)
