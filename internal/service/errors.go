package service

import "errors"

// ErrInvalidRequest marks request validation failures. HTTP handlers map it
// to a 400 response.
var ErrInvalidRequest = errors.New("invalid request")
