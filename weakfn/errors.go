package weakfn

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidCast     = errors.New("invalid cast")
	ErrNoExecutor      = errors.New("no executor found")
)
