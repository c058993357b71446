package domain

import "github.com/pkg/errors"

var (
	ErrNoData    = errors.New("no data")
	ErrDuplicate = errors.New("duplicate")

	// ErrShortURLSpaceExhausted means the collision retry budget ran out
	// before a free code was found.
	ErrShortURLSpaceExhausted = errors.New("short url space exhausted")
)
