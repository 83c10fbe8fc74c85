package cas

import "errors"

var (
	ErrNotFound  = errors.New("cas: not found")
	ErrInvalidID = errors.New("cas: invalid id")
	ErrMismatch  = errors.New("cas: id mismatch")
	ErrImmutable = errors.New("cas: immutable blob mismatch")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
