package network

import "errors"

var (
	ErrNotFound          = errors.New("network: not found")
	ErrInvalidContentID  = errors.New("network: invalid content id")
	ErrContentMismatch   = errors.New("network: content does not match its id")
	ErrInsufficientFunds = errors.New("network: insufficient funds")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
