package wol

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength means the address does not hold exactly 12 hex digits once separators are removed.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidFormat means the address contains a character that is not a hex digit.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidTarget means a broadcast target could not be parsed.
	ErrInvalidTarget = errors.New("invalid broadcast target")
	// ErrNoTargets means there is nowhere to send a magic packet.
	ErrNoTargets = errors.New("no broadcast targets configured")
)

// ParseError describes why a MAC address was rejected.
type ParseError struct {
	Input string
	Err   error // ErrInvalidLength or ErrInvalidFormat
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid MAC address %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
