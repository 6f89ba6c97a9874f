package beam

import "errors"

var (
	ErrInvalidArgument = errors.New("beam: nil buffer")
	ErrInvalidSize     = errors.New("beam: invalid size")
	ErrInvalidCRC      = errors.New("beam: crc mismatch")
	ErrInvalidState    = errors.New("beam: invalid frame state")
)
