package decode

import "errors"

// Errors returned by the decode service
var (
	ErrNoDecoder = errors.New("no decoder for format")
)
