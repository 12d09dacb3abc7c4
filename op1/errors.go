package op1

import "errors"

var (
	// ErrNoSamples indicates the file parses as AIFF but none of the
	// extraction sources produced a usable drum sample
	ErrNoSamples = errors.New("no drum samples found")
)
