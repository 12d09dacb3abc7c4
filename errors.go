package samplekit

import "errors"

var (
	// ErrUnsupportedFormat indicates the data could not be identified as
	// any format the engine handles
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoDecodeService indicates a delegated format was requested on an
	// engine built without a decode service
	ErrNoDecodeService = errors.New("no decode service configured")
)
