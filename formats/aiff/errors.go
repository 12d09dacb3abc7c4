package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the data does not start with a FORM/AIFF
	// or FORM/AIFC header
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrCommonTooShort indicates a COMM chunk below the minimum size
	// for its form type
	ErrCommonTooShort = errors.New("COMM chunk too short")

	// ErrNoCommonChunk indicates the file carries no COMM chunk at all
	ErrNoCommonChunk = errors.New("missing COMM chunk")

	// ErrNoSoundData indicates PCM was requested from a file without an
	// SSND chunk
	ErrNoSoundData = errors.New("missing SSND chunk")
)
