package wav

import "errors"

var (
	// ErrNotWavFile indicates the data does not start with a RIFF/WAVE
	// header
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrNoFormatChunk indicates the file carries no fmt chunk at all
	ErrNoFormatChunk = errors.New("missing fmt chunk")

	// ErrFormatTooShort indicates a fmt chunk below the 16-byte PCM
	// layout
	ErrFormatTooShort = errors.New("fmt chunk too short")

	// ErrUnsupportedFormatTag indicates a fmt chunk declaring anything
	// other than integer PCM
	ErrUnsupportedFormatTag = errors.New("unsupported WAV format tag")

	// ErrNoDataChunk indicates PCM was requested from a file without a
	// data chunk
	ErrNoDataChunk = errors.New("missing data chunk")
)
