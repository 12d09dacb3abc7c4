// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"io"
	"sync"
)

// Source is a PCM stream being decoded.
type Source interface {
	// SampleRate reports the stream rate in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1, 1].
	// It returns the number of float32 values written, not frames. When
	// n == 0 with err == io.EOF the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// BufSize is the read size the source performs best at.
	BufSize() int

	// Close releases decoder resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys to decoders. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register installs d for format, replacing any earlier registration.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[format] = d
}

// Get looks up the decoder registered for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}
