// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"github.com/ik5/samplekit/internal/bin"
)

// Chunk IDs used by the parser. Anything else is handed to the caller
// unparsed.
const (
	chunkCommon     = "COMM"
	chunkMarkers    = "MARK"
	chunkInstrument = "INST"
	chunkSoundData  = "SSND"
	chunkAppData    = "APPL"
)

// Chunk is one chunk of a FORM container: a four-character ID, a
// declared big-endian size, and the body bytes.
type Chunk struct {
	ID     string
	Size   int
	Offset int

	// Body holds the available payload. When the declared size runs past
	// the end of the file, Body is shorter than Size and Truncated is set.
	Body      []byte
	Truncated bool
}

// Walker iterates the top-level chunks of an AIFF or AIFC file.
// Odd-sized chunks are padded to even boundaries; the walker skips the
// pad byte between chunks.
type Walker struct {
	cur *bin.Cursor
}

// NewWalker validates the FORM header and returns a walker positioned at
// the first chunk, along with the form type ("AIFF" or "AIFC").
func NewWalker(data []byte) (*Walker, string, error) {
	cur := bin.NewCursor(data)

	magic, err := cur.FourCC()
	if err != nil || magic != "FORM" {
		return nil, "", ErrNotAiffFile
	}
	if err := cur.Skip(4); err != nil { // declared FORM size, not trusted
		return nil, "", ErrNotAiffFile
	}
	formType, err := cur.FourCC()
	if err != nil || (formType != "AIFF" && formType != "AIFC") {
		return nil, "", ErrNotAiffFile
	}

	return &Walker{cur: cur}, formType, nil
}

// Next returns the next chunk. The second result is false once the
// remaining bytes cannot hold another chunk header.
func (w *Walker) Next() (Chunk, bool) {
	if w.cur.Remaining() < 8 {
		return Chunk{}, false
	}

	offset := w.cur.Pos()
	id, err := w.cur.FourCC()
	if err != nil {
		return Chunk{}, false
	}
	size, err := w.cur.U32BE()
	if err != nil {
		return Chunk{}, false
	}

	chunk := Chunk{ID: id, Size: int(size), Offset: offset}

	avail := w.cur.Remaining()
	take := chunk.Size
	if take > avail {
		take = avail
		chunk.Truncated = true
	}

	chunk.Body, _ = w.cur.Bytes(take)

	// Chunks are padded to even sizes; the pad byte is not part of Body
	if !chunk.Truncated && chunk.Size%2 != 0 && w.cur.Remaining() > 0 {
		_ = w.cur.Skip(1)
	}

	return chunk, true
}
