// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"log/slog"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/internal/bin"
)

// Minimum COMM sizes. AIFC appends a compression tag and name to the
// plain AIFF layout.
const (
	commSizeAIFF = 18
	commSizeAIFC = 22
)

// Common holds the decoded COMM chunk, the one chunk every AIFF file
// must carry.
type Common struct {
	Channels   int
	Frames     int
	BitDepth   int
	SampleRate float64 // raw decoded rate, before normalization

	// Compression is the AIFC compression tag, empty for plain AIFF.
	Compression string

	// Decoded sample layout implied by the compression tag.
	LittleEndian bool
	Codec        audio.SampleCodec
}

// parseCommon decodes a COMM chunk body. Compression tags the parser
// does not recognize downgrade to uncompressed PCM with a warning
// rather than failing the file.
func parseCommon(c Chunk, aifc bool, warn func(audio.WarningCode, string)) (Common, error) {
	minSize := commSizeAIFF
	if aifc {
		minSize = commSizeAIFC
	}
	if len(c.Body) < minSize {
		return Common{}, fmt.Errorf("%w: %d bytes", ErrCommonTooShort, len(c.Body))
	}

	cur := bin.NewCursor(c.Body)
	channels, _ := cur.U16BE()
	frames, _ := cur.U32BE()
	bitDepth, _ := cur.U16BE()
	rateBytes, _ := cur.Bytes(extendedSize)

	common := Common{
		Channels:   int(channels),
		Frames:     int(frames),
		BitDepth:   int(bitDepth),
		SampleRate: DecodeExtended(rateBytes),
	}

	if !aifc {
		return common, nil
	}

	tag, err := cur.FourCC()
	if err != nil {
		return common, nil
	}
	common.Compression = tag

	switch tag {
	case "NONE", "twos":
		// Plain big-endian PCM

	case "sowt":
		// Byte-swapped PCM, the Intel-Mac convention
		common.LittleEndian = true

	case "fl32", "FL32":
		common.Codec = audio.CodecFloat
		common.BitDepth = 32

	case "fl64", "FL64":
		common.Codec = audio.CodecFloat
		common.BitDepth = 64

	case "ulaw", "ULAW":
		common.Codec = audio.CodecULaw
		slog.Warn("accepting lossy AIFC compression", "tag", tag)
		warn(audio.WarnLossyCodec, "ulaw compressed audio, quality reduced")

	case "alaw", "ALAW":
		common.Codec = audio.CodecALaw
		slog.Warn("accepting lossy AIFC compression", "tag", tag)
		warn(audio.WarnLossyCodec, "alaw compressed audio, quality reduced")

	default:
		slog.Warn("unknown AIFC compression tag, assuming uncompressed PCM", "tag", tag)
		warn(audio.WarnUnknownCompression, fmt.Sprintf("tag %q treated as PCM", tag))
	}

	return common, nil
}
