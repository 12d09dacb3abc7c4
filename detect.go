// SPDX-License-Identifier: EPL-2.0

package samplekit

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/ik5/samplekit/audio"
)

// DetectFormat identifies the audio format of data. Container magics
// are checked first, then a general content sniff, and finally the
// filename extension; content always beats the extension.
func (e *Engine) DetectFormat(data []byte, filename string) audio.Format {
	if f := sniffMagic(data); f != audio.FormatUnknown {
		return f
	}
	if f := sniffContent(data); f != audio.FormatUnknown {
		return f
	}
	return formatFromExt(filename)
}

// sniffMagic checks the container signatures the engine knows natively,
// plus the compressed signatures it delegates.
func sniffMagic(data []byte) audio.Format {
	if len(data) >= 12 {
		switch {
		case bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
			return audio.FormatWAV
		case bytes.Equal(data[0:4], []byte("FORM")) && bytes.Equal(data[8:12], []byte("AIFF")):
			return audio.FormatAIFF
		case bytes.Equal(data[0:4], []byte("FORM")) && bytes.Equal(data[8:12], []byte("AIFC")):
			return audio.FormatAIFC
		}
	}

	if len(data) >= 4 {
		if bytes.Equal(data[0:4], []byte("OggS")) {
			return audio.FormatOGG
		}
		if bytes.Equal(data[0:4], []byte("fLaC")) {
			return audio.FormatFLAC
		}
	}

	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return audio.FormatMP3
	}

	// Bare MPEG audio frame: 11-bit sync run
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return audio.FormatMP3
	}

	return audio.FormatUnknown
}

// sniffContent runs the filetype matcher over the data for signatures
// sniffMagic does not cover.
func sniffContent(data []byte) audio.Format {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return audio.FormatUnknown
	}

	switch kind.Extension {
	case "wav":
		return audio.FormatWAV
	case "aiff":
		return audio.FormatAIFF
	case "mp3":
		return audio.FormatMP3
	case "ogg":
		return audio.FormatOGG
	case "flac":
		return audio.FormatFLAC
	}

	return audio.FormatUnknown
}

func formatFromExt(filename string) audio.Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav", ".wave":
		return audio.FormatWAV
	case ".aif", ".aiff":
		return audio.FormatAIFF
	case ".aifc":
		return audio.FormatAIFC
	case ".mp3":
		return audio.FormatMP3
	case ".ogg", ".oga":
		return audio.FormatOGG
	case ".flac":
		return audio.FormatFLAC
	}
	return audio.FormatUnknown
}
