// SPDX-License-Identifier: EPL-2.0

package op1

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/ik5/samplekit/formats/aiff"
)

// drumPatch is the subset of the embedded patch JSON the extractor
// needs. The blob carries synth and effect parameters too; only drum
// patches have the parallel bounds arrays.
type drumPatch struct {
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	Start []int64 `json:"start"`
	End   []int64 `json:"end"`
}

// jsonCandidates extracts sample bounds from the patch JSON embedded in
// an APPL chunk. The blob sits after a four-byte application signature
// and is not always cleanly terminated, so the object is located by
// brace matching instead of handing the chunk to the decoder whole.
// Key index is the array position; repeated (start, end) pairs mark
// unused slots and are dropped.
func jsonCandidates(f *aiff.File) []candidate {
	for _, body := range f.AppChunks {
		blob := extractJSONObject(body)
		if blob == nil {
			continue
		}

		var patch drumPatch
		if err := json.Unmarshal(blob, &patch); err != nil {
			slog.Debug("APPL chunk JSON did not decode", "err", err)
			continue
		}
		if patch.Type != "drum" {
			continue
		}

		n := min(len(patch.Start), len(patch.End))
		type bounds struct{ start, end int64 }
		seen := make(map[bounds]bool, n)
		cands := make([]candidate, 0, n)
		for i := range n {
			b := bounds{patch.Start[i], patch.End[i]}
			if seen[b] {
				continue
			}
			seen[b] = true
			cands = append(cands, candidate{key: i, start: b.start, end: b.end})
		}
		if len(cands) > 0 {
			return cands
		}
	}
	return nil
}

// extractJSONObject returns the first complete top-level JSON object in
// raw, with control bytes flattened to spaces. Brace matching tracks
// string state so braces inside quoted values do not count.
func extractJSONObject(raw []byte) []byte {
	start := bytes.IndexByte(raw, '{')
	if start < 0 {
		return nil
	}

	buf := make([]byte, len(raw)-start)
	copy(buf, raw[start:])
	for i, b := range buf {
		if b < 0x20 {
			buf[i] = ' '
		}
	}

	depth := 0
	inString := false
	escaped := false
	for i, b := range buf {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return buf[:i+1]
			}
		}
	}
	return nil
}
