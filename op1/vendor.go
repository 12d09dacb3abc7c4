// SPDX-License-Identifier: EPL-2.0

package op1

import (
	"github.com/ik5/samplekit/formats/aiff"
	"github.com/ik5/samplekit/internal/bin"
)

// vendorChunkID identifies the sample map chunk some exporters write:
// the most direct boundary source, listing key and bounds per record.
const vendorChunkID = "OP1S"

// vendorCandidates reads the vendor sample map chunk. Layout: record
// count u16, then per record key u8, a reserved byte, start u32,
// end u32, and a Pascal name padded to even length. A table cut off
// mid-record keeps the records read so far.
func vendorCandidates(f *aiff.File) []candidate {
	var body []byte
	for _, c := range f.Extra {
		if c.ID == vendorChunkID {
			body = c.Body
			break
		}
	}
	if body == nil {
		return nil
	}

	cur := bin.NewCursor(body)
	count, err := cur.U16BE()
	if err != nil {
		return nil
	}

	cands := make([]candidate, 0, count)
	for range int(count) {
		key, err := cur.U8()
		if err != nil {
			break
		}
		if err := cur.Skip(1); err != nil {
			break
		}
		start, err := cur.U32BE()
		if err != nil {
			break
		}
		end, err := cur.U32BE()
		if err != nil {
			break
		}

		c := candidate{key: int(key), start: int64(start), end: int64(end)}

		name, err := cur.PascalString()
		if err != nil {
			// The name bytes ran out but the bounds are complete; keep
			// the record and stop, the cursor position is unreliable now
			cands = append(cands, c)
			break
		}
		c.name = name
		cands = append(cands, c)
	}
	return cands
}
