// SPDX-License-Identifier: EPL-2.0

package op1

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/ik5/samplekit/formats/aiff"
)

// markerCandidates splits the sound data at its markers: each marker
// starts a sample running to the next marker's position, the last one
// to the end of the data. This is the least reliable source, used only
// when nothing structured is present.
func markerCandidates(f *aiff.File) []candidate {
	if len(f.Markers) == 0 {
		return nil
	}

	marks := slices.Clone(f.Markers)
	slices.SortStableFunc(marks, func(a, b aiff.Marker) int {
		return cmp.Compare(a.Position, b.Position)
	})

	cands := make([]candidate, 0, len(marks))
	for i, m := range marks {
		end := int64(f.Common.Frames)
		if i+1 < len(marks) {
			end = int64(marks[i+1].Position)
		}

		cands = append(cands, candidate{
			key:   markerKey(m, i),
			start: int64(m.Position),
			end:   end,
			name:  m.Name,
		})
	}
	return cands
}

// markerKey infers the drum slot for a marker. Names like "kick 07"
// carry the slot in their digits; exporters that number slots 1 to 24
// land on 24 for the last one, which folds back to the top slot. With
// no usable digits the marker ID is tried, then plain position order.
func markerKey(m aiff.Marker, position int) int {
	if v, ok := nameDigits(m.Name); ok {
		if v == MaxKeys {
			return MaxKeys - 1
		}
		if v < MaxKeys {
			return v
		}
	}
	if int(m.ID) < MaxKeys {
		return int(m.ID)
	}
	return position
}

// nameDigits parses the first run of decimal digits in a marker name.
func nameDigits(name string) (int, bool) {
	start := -1
	for i := range len(name) {
		if name[i] >= '0' && name[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			v, err := strconv.Atoi(name[start:i])
			return v, err == nil
		}
	}
	if start >= 0 {
		v, err := strconv.Atoi(name[start:])
		return v, err == nil
	}
	return 0, false
}
