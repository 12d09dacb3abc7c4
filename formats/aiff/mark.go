// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"github.com/ik5/samplekit/internal/bin"
)

// Marker is a named position in the sound data. Marker IDs are referenced
// by the INST chunk's loop definitions and, in OP-1 drum presets, encode
// the sample split points.
type Marker struct {
	ID       uint16
	Position uint32
	Name     string
}

// parseMarkers decodes a MARK chunk body. A marker table cut off
// mid-record keeps the markers decoded so far; the second result
// reports whether truncation happened.
func parseMarkers(body []byte) ([]Marker, bool) {
	cur := bin.NewCursor(body)

	count, err := cur.U16BE()
	if err != nil {
		return nil, true
	}

	markers := make([]Marker, 0, count)
	for range count {
		id, err := cur.U16BE()
		if err != nil {
			return markers, true
		}
		pos, err := cur.U32BE()
		if err != nil {
			return markers, true
		}
		name, err := cur.PascalString()
		if err != nil {
			// The name bytes ran out but id and position are complete;
			// the marker is still usable for loop resolution
			markers = append(markers, Marker{ID: id, Position: pos})
			return markers, true
		}
		markers = append(markers, Marker{ID: id, Position: pos, Name: name})
	}

	return markers, false
}

// findMarker resolves a marker ID to its frame position.
func findMarker(markers []Marker, id uint16) (uint32, bool) {
	for _, m := range markers {
		if m.ID == id {
			return m.Position, true
		}
	}
	return 0, false
}
