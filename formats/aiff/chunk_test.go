// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"testing"
)

func TestNewWalker_FormType(t *testing.T) {
	t.Parallel()

	_, formType, err := NewWalker(buildForm("AIFF"))
	if err != nil || formType != "AIFF" {
		t.Errorf("NewWalker(AIFF) = %q, %v", formType, err)
	}

	_, formType, err = NewWalker(buildForm("AIFC"))
	if err != nil || formType != "AIFC" {
		t.Errorf("NewWalker(AIFC) = %q, %v", formType, err)
	}
}

func TestWalker_Next(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildChunk("ONE ", []byte{1, 2, 3, 4}),
		buildChunk("TWO ", []byte{5}),
		buildChunk("TREE", nil),
	)

	w, _, err := NewWalker(data)
	if err != nil {
		t.Fatalf("NewWalker() error = %v", err)
	}

	var ids []string
	var sizes []int
	for {
		c, ok := w.Next()
		if !ok {
			break
		}
		ids = append(ids, c.ID)
		sizes = append(sizes, len(c.Body))

		if c.Truncated {
			t.Errorf("chunk %s marked truncated in a well formed file", c.ID)
		}
	}

	wantIDs := []string{"ONE ", "TWO ", "TREE"}
	wantSizes := []int{4, 1, 0}
	for i := range wantIDs {
		if i >= len(ids) || ids[i] != wantIDs[i] || sizes[i] != wantSizes[i] {
			t.Fatalf("chunks = %v %v, want %v %v", ids, sizes, wantIDs, wantSizes)
		}
	}
	if len(ids) != 3 {
		t.Errorf("walked %d chunks, want 3", len(ids))
	}
}

func TestWalker_ChunkOffsets(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildChunk("ONE ", []byte{1, 2}),
		buildChunk("TWO ", []byte{3}),
	)

	w, _, _ := NewWalker(data)

	c1, _ := w.Next()
	if c1.Offset != 12 {
		t.Errorf("first chunk offset = %d, want 12", c1.Offset)
	}

	// 12 + header(8) + body(2) = 22
	c2, ok := w.Next()
	if !ok || c2.Offset != 22 {
		t.Errorf("second chunk offset = %d, want 22", c2.Offset)
	}
}

func TestWalker_TrailingGarbage(t *testing.T) {
	t.Parallel()

	// Fewer than 8 bytes left cannot be a chunk header
	data := buildForm("AIFF", buildChunk("ONE ", []byte{1, 2}))
	data = append(data, 0xDE, 0xAD, 0xBE)

	w, _, _ := NewWalker(data)

	if _, ok := w.Next(); !ok {
		t.Fatal("first chunk not returned")
	}
	if c, ok := w.Next(); ok {
		t.Errorf("trailing garbage produced chunk %+v", c)
	}
}
