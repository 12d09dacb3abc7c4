// SPDX-License-Identifier: EPL-2.0

package op1

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/formats/aiff"
)

func buildChunk(id string, body []byte) []byte {
	out := []byte(id)
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

func buildForm(formType string, chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := []byte("FORM")
	out = binary.BigEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, formType...)
	return append(out, body...)
}

func buildCOMM(channels, frames, bitDepth int, rate float64) []byte {
	body := binary.BigEndian.AppendUint16(nil, uint16(channels))
	body = binary.BigEndian.AppendUint32(body, uint32(frames))
	body = binary.BigEndian.AppendUint16(body, uint16(bitDepth))
	ext := aiff.EncodeExtended(rate)
	body = append(body, ext[:]...)
	return buildChunk("COMM", body)
}

func buildCOMMC(channels, frames, bitDepth int, rate float64, tag string) []byte {
	body := binary.BigEndian.AppendUint16(nil, uint16(channels))
	body = binary.BigEndian.AppendUint32(body, uint32(frames))
	body = binary.BigEndian.AppendUint16(body, uint16(bitDepth))
	ext := aiff.EncodeExtended(rate)
	body = append(body, ext[:]...)
	body = append(body, tag...)
	body = append(body, 0, 0) // empty Pascal compression name
	return buildChunk("COMM", body)
}

// buildSSND16 serializes big-endian 16-bit samples behind the standard
// zero offset/block header.
func buildSSND16(samples []int16) []byte {
	body := make([]byte, 8, 8+2*len(samples))
	for _, s := range samples {
		body = binary.BigEndian.AppendUint16(body, uint16(s))
	}
	return buildChunk("SSND", body)
}

// rampSamples counts up from zero so frame positions are recognizable
// after slicing.
func rampSamples(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i)
	}
	return out
}

type vendorRecord struct {
	key        int
	start, end uint32
	name       string
}

func vendorBody(records ...vendorRecord) []byte {
	body := binary.BigEndian.AppendUint16(nil, uint16(len(records)))
	for _, r := range records {
		body = append(body, byte(r.key), 0)
		body = binary.BigEndian.AppendUint32(body, r.start)
		body = binary.BigEndian.AppendUint32(body, r.end)
		body = append(body, byte(len(r.name)))
		body = append(body, r.name...)
		if (1+len(r.name))%2 != 0 {
			body = append(body, 0)
		}
	}
	return body
}

func buildVendor(records ...vendorRecord) []byte {
	return buildChunk("OP1S", vendorBody(records...))
}

func buildAPPL(blob string) []byte {
	body := append([]byte("op-1"), blob...)
	return buildChunk("APPL", body)
}

func buildMARK(markers ...aiff.Marker) []byte {
	body := binary.BigEndian.AppendUint16(nil, uint16(len(markers)))
	for _, m := range markers {
		body = binary.BigEndian.AppendUint16(body, m.ID)
		body = binary.BigEndian.AppendUint32(body, m.Position)
		body = append(body, byte(len(m.Name)))
		body = append(body, m.Name...)
		if (1+len(m.Name))%2 != 0 {
			body = append(body, 0)
		}
	}
	return buildChunk("MARK", body)
}

func hasWarning(warns []audio.Warning, code audio.WarningCode) bool {
	for _, w := range warns {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestParsePreset_VendorChunk(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildVendor(
			vendorRecord{key: 0, start: 0, end: 600, name: "kick"},
			vendorRecord{key: 5, start: 600, end: 1000, name: "snare"},
		),
		buildSSND16(rampSamples(1000)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	if len(p.Samples) != 2 {
		t.Fatalf("len(Samples) = %d, want 2", len(p.Samples))
	}

	s := p.Samples[0]
	if s.KeyIndex != 0 || s.StartFrame != 0 || s.EndFrame != 600 || s.Name != "kick" {
		t.Errorf("sample 0 = %+v, want key 0 frames 0..600 name kick", s)
	}
	if s.PCM == nil || s.PCM.Frames() != 600 {
		t.Errorf("sample 0 PCM frames = %v, want 600", s.PCM)
	}

	s = p.Samples[1]
	if s.KeyIndex != 5 || s.StartFrame != 600 || s.EndFrame != 1000 || s.Name != "snare" {
		t.Errorf("sample 1 = %+v, want key 5 frames 600..1000 name snare", s)
	}

	// The slice must hold the frames at its own offset, not frame zero
	want := float64(600) / 32768
	if got := float64(s.PCM.Data[0][0]); got != want {
		t.Errorf("sample 1 first value = %v, want %v", got, want)
	}
}

func TestParsePreset_StrategyPrecedence(t *testing.T) {
	t.Parallel()

	vendor := buildVendor(vendorRecord{key: 0, start: 100, end: 900})
	appl := buildAPPL(`{"type":"drum","start":[0,500],"end":[500,1000]}`)
	mark := buildMARK(
		aiff.Marker{ID: 1, Position: 0, Name: "1"},
		aiff.Marker{ID: 2, Position: 250, Name: "2"},
	)

	tests := []struct {
		name       string
		chunks     [][]byte
		wantStarts []int
	}{
		{"vendor beats json and markers", [][]byte{vendor, appl, mark}, []int{100}},
		{"json beats markers", [][]byte{appl, mark}, []int{0, 500}},
		{"markers as last resort", [][]byte{mark}, []int{0, 250}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chunks := append([][]byte{buildCOMM(1, 1000, 16, 44100)}, tt.chunks...)
			chunks = append(chunks, buildSSND16(rampSamples(1000)))

			p, err := ParsePreset(buildForm("AIFF", chunks...))
			if err != nil {
				t.Fatalf("ParsePreset() error = %v", err)
			}

			if len(p.Samples) != len(tt.wantStarts) {
				t.Fatalf("len(Samples) = %d, want %d", len(p.Samples), len(tt.wantStarts))
			}
			for i, want := range tt.wantStarts {
				if p.Samples[i].StartFrame != want {
					t.Errorf("sample %d StartFrame = %d, want %d", i, p.Samples[i].StartFrame, want)
				}
			}
		})
	}
}

func TestParsePreset_DuplicateKeyLaterWins(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildVendor(
			vendorRecord{key: 3, start: 0, end: 100, name: "first"},
			vendorRecord{key: 3, start: 200, end: 400, name: "second"},
		),
		buildSSND16(rampSamples(1000)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	if len(p.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(p.Samples))
	}
	s := p.Samples[0]
	if s.Name != "second" || s.StartFrame != 200 || s.EndFrame != 400 {
		t.Errorf("sample = %+v, want the later record", s)
	}
}

func TestParsePreset_InvalidCandidatesSkipped(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildVendor(
			vendorRecord{key: 0, start: 500, end: 500},  // zero length
			vendorRecord{key: 1, start: 600, end: 400},  // inverted
			vendorRecord{key: 30, start: 0, end: 100},   // key out of range
			vendorRecord{key: 2, start: 900, end: 2000}, // end clamps to 1000
			vendorRecord{key: 4, start: 0, end: 300, name: "ok"},
		),
		buildSSND16(rampSamples(1000)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	if len(p.Samples) != 2 {
		t.Fatalf("len(Samples) = %d, want 2", len(p.Samples))
	}
	if p.Samples[0].KeyIndex != 2 || p.Samples[0].EndFrame != 1000 {
		t.Errorf("sample 0 = %+v, want key 2 clamped to end 1000", p.Samples[0])
	}
	if p.Samples[1].KeyIndex != 4 || p.Samples[1].Name != "ok" {
		t.Errorf("sample 1 = %+v, want key 4", p.Samples[1])
	}
}

func TestParsePreset_NonOverlappingPairs(t *testing.T) {
	t.Parallel()

	blob := `{"type":"drum","start":[0,500,500],"end":[500,900,900]}`
	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildAPPL(blob),
		buildSSND16(rampSamples(1000)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	// Two distinct pairs survive, the repeated pair marks an unused slot
	if len(p.Samples) != 2 {
		t.Fatalf("len(Samples) = %d, want 2", len(p.Samples))
	}
	if p.Samples[0].KeyIndex != 0 || p.Samples[1].KeyIndex != 1 {
		t.Errorf("keys = %d, %d, want 0, 1", p.Samples[0].KeyIndex, p.Samples[1].KeyIndex)
	}
}

func TestParsePreset_ByteOffsetsRescaled(t *testing.T) {
	t.Parallel()

	// Bounds written in a scaled fixed-point unit: far beyond both the
	// frame count and the payload, so they are read as bytes and
	// rescaled onto the 2000-byte payload.
	blob := `{"type":"drum","start":[0,246060],"end":[246060,492120]}`
	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildAPPL(blob),
		buildSSND16(rampSamples(1000)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	if !hasWarning(p.Warnings, audio.WarnAmbiguousOffsets) {
		t.Error("expected an ambiguous-offsets warning")
	}
	if len(p.Samples) != 2 {
		t.Fatalf("len(Samples) = %d, want 2", len(p.Samples))
	}
	if p.Samples[0].StartFrame != 0 || p.Samples[0].EndFrame != 500 {
		t.Errorf("sample 0 = %d..%d, want 0..500", p.Samples[0].StartFrame, p.Samples[0].EndFrame)
	}
	if p.Samples[1].StartFrame != 500 || p.Samples[1].EndFrame != 1000 {
		t.Errorf("sample 1 = %d..%d, want 500..1000", p.Samples[1].StartFrame, p.Samples[1].EndFrame)
	}
}

func TestParsePreset_OddByteOffsetRoundsUp(t *testing.T) {
	t.Parallel()

	// 8 channels at 24 bit: 24 bytes per frame, so one odd byte rounded
	// up crosses a frame boundary that plain division would miss.
	// 100 frames = 2400 payload bytes; 1199 rounds up to 1200 = frame 50.
	frames := 100
	payload := make([]byte, 8, 8+frames*24)
	payload = append(payload, make([]byte, frames*24)...)

	data := buildForm("AIFF",
		buildCOMM(8, frames, 24, 44100),
		buildVendor(vendorRecord{key: 0, start: 1199, end: 2400}),
		buildChunk("SSND", payload),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	if !hasWarning(p.Warnings, audio.WarnAmbiguousOffsets) {
		t.Error("expected an ambiguous-offsets warning")
	}
	if len(p.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(p.Samples))
	}
	if p.Samples[0].StartFrame != 50 || p.Samples[0].EndFrame != 100 {
		t.Errorf("sample = %d..%d, want 50..100", p.Samples[0].StartFrame, p.Samples[0].EndFrame)
	}
}

func TestParsePreset_SowtPayload(t *testing.T) {
	t.Parallel()

	// Little-endian sound data: each 16-bit sample byte-swapped
	body := make([]byte, 8, 8+2*100)
	for i := range 100 {
		body = binary.LittleEndian.AppendUint16(body, uint16(int16(i*100)))
	}

	data := buildForm("AIFC",
		buildCOMMC(1, 100, 16, 44100, "sowt"),
		buildVendor(vendorRecord{key: 0, start: 10, end: 20}),
		buildChunk("SSND", body),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	if len(p.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(p.Samples))
	}
	s := p.Samples[0]
	if s.Meta.Format != audio.FormatAIFC {
		t.Errorf("Format = %q, want %q", s.Meta.Format, audio.FormatAIFC)
	}
	want := float64(10*100) / 32768
	if got := float64(s.PCM.Data[0][0]); got != want {
		t.Errorf("first value = %v, want %v", got, want)
	}
}

func TestParsePreset_NoSamples(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildSSND16(rampSamples(1000)),
	)

	_, err := ParsePreset(data)
	if !errors.Is(err, ErrNoSamples) {
		t.Errorf("ParsePreset() error = %v, want %v", err, ErrNoSamples)
	}
}

func TestParsePreset_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := ParsePreset([]byte("RIFF\x00\x00\x00\x04WAVE"))
	if !errors.Is(err, aiff.ErrNotAiffFile) {
		t.Errorf("ParsePreset() error = %v, want %v", err, aiff.ErrNotAiffFile)
	}
}

func TestParsePreset_VendorAllInvalidFallsThrough(t *testing.T) {
	t.Parallel()

	// Vendor chunk present but every record unusable: the marker source
	// still gets its turn
	data := buildForm("AIFF",
		buildCOMM(1, 1000, 16, 44100),
		buildVendor(vendorRecord{key: 0, start: 500, end: 500}),
		buildMARK(aiff.Marker{ID: 0, Position: 0, Name: "hit 00"}),
		buildSSND16(rampSamples(1000)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}
	if len(p.Samples) != 1 || p.Samples[0].Name != "hit 00" {
		t.Fatalf("Samples = %+v, want the marker sample", p.Samples)
	}
}

func TestSampleAccessors(t *testing.T) {
	t.Parallel()

	data := buildForm("AIFF",
		buildCOMM(1, 44100, 16, 44100),
		buildVendor(vendorRecord{key: 0, start: 0, end: 22050}),
		buildSSND16(rampSamples(44100)),
	)

	p, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset() error = %v", err)
	}

	s := p.Samples[0]
	if s.Frames() != 22050 {
		t.Errorf("Frames() = %d, want 22050", s.Frames())
	}
	if s.Duration() != 0.5 {
		t.Errorf("Duration() = %v, want 0.5", s.Duration())
	}
}

func TestResolveUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cands     []candidate
		frames    int
		bpf       int
		payload   int
		want      [][2]int64
		wantBytes bool
	}{
		{
			name:    "frame offsets untouched",
			cands:   []candidate{{start: 0, end: 500}, {start: 500, end: 1000}},
			frames:  1000,
			bpf:     2,
			payload: 2000,
			want:    [][2]int64{{0, 500}, {500, 1000}},
		},
		{
			name:    "boundary value stays frames",
			cands:   []candidate{{start: 0, end: 10000}},
			frames:  1000,
			bpf:     2,
			payload: 2000,
			want:    [][2]int64{{0, 10000}},
		},
		{
			name:      "bytes rescaled onto payload",
			cands:     []candidate{{start: 0, end: 246060}, {start: 246060, end: 492120}},
			frames:    1000,
			bpf:       2,
			payload:   2000,
			want:      [][2]int64{{0, 500}, {500, 1000}},
			wantBytes: true,
		},
		{
			name:    "zero frames left alone",
			cands:   []candidate{{start: 0, end: 99999}},
			frames:  0,
			bpf:     2,
			payload: 0,
			want:    [][2]int64{{0, 99999}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, warn := resolveUnits(tt.cands, tt.frames, tt.bpf, tt.payload)
			if (warn != nil) != tt.wantBytes {
				t.Fatalf("warning = %v, wantBytes %v", warn, tt.wantBytes)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].start != w[0] || got[i].end != w[1] {
					t.Errorf("cand %d = %d..%d, want %d..%d", i, got[i].start, got[i].end, w[0], w[1])
				}
			}
		})
	}
}

func BenchmarkParsePreset(b *testing.B) {
	records := make([]vendorRecord, 0, MaxKeys)
	for i := range MaxKeys {
		records = append(records, vendorRecord{
			key:   i,
			start: uint32(i * 1000),
			end:   uint32((i + 1) * 1000),
			name:  fmt.Sprintf("slot %02d", i),
		})
	}
	data := buildForm("AIFF",
		buildCOMM(1, MaxKeys*1000, 16, 44100),
		buildVendor(records...),
		buildSSND16(rampSamples(MaxKeys*1000)),
	)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := ParsePreset(data); err != nil {
			b.Fatal(err)
		}
	}
}
