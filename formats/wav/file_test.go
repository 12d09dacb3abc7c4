// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/samplekit/audio"
)

// Helper functions to assemble synthetic WAV files chunk by chunk.

func buildChunkLE(id string, body []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	if len(body)%2 != 0 {
		buf.WriteByte(0) // padding byte
	}
	return buf.Bytes()
}

func buildWAV(chunks ...[]byte) []byte {
	body := new(bytes.Buffer)
	for _, c := range chunks {
		body.Write(c)
	}

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(4+body.Len()))
	buf.WriteString("WAVE")
	body.WriteTo(buf)
	return buf.Bytes()
}

func buildFmt(tag, channels, sampleRate, bitsPerSample int) []byte {
	buf := new(bytes.Buffer)
	byteRate := sampleRate * channels * bitsPerSample / 8
	binary.Write(buf, binary.LittleEndian, uint16(tag))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	return buildChunkLE("fmt ", buf.Bytes())
}

func buildSmpl(unityNote, numLoops, loopStart, loopEnd int) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // manufacturer
	binary.Write(buf, binary.LittleEndian, uint32(0)) // product
	binary.Write(buf, binary.LittleEndian, uint32(0)) // sample period
	binary.Write(buf, binary.LittleEndian, uint32(unityNote))
	binary.Write(buf, binary.LittleEndian, uint32(0)) // pitch fraction
	binary.Write(buf, binary.LittleEndian, uint32(0)) // SMPTE format
	binary.Write(buf, binary.LittleEndian, uint32(0)) // SMPTE offset
	binary.Write(buf, binary.LittleEndian, uint32(numLoops))
	binary.Write(buf, binary.LittleEndian, uint32(0)) // sampler data size
	for range numLoops {
		binary.Write(buf, binary.LittleEndian, uint32(0)) // cue point ID
		binary.Write(buf, binary.LittleEndian, uint32(0)) // type: forward
		binary.Write(buf, binary.LittleEndian, uint32(loopStart))
		binary.Write(buf, binary.LittleEndian, uint32(loopEnd))
		binary.Write(buf, binary.LittleEndian, uint32(0)) // fraction
		binary.Write(buf, binary.LittleEndian, uint32(0)) // play count
	}
	return buildChunkLE("smpl", buf.Bytes())
}

func buildData16(samples []int16) []byte {
	buf := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buildChunkLE("data", buf.Bytes())
}

func hasWarning(warnings []audio.Warning, code audio.WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestParse_NotWav(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("NOT A WAV FILE DATA")},
		{name: "aiff file", data: []byte("FORM\x00\x00\x00\x10AIFFCOMM")},
		{name: "bad wave marker", data: buildWAVWithMarker("NOPE")},
		{name: "truncated header", data: []byte("RIFF\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.data)
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Parse() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func buildWAVWithMarker(marker string) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36))
	buf.WriteString(marker)
	return buf.Bytes()
}

func TestParse_MissingFmt(t *testing.T) {
	t.Parallel()

	data := buildWAV(buildData16([]int16{100, 200}))

	_, err := Parse(data)
	if !errors.Is(err, ErrNoFormatChunk) {
		t.Errorf("Parse() error = %v, want ErrNoFormatChunk", err)
	}
}

func TestParse_FmtTooShort(t *testing.T) {
	t.Parallel()

	data := buildWAV(buildChunkLE("fmt ", make([]byte, 10)))

	_, err := Parse(data)
	if !errors.Is(err, ErrFormatTooShort) {
		t.Errorf("Parse() error = %v, want ErrFormatTooShort", err)
	}
}

func TestParse_NonPCMFormatTag(t *testing.T) {
	t.Parallel()

	// Tag 3 is IEEE float; compressed and float WAVs are not parsed here
	data := buildWAV(
		buildFmt(3, 1, 8000, 16),
		buildData16([]int16{0}),
	)

	_, err := Parse(data)
	if !errors.Is(err, ErrUnsupportedFormatTag) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedFormatTag", err)
	}
}

func TestParse_Basic(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -32768}
	data := buildWAV(
		buildFmt(1, 1, 8000, 16),
		buildData16(samples),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Format.Channels != 1 || f.Format.SampleRate != 8000 || f.Format.BitDepth != 16 {
		t.Errorf("Format = %+v, want 1ch/8000Hz/16bit", f.Format)
	}
	if f.DataLen != 6 {
		t.Errorf("DataLen = %d, want 6", f.DataLen)
	}
	if f.Sampler != nil {
		t.Errorf("Sampler = %+v, want nil", f.Sampler)
	}

	pcm, err := f.PCM()
	if err != nil {
		t.Fatalf("PCM() error = %v", err)
	}

	want := []float32{0, 0.5, -1.0}
	for i, w := range want {
		if pcm.Data[0][i] != w {
			t.Errorf("sample %d = %v, want %v", i, pcm.Data[0][i], w)
		}
	}
}

func TestParse_UnknownChunksSkipped(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildChunkLE("INFO", []byte{1, 2, 3, 4}),
		buildFmt(1, 1, 8000, 16),
		buildData16([]int16{100, 200}),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v, want unknown chunks skipped", err)
	}
	if f.Format.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, fmt after unknown chunk not parsed", f.Format.SampleRate)
	}
}

func TestParse_OddSizedChunkPadding(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildChunkLE("INFO", []byte{1, 2, 3}), // odd size, padded
		buildFmt(1, 1, 8000, 16),
		buildData16([]int16{100, 200}),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.SampleData) != 4 {
		t.Errorf("SampleData = %d bytes, data after odd chunk not found", len(f.SampleData))
	}
}

func TestParse_SamplerChunk(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildFmt(1, 1, 44100, 16),
		buildSmpl(60, 1, 100, 900),
		buildData16(make([]int16, 1000)),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Sampler == nil {
		t.Fatal("Sampler = nil, want parsed smpl chunk")
	}
	if f.Sampler.UnityNote != 60 {
		t.Errorf("UnityNote = %d, want 60", f.Sampler.UnityNote)
	}
	if !f.Sampler.HasLoop || f.Sampler.LoopStart != 100 || f.Sampler.LoopEnd != 900 {
		t.Errorf("Sampler loop = %+v, want 100..900", f.Sampler)
	}

	meta := f.Metadata()
	if meta.RootNote != 60 {
		t.Errorf("RootNote = %d, want 60", meta.RootNote)
	}
	if !meta.HasLoop || meta.LoopStart != 100 || meta.LoopEnd != 900 {
		t.Errorf("loop = %v %d..%d, want 100..900", meta.HasLoop, meta.LoopStart, meta.LoopEnd)
	}
}

func TestParse_SamplerNoLoops(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildFmt(1, 1, 44100, 16),
		buildSmpl(72, 0, 0, 0),
		buildData16(make([]int16, 100)),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Sampler == nil || f.Sampler.UnityNote != 72 {
		t.Fatalf("Sampler = %+v, want unity note 72", f.Sampler)
	}
	if f.Sampler.HasLoop {
		t.Error("HasLoop = true, want false for zero loops")
	}

	meta := f.Metadata()
	if meta.RootNote != 72 || meta.HasLoop {
		t.Errorf("meta root/loop = %d/%v, want 72/false", meta.RootNote, meta.HasLoop)
	}
}

func TestParse_SamplerTooShort(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildFmt(1, 1, 44100, 16),
		buildChunkLE("smpl", make([]byte, 20)),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Sampler != nil {
		t.Errorf("Sampler = %+v, want nil for undersized smpl", f.Sampler)
	}
	if !hasWarning(f.Warnings, audio.WarnTruncatedChunk) {
		t.Errorf("Warnings = %v, want truncated-chunk", f.Warnings)
	}
}

func TestParse_TruncatedData(t *testing.T) {
	t.Parallel()

	// data declares 100 bytes but only 4 follow
	buf := new(bytes.Buffer)
	buf.Write(buildFmt(1, 1, 8000, 16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(100))
	binary.Write(buf, binary.LittleEndian, int16(100))
	binary.Write(buf, binary.LittleEndian, int16(200))
	data := buildWAV(buf.Bytes())

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(f.Warnings, audio.WarnTruncatedChunk) {
		t.Errorf("Warnings = %v, want truncated-chunk", f.Warnings)
	}
	if f.DataLen != 100 {
		t.Errorf("DataLen = %d, want the declared 100", f.DataLen)
	}
	if len(f.SampleData) != 4 {
		t.Errorf("SampleData = %d bytes, want the 4 present", len(f.SampleData))
	}

	// Duration math uses the declared size
	if got := f.Metadata().Frames; got != 50 {
		t.Errorf("Frames = %d, want 50 from declared size", got)
	}

	// Decoding uses what is actually there
	pcm, err := f.PCM()
	if err != nil {
		t.Fatalf("PCM() error = %v", err)
	}
	if pcm.Frames() != 2 {
		t.Errorf("decoded frames = %d, want 2", pcm.Frames())
	}
}

func TestParse_8BitUnsigned(t *testing.T) {
	t.Parallel()

	// WAV stores 8-bit samples with a +128 offset
	data := buildWAV(
		buildFmt(1, 1, 8000, 8),
		buildChunkLE("data", []byte{0x80, 0xFF, 0x00, 0xC0}),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	pcm, err := f.PCM()
	if err != nil {
		t.Fatalf("PCM() error = %v", err)
	}

	want := []float32{0, 127.0 / 128.0, -1.0, 0.5}
	for i, w := range want {
		if pcm.Data[0][i] != w {
			t.Errorf("sample %d = %v, want %v", i, pcm.Data[0][i], w)
		}
	}
}

func TestParse_24Bit(t *testing.T) {
	t.Parallel()

	// 0x400000 = 0.5, 0xC00000 = -0.5 (sign-extended)
	data := buildWAV(
		buildFmt(1, 1, 44100, 24),
		buildChunkLE("data", []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xC0}),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	pcm, err := f.PCM()
	if err != nil {
		t.Fatalf("PCM() error = %v", err)
	}

	if pcm.Data[0][0] != 0.5 || pcm.Data[0][1] != -0.5 {
		t.Errorf("samples = %v, want [0.5 -0.5]", pcm.Data[0])
	}
}

func TestMetadata_Duration(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildFmt(1, 2, 44100, 16),
		buildData16(make([]int16, 44100*2)), // 1 second stereo
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	meta := f.Metadata()
	if meta.Frames != 44100 {
		t.Errorf("Frames = %d, want 44100", meta.Frames)
	}
	if d := meta.Duration(); d < 0.999 || d > 1.001 {
		t.Errorf("Duration() = %v, want 1.0", d)
	}
}

func TestMetadata_RateRepair(t *testing.T) {
	t.Parallel()

	data := buildWAV(
		buildFmt(1, 1, 76000, 16),
		buildData16([]int16{0}),
	)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	meta := f.Metadata()
	if meta.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want repaired 48000", meta.SampleRate)
	}
	if !hasWarning(meta.Warnings, audio.WarnInvalidSampleRate) {
		t.Errorf("Warnings = %v, want invalid-sample-rate", meta.Warnings)
	}
}

func TestFile_PCMNoData(t *testing.T) {
	t.Parallel()

	f, err := Parse(buildWAV(buildFmt(1, 1, 44100, 16)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = f.PCM()
	if !errors.Is(err, ErrNoDataChunk) {
		t.Errorf("PCM() error = %v, want ErrNoDataChunk", err)
	}
}

func BenchmarkParse(b *testing.B) {
	data := buildWAV(
		buildFmt(1, 2, 44100, 16),
		buildSmpl(60, 1, 100, 44000),
		buildData16(make([]int16, 44100*2)),
	)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = Parse(data)
	}
}
