// SPDX-License-Identifier: EPL-2.0

package op1

import (
	"fmt"
	"log/slog"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/formats/aiff"
)

// MaxKeys is the number of drum slots a preset can address.
const MaxKeys = 24

// byteOffsetFactor separates frame offsets from byte offsets: a declared
// bound above this multiple of the frame count cannot be a frame index.
const byteOffsetFactor = 10

// Sample is one extracted drum slot: its key assignment, frame bounds
// within the source file, and its independently decoded PCM.
type Sample struct {
	KeyIndex   int
	StartFrame int
	EndFrame   int // exclusive
	Name       string

	PCM  *audio.Buffer
	Meta *audio.Metadata
}

// Frames returns the declared sample length in frames.
func (s *Sample) Frames() int {
	return s.EndFrame - s.StartFrame
}

// Duration returns the declared sample length in seconds.
func (s *Sample) Duration() float64 {
	if s.Meta == nil || s.Meta.SampleRate <= 0 {
		return 0
	}
	return float64(s.Frames()) / float64(s.Meta.SampleRate)
}

// Preset is the set of drum samples recovered from one AIFF file.
type Preset struct {
	Samples  []Sample
	Warnings []audio.Warning
}

// candidate is a raw boundary claim from one extraction source. Start
// and end units are undecided at this point: frames or bytes.
type candidate struct {
	key   int
	start int64
	end   int64
	name  string
}

// ParsePreset extracts the drum samples packed inside a single AIFF
// file.
//
// Three sources are tried in order of reliability: the vendor sample
// map chunk, the JSON patch blob inside an APPL chunk, and finally
// plain markers. The first source yielding at least one sample with
// valid bounds wins; sources are never merged. ErrNoSamples means the
// file parses fine but carries no per-sample boundaries, i.e. it is
// not a drum preset.
func ParsePreset(data []byte) (*Preset, error) {
	f, err := aiff.Parse(data)
	if err != nil {
		return nil, err
	}
	return extract(f)
}

func extract(f *aiff.File) (*Preset, error) {
	p := &Preset{}
	p.Warnings = append(p.Warnings, f.Warnings...)

	rate, corrected := audio.NormalizeRate(f.Common.SampleRate)
	if corrected {
		p.warn(audio.WarnInvalidSampleRate, fmt.Sprintf("rate %.1f normalized to %d", f.Common.SampleRate, rate))
	}

	strategies := []struct {
		source string
		run    func(*aiff.File) []candidate
	}{
		{"vendor chunk", vendorCandidates},
		{"embedded json", jsonCandidates},
		{"markers", markerCandidates},
	}

	var resolved []candidate
	for _, s := range strategies {
		raw := s.run(f)
		if len(raw) == 0 {
			continue
		}
		cands, warns := resolveCandidates(raw, f)
		if len(cands) == 0 {
			continue
		}
		slog.Debug("drum sample source selected", "source", s.source, "samples", len(cands))
		p.Warnings = append(p.Warnings, warns...)
		resolved = cands
		break
	}
	if len(resolved) == 0 {
		return nil, ErrNoSamples
	}

	samples := decodeSamples(f, rate, resolved)
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	p.Samples = samples
	return p, nil
}

// resolveCandidates turns raw source output into final frame bounds:
// unit disambiguation, bounds filtering, key dedup. An empty result
// sends extraction on to the next source.
func resolveCandidates(raw []candidate, f *aiff.File) ([]candidate, []audio.Warning) {
	var warns []audio.Warning
	frames := int64(f.Common.Frames)

	cands, byteWarn := resolveUnits(raw, f.Common.Frames, f.BytesPerFrame(), len(f.SoundData))
	if byteWarn != nil {
		warns = append(warns, *byteWarn)
	}

	out := make([]candidate, 0, len(cands))
	slot := make(map[int]int, len(cands))
	for _, c := range cands {
		if c.end > frames {
			c.end = frames
		}
		if c.key < 0 || c.key >= MaxKeys || c.start < 0 || c.end <= c.start {
			continue
		}
		if at, ok := slot[c.key]; ok {
			// A later claim on the same key wins the slot
			out[at] = c
			continue
		}
		slot[c.key] = len(out)
		out = append(out, c)
	}
	return out, warns
}

// resolveUnits decides whether candidate bounds are frame or byte
// offsets and returns everything in frames. Nothing in the file says
// which unit was written; a bound no frame index could reach flips the
// interpretation to bytes. Byte offsets are rounded up to even to keep
// 16-bit alignment, rescaled onto the actual payload when they overflow
// even that, then divided down to frames.
func resolveUnits(cands []candidate, frames, bytesPerFrame, payloadLen int) ([]candidate, *audio.Warning) {
	if frames <= 0 {
		return cands, nil
	}

	var maxRaw int64
	for _, c := range cands {
		maxRaw = max(maxRaw, c.start, c.end)
	}
	if maxRaw <= int64(frames)*byteOffsetFactor {
		return cands, nil
	}

	out := make([]candidate, len(cands))
	var maxEven int64
	for i, c := range cands {
		c.start = (c.start + 1) &^ 1
		c.end = (c.end + 1) &^ 1
		maxEven = max(maxEven, c.start, c.end)
		out[i] = c
	}

	if payload := int64(payloadLen); payload > 0 && maxEven > payload {
		for i := range out {
			out[i].start = out[i].start * payload / maxEven
			out[i].end = out[i].end * payload / maxEven
		}
	}

	bpf := int64(bytesPerFrame)
	if bpf < 1 {
		bpf = 1
	}
	for i := range out {
		out[i].start /= bpf
		out[i].end /= bpf
	}

	w := &audio.Warning{
		Code:   audio.WarnAmbiguousOffsets,
		Detail: fmt.Sprintf("bound %d cannot be a frame index in %d frames, reading offsets as bytes", maxRaw, frames),
	}
	return out, w
}

// decodeSamples slices the sound data at the resolved bounds and
// decodes each slot on its own. A slot that cannot be decoded is
// dropped, never fatal to the rest of the preset.
func decodeSamples(f *aiff.File, rate int, cands []candidate) []Sample {
	layout := audio.PCMLayout{
		Channels:     f.Common.Channels,
		BitDepth:     f.Common.BitDepth,
		LittleEndian: f.Common.LittleEndian,
		Codec:        f.Common.Codec,
	}
	bpf := f.BytesPerFrame()

	samples := make([]Sample, 0, len(cands))
	for _, c := range cands {
		start, end := int(c.start), int(c.end)

		off := start * bpf
		stop := end * bpf
		if stop > len(f.SoundData) {
			stop = len(f.SoundData)
		}
		if off >= stop {
			continue
		}

		pcm, err := audio.DecodePCM(f.SoundData[off:stop], layout, rate)
		if err != nil {
			slog.Debug("skipping undecodable drum slot", "key", c.key, "err", err)
			continue
		}

		samples = append(samples, Sample{
			KeyIndex:   c.key,
			StartFrame: start,
			EndFrame:   end,
			Name:       c.name,
			PCM:        pcm,
			Meta:       sampleMetadata(f, rate, pcm.Frames()),
		})
	}
	return samples
}

func sampleMetadata(f *aiff.File, rate, frames int) *audio.Metadata {
	format := audio.FormatAIFF
	if f.FormType == "AIFC" {
		format = audio.FormatAIFC
	}

	meta := audio.NewMetadata(format)
	meta.SampleRate = rate
	meta.BitDepth = f.Common.BitDepth
	meta.Channels = f.Common.Channels
	meta.Frames = frames
	meta.ResetLoop()
	return meta
}

func (p *Preset) warn(code audio.WarningCode, detail string) {
	p.Warnings = append(p.Warnings, audio.Warning{Code: code, Detail: detail})
}
