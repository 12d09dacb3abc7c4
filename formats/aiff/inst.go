// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"math"

	"github.com/ik5/samplekit/internal/bin"
)

// instSize is the fixed INST chunk payload size.
const instSize = 20

// Loop play modes from the AIFF-1.3 specification.
const (
	LoopNone            = 0
	LoopForward         = 1
	LoopForwardBackward = 2
)

// Loop describes one INST loop definition. BeginID and EndID are marker
// IDs, not frame positions; they resolve through the MARK chunk.
type Loop struct {
	PlayMode int
	BeginID  uint16
	EndID    uint16
}

// Instrument holds the decoded INST chunk: how a sampler should play
// the sound.
type Instrument struct {
	BaseNote     int
	Detune       int // cents, -50..50
	LowNote      int
	HighNote     int
	LowVelocity  int
	HighVelocity int
	Gain         int // dB

	SustainLoop Loop
	ReleaseLoop Loop
}

// parseInstrument decodes an INST chunk body. Bodies below the fixed
// 20-byte size yield nil; the caller downgrades to "no instrument".
func parseInstrument(body []byte) *Instrument {
	if len(body) < instSize {
		return nil
	}

	cur := bin.NewCursor(body)
	baseNote, _ := cur.U8()
	detune, _ := cur.I8()
	lowNote, _ := cur.U8()
	highNote, _ := cur.U8()
	lowVel, _ := cur.U8()
	highVel, _ := cur.U8()
	gain, _ := cur.I16BE()

	inst := &Instrument{
		BaseNote:     int(baseNote),
		Detune:       int(detune),
		LowNote:      int(lowNote),
		HighNote:     int(highNote),
		LowVelocity:  int(lowVel),
		HighVelocity: int(highVel),
		Gain:         int(gain),
	}

	inst.SustainLoop = parseLoop(cur)
	inst.ReleaseLoop = parseLoop(cur)
	return inst
}

func parseLoop(cur *bin.Cursor) Loop {
	playMode, _ := cur.U16BE()
	begin, _ := cur.U16BE()
	end, _ := cur.U16BE()
	return Loop{PlayMode: int(playMode), BeginID: begin, EndID: end}
}

// RootNote returns the effective MIDI root note: the base note adjusted
// by whole semitones of detune. Detune is in cents, so only values at
// the +-50 edges shift the note.
func (i *Instrument) RootNote() int {
	note := i.BaseNote + int(math.Round(float64(i.Detune)/100.0))
	if note < 0 {
		note = 0
	}
	if note > 127 {
		note = 127
	}
	return note
}
