// SPDX-License-Identifier: EPL-2.0

package op1_test

import (
	"fmt"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/formats/aiff"
	"github.com/ik5/samplekit/op1"
)

// Example splits a marked-up AIFF file into its individual samples.
// Files without a vendor sample map fall back to plain markers: each
// marker starts a sample running to the next marker's position.
func Example() {
	buf := audio.NewBuffer(1, 1000, 44100)
	data, err := aiff.Encode(buf, 16, aiff.EncodeOptions{
		LoopStart: 100,
		LoopEnd:   900,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	preset, err := op1.ParsePreset(data)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, s := range preset.Samples {
		fmt.Printf("key %d: frames %d..%d\n", s.KeyIndex, s.StartFrame, s.EndFrame)
	}
	// Output:
	// key 1: frames 100..900
	// key 2: frames 900..1000
}
