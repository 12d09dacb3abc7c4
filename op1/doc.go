// SPDX-License-Identifier: EPL-2.0

// Package op1 extracts the individual drum samples packed inside a
// single AIFF file by OP-1 style samplers.
//
// A drum preset is one AIFF whose sound data concatenates up to 24
// samples, one per playable key. Where the per-sample boundaries live
// depends on what wrote the file, so extraction tries three sources in
// order and takes the first that works:
//
//  1. A vendor sample map chunk listing key, start and end per record.
//  2. The patch JSON embedded in an APPL chunk, a drum patch with
//     parallel start and end arrays indexed by key.
//  3. Plain markers, splitting the data at each marker position with
//     the key inferred from the marker's name, ID or order.
//
// Boundary values from the first two sources come with a unit problem:
// some exporters wrote frame indexes, others byte offsets, and nothing
// in the file says which. Bounds too large to be frame indexes are
// reinterpreted as byte offsets and, when they overflow even the real
// payload, rescaled proportionally onto it. The reinterpretation is
// reported as a warning on the preset.
//
// Each extracted sample carries its own decoded PCM and metadata and
// can be handed to the conversion pipeline independently.
package op1
