// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chanidx implements the input-index policy for 2-D channels: the
fixed table mapping each of the six recognised index strings to the pair
of external inputs (voltage, calcium concentration 1, calcium
concentration 2) that feed a Gate2D's v and c arguments.
*/
package chanidx

import "fmt"

// Dim names one of the three external inputs a 2-D channel can route to a
// gate, or the absence of a second input.
type Dim int

const (
	None Dim = iota
	Volt
	C1
	C2
)

func (d Dim) String() string {
	switch d {
	case Volt:
		return "Volt"
	case C1:
		return "C1"
	case C2:
		return "C2"
	default:
		return "None"
	}
}

// The six recognised index strings, exactly as named in the spec's
// configuration surface.
const (
	VoltIndex   = "VOLT_INDEX"
	C1Index     = "C1_INDEX"
	C2Index     = "C2_INDEX"
	VoltC1Index = "VOLT_C1_INDEX"
	VoltC2Index = "VOLT_C2_INDEX"
	C1C2Index   = "C1_C2_INDEX"
)

var table = map[string][2]Dim{
	VoltIndex:   {Volt, None},
	C1Index:     {C1, None},
	C2Index:     {C2, None},
	VoltC1Index: {Volt, C1},
	VoltC2Index: {Volt, C2},
	C1C2Index:   {C1, C2},
}

// Resolve looks up the (dim0, dim1) pair for an index string, rejecting
// anything outside the six recognised strings.
func Resolve(index string) (dim0, dim1 Dim, err error) {
	pair, ok := table[index]
	if !ok {
		return None, None, fmt.Errorf("chanidx: unrecognised index string %q", index)
	}
	return pair[0], pair[1], nil
}

// Select picks (v, c) out of the three external inputs according to the
// resolved dims. dim1 == None means the gate is really 1-D in disguise;
// callers that only have a Gate2D pass the same value for the unused c
// slot, which the gate never reads in that case (1-D formula gates use
// Gate1D directly; this helper exists for completeness of the index
// table and for channels that keep everything behind a uniform Gate2D
// interface).
func Select(dim0, dim1 Dim, vm, conc1, conc2 float64) (v, c float64) {
	v = pick(dim0, vm, conc1, conc2)
	if dim1 != None {
		c = pick(dim1, vm, conc1, conc2)
	}
	return v, c
}

func pick(d Dim, vm, conc1, conc2 float64) float64 {
	switch d {
	case Volt:
		return vm
	case C1:
		return conc1
	case C2:
		return conc2
	default:
		return 0
	}
}
