// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides Conductances, an accumulator for the Gk/Ik
contributions of an arbitrary number of channel.Channels attached to one
compartment.Point. It generalizes the teacher codebase's point-neuron
Chans struct (a fixed four-field E/L/I/K accumulator) into a slice-backed
accumulator sized to however many channels a compartment carries, since
the gating core's channels are not limited to the four canonical
point-neuron conductance types.
*/
package chans

// Conductances accumulates the net conductance and driven current
// contributed by a compartment's channels over one tick.
type Conductances struct {
	// Gk is the summed conductance across all accumulated channels.
	Gk float64

	// Ik is the summed driven current across all accumulated channels.
	Ik float64

	n int
}

// Reset zeros the accumulator for a new tick.
func (cd *Conductances) Reset() {
	cd.Gk = 0
	cd.Ik = 0
	cd.n = 0
}

// Add accumulates one channel's (Gk, Ik) contribution.
func (cd *Conductances) Add(gk, ik float64) {
	cd.Gk += gk
	cd.Ik += ik
	cd.n++
}

// N returns the number of channels accumulated since the last Reset.
func (cd *Conductances) N() int { return cd.n }
