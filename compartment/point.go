// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package compartment provides Point, the smallest possible stand-in for
the compartment cable-equation solver that spec.md explicitly places out
of scope. Point exists only so the gating core's external interface
(Vm/concen delivery, process/reinit, channelOut/IkOut) can be exercised
and tested end to end in this repository, without pulling in a real
multi-compartment cable solver.
*/
package compartment

import "github.com/emer/hhgate/v2/channel"

// Point is a single isopotential RC compartment: membrane capacitance Cm,
// leak conductance Gl, leak reversal El, plus zero or more ion channels
// whose Gk/Ik it sums every tick to integrate Vm by forward Euler.
type Point struct {
	Vm float64
	Cm float64 // membrane capacitance
	Gl float64 // leak conductance
	El float64 // leak reversal

	Channels []*channel.Channel
}

// NewPoint returns a Point with the given capacitance, leak conductance
// and leak reversal, starting at Vm = El.
func NewPoint(cm, gl, el float64) *Point {
	return &Point{Vm: el, Cm: cm, Gl: gl, El: el}
}

// Add attaches a channel to this compartment.
func (p *Point) Add(ch *channel.Channel) { p.Channels = append(p.Channels, ch) }

// Reinit delivers the compartment's current Vm to every channel and
// calls Reinit on each.
func (p *Point) Reinit() error {
	for _, ch := range p.Channels {
		ch.SetVm(p.Vm)
		if err := ch.Reinit(); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the compartment by one tick of size dt: delivers Vm to
// every channel, processes them, sums their driven currents together
// with the leak current, and integrates Vm forward by explicit Euler.
func (p *Point) Step(dt float64) error {
	totalIk := p.Gl * (p.El - p.Vm)
	for _, ch := range p.Channels {
		ch.SetVm(p.Vm)
		if err := ch.Process(dt); err != nil {
			return err
		}
		totalIk += ch.IkOut()
	}
	if p.Cm > 0 {
		p.Vm += dt / p.Cm * totalIk
	}
	return nil
}
