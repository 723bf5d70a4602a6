// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hhdemo runs the classic squid giant axon Na/K action-potential scenario
// end to end: a Sim holds two channels and one compartment, injects a
// brief depolarizing stimulus from rest, and lets the compartment
// integrate Vm forward, printing the resulting gate/conductance/voltage
// trajectory. It is the non-GUI, command-line descendant of the
// teacher's examples/eqplot pattern (Config/Update/Run on a Sim struct),
// with no plotting or windowing since this repository's scope stops at
// the gating core itself.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/emer/hhgate/v2/chans"
	"github.com/emer/hhgate/v2/channel"
	"github.com/emer/hhgate/v2/compartment"
)

// Sim holds the squid-axon demo's channels, compartment and run
// parameters.
type Sim struct {
	Stim      float64 // initial depolarizing bump from rest, mV
	TimeSteps int
	TimeInc   float64

	Point *compartment.Point
	Na    *channel.Channel
	K     *channel.Channel
	Accum chans.Conductances
}

// TheSim is the overall state for this demo, in the same
// package-level-singleton style the teacher's eqplot example uses.
var TheSim Sim

func main() {
	stim := flag.Float64("stim", 20, "initial depolarizing bump from rest, mV")
	steps := flag.Int("steps", 500, "number of integration steps")
	dt := flag.Float64("dt", 0.01, "integration step size, ms")
	flag.Parse()

	TheSim.Stim = *stim
	TheSim.TimeSteps = *steps
	TheSim.TimeInc = *dt
	TheSim.Config()
	TheSim.Run()
}

// Config builds the classic Hodgkin-Huxley Na (m^3 h) and K (n^4)
// channels from their canonical parametric rate laws and attaches them
// to a single RC compartment.
func (ss *Sim) Config() {
	ss.Na = channel.New1D(120, 55)
	if err := ss.Na.SetPower(channel.SlotX, 3); err != nil {
		log.Fatalf("hhdemo: configuring Na m gate: %v", err)
	}
	if err := ss.Na.SetPower(channel.SlotY, 1); err != nil {
		log.Fatalf("hhdemo: configuring Na h gate: %v", err)
	}
	m, _ := ss.Na.Gate1D(channel.SlotX)
	if err := m.SetRange(ss.Na, -100, 50, 300); err != nil {
		log.Fatalf("hhdemo: m gate range: %v", err)
	}
	if err := m.SetAlphaParms(ss.Na, [13]float64{
		-4, -0.1, -1, 40, -10,
		4, 0, 0, 65, 18,
		300, -100, 50,
	}); err != nil {
		log.Fatalf("hhdemo: m gate parms: %v", err)
	}
	h, _ := ss.Na.Gate1D(channel.SlotY)
	if err := h.SetRange(ss.Na, -100, 50, 300); err != nil {
		log.Fatalf("hhdemo: h gate range: %v", err)
	}
	if err := h.SetAlphaParms(ss.Na, [13]float64{
		0.07, 0, 0, 65, 20,
		1, 0, 1, 35, -10,
		300, -100, 50,
	}); err != nil {
		log.Fatalf("hhdemo: h gate parms: %v", err)
	}

	ss.K = channel.New1D(36, -72)
	if err := ss.K.SetPower(channel.SlotX, 4); err != nil {
		log.Fatalf("hhdemo: configuring K n gate: %v", err)
	}
	n, _ := ss.K.Gate1D(channel.SlotX)
	if err := n.SetRange(ss.K, -100, 50, 300); err != nil {
		log.Fatalf("hhdemo: n gate range: %v", err)
	}
	if err := n.SetAlphaParms(ss.K, [13]float64{
		-0.55, -0.01, -1, 55, -10,
		0.125, 0, 0, 65, 80,
		300, -100, 50,
	}); err != nil {
		log.Fatalf("hhdemo: n gate parms: %v", err)
	}

	ss.Point = compartment.NewPoint(1, 0.3, -54.4)
	ss.Point.Add(ss.Na)
	ss.Point.Add(ss.K)
}

// Run reinitializes both channels at rest, injects the configured
// depolarizing stimulus, and steps the compartment forward, printing
// Vm, each channel's conductance and the channels' summed Ik at every step.
func (ss *Sim) Run() {
	if err := ss.Point.Reinit(); err != nil {
		log.Fatalf("hhdemo: reinit: %v", err)
	}
	ss.Point.Vm += ss.Stim

	fmt.Printf("%8s %12s %12s %12s %12s\n", "t(ms)", "Vm(mV)", "Na.Gk", "K.Gk", "total.Ik")
	t := 0.0
	for step := 0; step < ss.TimeSteps; step++ {
		ss.Accum.Reset()
		if err := ss.Point.Step(ss.TimeInc); err != nil {
			log.Fatalf("hhdemo: step %d: %v", step, err)
		}
		for _, ch := range ss.Point.Channels {
			gk, _ := ch.ChannelOut()
			ss.Accum.Add(gk, ch.IkOut())
		}
		naGk, _ := ss.Na.ChannelOut()
		kGk, _ := ss.K.ChannelOut()
		fmt.Printf("%8.3f %12.4f %12.6f %12.6f %12.6f\n", t, ss.Point.Vm, naGk, kGk, ss.Accum.Ik)
		t += ss.TimeInc
	}
}
