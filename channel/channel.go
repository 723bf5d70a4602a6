// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package channel composes up to three HH gates (conventionally named X, Y,
Z) with integer powers into a single conductance, owns the per-channel
gate state variables, and implements the per-step exponential-Euler /
Crank-Nicolson integration rule shared by every channel in this core.
*/
package channel

import (
	"fmt"

	"github.com/emer/hhgate/v2/chanidx"
	"github.com/emer/hhgate/v2/gate"
	"github.com/emer/hhgate/v2/logx"
)

// Slot names the three gate positions a Channel can carry.
type Slot int

const (
	SlotX Slot = iota
	SlotY
	SlotZ
	numSlots
)

// Driver distinguishes a channel that steps its own gates on Process and
// Reinit from one that has been handed off to a solver, which steps the
// channel's gates itself. This re-expresses the teacher framework's
// "zombie substitution" of a solver-owned object's class as an explicit
// tagged field rather than an in-place type swap.
type Driver int

const (
	// DriverSelf is the default: the channel steps its own gates.
	DriverSelf Driver = iota
	// DriverSolver means a compartment solver now owns stepping; Process
	// and Reinit become no-ops.
	DriverSolver
)

// State is the channel's lifecycle state.
type State int

const (
	StateEmpty State = iota
	StateConfigured
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// gateVC is the minimal interface both gate.Gate1D and gate.Gate2D
// satisfy, letting Channel drive either kind through one code path.
type gateVC interface {
	LookupVC(v, c float64) (a, b float64, err error)
}

type slot struct {
	g       gateVC
	power   int
	instant bool
	inited  bool
	state   float64
	index   string // 2-D routing string, e.g. chanidx.VoltC1Index; "" for 1-D channels
	dim0    chanidx.Dim
	dim1    chanidx.Dim
}

// Channel owns up to three gates and composes their state into a
// conductance Gk = gBar * prod(gate^power) * modulation, and a driven
// current Ik = (Ek - Vm) * Gk.
type Channel struct {
	is2D   bool
	driver Driver
	state  State

	gates [numSlots]slot

	gBar, Ek     float64
	Gk, Ik       float64
	Vm           float64
	conc1, conc2 float64
	modulation   float64
}

// New1D allocates an empty 1-D channel (gates depend on Vm alone).
func New1D(gBar, ek float64) *Channel {
	return &Channel{gBar: gBar, Ek: ek, modulation: 1}
}

// New2D allocates an empty 2-D channel (gates may additionally depend on
// one or two calcium concentrations, per the input-index policy).
func New2D(gBar, ek float64) *Channel {
	return &Channel{gBar: gBar, Ek: ek, modulation: 1, is2D: true}
}

// Is2D reports whether this channel's gates are Gate2D (true) or Gate1D.
func (c *Channel) Is2D() bool { return c.is2D }

// State returns the channel's lifecycle state.
func (c *Channel) State() State { return c.state }

// Driver returns the channel's current driver.
func (c *Channel) Driver() Driver { return c.driver }

// SetDriver assigns the channel to a solver, or returns it to
// self-stepping. Handing a channel to a solver does not clear its state;
// it only changes whether Process/Reinit are no-ops.
func (c *Channel) SetDriver(d Driver) { c.driver = d }

// GBar returns the channel's maximum conductance.
func (c *Channel) GBar() float64 { return c.gBar }

// SetGBar sets the channel's maximum conductance.
func (c *Channel) SetGBar(g float64) { c.gBar = g }

// SetModulation sets the multiplicative scalar applied to Gk on top of
// gBar and the gate-power product; collaborators default this to 1.
func (c *Channel) SetModulation(m float64) { c.modulation = m }

// SetVm delivers the current membrane voltage.
func (c *Channel) SetVm(v float64) { c.Vm = v }

// SetConcen delivers the first calcium concentration input (2-D channels
// only).
func (c *Channel) SetConcen(v float64) { c.conc1 = v }

// SetConcen2 delivers the second calcium concentration input (2-D
// channels only).
func (c *Channel) SetConcen2(v float64) { c.conc2 = v }

// ChannelOut returns the channel's contribution to the compartment's
// conductance and its reversal potential, as last computed by Process.
func (c *Channel) ChannelOut() (gk, ek float64) { return c.Gk, c.Ek }

// IkOut returns the last driven current computed by Process.
func (c *Channel) IkOut() float64 { return c.Ik }

// Power returns the integer power of the given slot (0 if absent).
func (c *Channel) Power(s Slot) int { return c.gates[s].power }

// SetPower sets the integer power of the given slot, lazily allocating a
// gate the first time a slot's power goes from 0 to positive, and
// destroying it when set back to 0.
func (c *Channel) SetPower(s Slot, power int) error {
	if power < 0 {
		return gate.ErrOutOfConfigRange
	}
	sl := &c.gates[s]
	switch {
	case power > 0 && sl.g == nil:
		if c.is2D {
			sl.g = gate.NewGate2D(c)
		} else {
			sl.g = gate.NewGate1D(c)
		}
		sl.inited = false
		sl.state = 0
	case power == 0 && sl.g != nil:
		sl.g = nil
		sl.inited = false
		sl.state = 0
	}
	sl.power = power
	if c.state == StateEmpty {
		c.state = StateConfigured
	}
	return nil
}

// SetInstant sets or clears the slot's instant bit: an instant gate is
// clamped to A/B every step instead of integrated.
func (c *Channel) SetInstant(s Slot, instant bool) { c.gates[s].instant = instant }

// InstantMask returns the three instant bits packed as a bitmask (bit 0 =
// X, bit 1 = Y, bit 2 = Z), matching the spec's literal data model.
func (c *Channel) InstantMask() int {
	mask := 0
	for i, sl := range c.gates {
		if sl.instant {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// SetIndex sets the 2-D input-routing string for the given slot (one of
// the six strings chanidx recognises). It is an error on a 1-D channel.
func (c *Channel) SetIndex(s Slot, index string) error {
	if !c.is2D {
		return fmt.Errorf("channel: SetIndex called on a 1-D channel")
	}
	dim0, dim1, err := chanidx.Resolve(index)
	if err != nil {
		return err
	}
	sl := &c.gates[s]
	sl.index, sl.dim0, sl.dim1 = index, dim0, dim1
	return nil
}

// Gate1D returns the Gate1D allocated for the given slot, or an error if
// the slot is empty or the channel is 2-D.
func (c *Channel) Gate1D(s Slot) (*gate.Gate1D, error) {
	if c.is2D {
		return nil, fmt.Errorf("channel: Gate1D called on a 2-D channel")
	}
	g, _ := c.gates[s].g.(*gate.Gate1D)
	if g == nil {
		return nil, fmt.Errorf("channel: slot %v has no gate (power not set > 0)", s)
	}
	return g, nil
}

// Gate2D returns the Gate2D allocated for the given slot, or an error if
// the slot is empty or the channel is 1-D.
func (c *Channel) Gate2D(s Slot) (*gate.Gate2D, error) {
	if !c.is2D {
		return nil, fmt.Errorf("channel: Gate2D called on a 1-D channel")
	}
	g, _ := c.gates[s].g.(*gate.Gate2D)
	if g == nil {
		return nil, fmt.Errorf("channel: slot %v has no gate (power not set > 0)", s)
	}
	return g, nil
}

// GateState returns the current open-fraction state of the given slot.
func (c *Channel) GateState(s Slot) float64 { return c.gates[s].state }

// Clone returns a copy of the channel. The copy shares every allocated
// gate by reference with the original -- the original remains each
// gate's owner, so mutating entry points invoked through the copy are
// rejected (gate.ErrNotOriginal).
func (c *Channel) Clone() *Channel {
	nc := *c
	return &nc
}

// inputFor resolves the (v, c) pair a slot's gate should be queried at,
// given the channel's current Vm/conc1/conc2.
func (c *Channel) inputFor(sl *slot) (v, cc float64) {
	if !c.is2D {
		return c.Vm, 0
	}
	return chanidx.Select(sl.dim0, sl.dim1, c.Vm, c.conc1, c.conc2)
}

// Reinit resets each active gate's state to its steady-state value A/B,
// unless the caller has already pre-seeded it (slot.inited). A no-op
// under DriverSolver.
func (c *Channel) Reinit() error {
	if c.driver == DriverSolver {
		return nil
	}
	for i := range c.gates {
		sl := &c.gates[i]
		if sl.power == 0 {
			continue
		}
		if sl.g == nil {
			return fmt.Errorf("channel: slot %d has power %d but no gate: %w", i, sl.power, gate.ErrUninitialised)
		}
		if sl.inited {
			continue
		}
		v, cc := c.inputFor(sl)
		a, b, err := sl.g.LookupVC(v, cc)
		if err != nil {
			return err
		}
		if b < 1e-15 {
			logx.WarnOnce(fmt.Sprintf("reinit-tiny-b-%d", i), "channel: reinit refused to set slot %d, B=%g below threshold", i, b)
			continue
		}
		sl.state = a / b
	}
	c.state = StateRunning
	return nil
}

// Process advances the channel by one tick of size dt: queries each
// active gate, integrates (or clamps, for instant gates) its state, and
// composes the result into Gk and Ik. A no-op under DriverSolver.
func (c *Channel) Process(dt float64) error {
	if c.driver == DriverSolver {
		return nil
	}
	product := 1.0
	for i := range c.gates {
		sl := &c.gates[i]
		if sl.power == 0 {
			continue
		}
		if sl.g == nil {
			return fmt.Errorf("channel: slot %d has power %d but no gate", i, sl.power)
		}
		v, cc := c.inputFor(sl)
		a, b, err := sl.g.LookupVC(v, cc)
		if err != nil {
			return err
		}
		var g float64
		if sl.instant {
			if b == 0 {
				logx.WarnOnce(fmt.Sprintf("instant-zero-b-%d", i), "channel: instant slot %d has B=0, clamping conductance to 0", i)
				g = 0
			} else {
				g = a / b
			}
		} else {
			g = (sl.state*(2/dt-b) + 2*a) / (2/dt + b)
		}
		sl.state = g
		product *= powInt(g, sl.power)
	}
	c.Gk = c.gBar * product * c.modulation
	c.Ik = (c.Ek - c.Vm) * c.Gk
	return nil
}

// powInt raises x to the non-negative integer power n, unrolling the
// common small powers (1-4) as repeated multiplication and falling back
// to a loop for anything larger.
func powInt(x float64, n int) float64 {
	switch n {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	case 3:
		return x * x * x
	case 4:
		return x * x * x * x
	default:
		r := 1.0
		for i := 0; i < n; i++ {
			r *= x
		}
		return r
	}
}
