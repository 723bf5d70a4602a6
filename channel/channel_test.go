// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package channel

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/hhgate/v2/chanidx"
	"github.com/emer/hhgate/v2/gate"
)

const difTol = 1e-9

func TestSetPowerLazyAllocAndDealloc(t *testing.T) {
	ch := New1D(1, 0)
	if ch.State() != StateEmpty {
		t.Fatalf("new channel: got state %v, want empty", ch.State())
	}
	if err := ch.SetPower(SlotX, 3); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	if ch.State() != StateConfigured {
		t.Errorf("after SetPower: got state %v, want configured", ch.State())
	}
	if _, err := ch.Gate1D(SlotX); err != nil {
		t.Errorf("Gate1D after allocation: %v", err)
	}
	if err := ch.SetPower(SlotX, 0); err != nil {
		t.Fatalf("SetPower back to 0: %v", err)
	}
	if _, err := ch.Gate1D(SlotX); err == nil {
		t.Errorf("expected an error reading a deallocated slot's gate")
	}
}

func TestSetPowerNegativeRejected(t *testing.T) {
	ch := New1D(1, 0)
	if err := ch.SetPower(SlotX, -1); !errors.Is(err, gate.ErrOutOfConfigRange) {
		t.Errorf("negative power: got %v, want ErrOutOfConfigRange", err)
	}
}

func TestCloneSharesGatesAndRejectsCopyMutation(t *testing.T) {
	ch := New1D(120, 55)
	if err := ch.SetPower(SlotX, 3); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	g, err := ch.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 4); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if err := g.SetTables(ch, []float64{1, 2, 3, 4, 5}, []float64{1, 1, 1, 1, 1}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}

	cp := ch.Clone()
	cpg, err := cp.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D on clone: %v", err)
	}
	if cpg != g {
		t.Errorf("clone's gate should be the same pointer as the original's")
	}

	if err := cpg.SetTables(cp, []float64{9, 9, 9, 9, 9}, []float64{9, 9, 9, 9, 9}); !errors.Is(err, gate.ErrNotOriginal) {
		t.Errorf("mutating through the clone: got %v, want ErrNotOriginal", err)
	}
	a, _, err := g.Lookup(0)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if a == 9 {
		t.Errorf("clone mutation leaked into the shared table")
	}

	if err := g.SetTables(ch, []float64{7, 7, 7, 7, 7}, []float64{1, 1, 1, 1, 1}); err != nil {
		t.Fatalf("SetTables through original: %v", err)
	}
	a, _, err = cpg.Lookup(0)
	if err != nil {
		t.Fatalf("Lookup through clone after original mutation: %v", err)
	}
	if a != 7 {
		t.Errorf("original's mutation should be visible through the clone's shared gate: got %v, want 7", a)
	}
}

// TestIntegrationConvergesWithinOnePercent exercises the exponential-Euler
// update rule directly: with B held at 1e4 and dt=1e-4, the fixed-point
// iteration g_{n+1} = (g_n*(2/dt-B) + 2A)/(2/dt+B) has a contraction ratio
// of exactly 1/3, so starting from g=0 the state must close to within 1% of
// A/B well inside 10 steps.
func TestIntegrationConvergesWithinOnePercent(t *testing.T) {
	ch := New1D(1, 0)
	if err := ch.SetPower(SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	g, err := ch.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 1); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	// constant A=5000, B=10000 everywhere -> steady state A/B = 0.5
	if err := g.SetTables(ch, []float64{5000, 5000}, []float64{10000, 10000}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}

	const dt = 1e-4
	const ginf = 0.5
	prev := 0.0
	for step := 1; step <= 10; step++ {
		if err := ch.Process(dt); err != nil {
			t.Fatalf("Process step %d: %v", step, err)
		}
		state := ch.GateState(SlotX)
		if state < prev {
			t.Errorf("step %d: state decreased (%v -> %v), expected monotonic approach", step, prev, state)
		}
		prev = state
		if step == 5 {
			relErr := math.Abs(state-ginf) / ginf
			if relErr >= 0.01 {
				t.Errorf("step 5: relative error %v still >= 1%%, state=%v", relErr, state)
			}
		}
	}
}

func TestInstantGateClampsToStedyState(t *testing.T) {
	ch := New1D(1, 0)
	if err := ch.SetPower(SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	ch.SetInstant(SlotX, true)
	g, err := ch.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 1); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if err := g.SetTables(ch, []float64{3, 3}, []float64{4, 4}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}
	if err := ch.Process(1e-4); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if math.Abs(ch.GateState(SlotX)-0.75) > difTol {
		t.Errorf("instant gate state: got %v, want 0.75", ch.GateState(SlotX))
	}
}

// TestTwoDRoutingSelectsRightConcentration exercises the input-index
// policy end to end: switching a slot's index string between
// VOLT_C1_INDEX and VOLT_C2_INDEX changes which concentration input
// feeds that slot's gate, with voltage always in the first position.
func TestTwoDRoutingSelectsRightConcentration(t *testing.T) {
	ch := New2D(1, 0)
	if err := ch.SetPower(SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	ch.SetVm(-0.05)
	ch.SetConcen(1e-4)
	ch.SetConcen2(5e-4)

	if err := ch.SetIndex(SlotX, chanidx.VoltC1Index); err != nil {
		t.Fatalf("SetIndex VOLT_C1: %v", err)
	}
	v, c := ch.inputFor(&ch.gates[SlotX])
	if v != -0.05 || c != 1e-4 {
		t.Errorf("VOLT_C1_INDEX routing: got (v=%v,c=%v), want (-0.05, 1e-4)", v, c)
	}

	if err := ch.SetIndex(SlotX, chanidx.VoltC2Index); err != nil {
		t.Fatalf("SetIndex VOLT_C2: %v", err)
	}
	v, c = ch.inputFor(&ch.gates[SlotX])
	if v != -0.05 || c != 5e-4 {
		t.Errorf("VOLT_C2_INDEX routing: got (v=%v,c=%v), want (-0.05, 5e-4)", v, c)
	}
}

func TestDriverSolverMakesProcessAndReinitNoOps(t *testing.T) {
	ch := New1D(1, 0)
	if err := ch.SetPower(SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	g, err := ch.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 1); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if err := g.SetTables(ch, []float64{5, 5}, []float64{10, 10}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}
	ch.SetDriver(DriverSolver)
	if err := ch.Reinit(); err != nil {
		t.Fatalf("Reinit under DriverSolver: %v", err)
	}
	if err := ch.Process(1e-4); err != nil {
		t.Fatalf("Process under DriverSolver: %v", err)
	}
	if ch.GateState(SlotX) != 0 {
		t.Errorf("DriverSolver: state should stay untouched at 0, got %v", ch.GateState(SlotX))
	}
}

func TestReinitSetsSteadyState(t *testing.T) {
	ch := New1D(1, 0)
	if err := ch.SetPower(SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	g, err := ch.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 1); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if err := g.SetTables(ch, []float64{3, 3}, []float64{4, 4}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}
	if err := ch.Reinit(); err != nil {
		t.Fatalf("Reinit: %v", err)
	}
	if math.Abs(ch.GateState(SlotX)-0.75) > difTol {
		t.Errorf("Reinit steady state: got %v, want 0.75", ch.GateState(SlotX))
	}
	if ch.State() != StateRunning {
		t.Errorf("after Reinit: got state %v, want running", ch.State())
	}
}

func TestSetIndexRejectedOnOneDChannel(t *testing.T) {
	ch := New1D(1, 0)
	if err := ch.SetPower(SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	if err := ch.SetIndex(SlotX, chanidx.VoltIndex); err == nil {
		t.Errorf("expected an error setting an index on a 1-D channel")
	}
}

func TestChannelOutComposesGbarAndPower(t *testing.T) {
	ch := New1D(2, 60)
	if err := ch.SetPower(SlotX, 2); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	g, err := ch.Gate1D(SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 1); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	ch.SetInstant(SlotX, true)
	if err := g.SetTables(ch, []float64{3, 3}, []float64{6, 6}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}
	ch.SetVm(10)
	if err := ch.Process(1e-4); err != nil {
		t.Fatalf("Process: %v", err)
	}
	gk, ek := ch.ChannelOut()
	wantGk := 2 * math.Pow(0.5, 2) // gBar * (A/B)^power
	if math.Abs(gk-wantGk) > difTol {
		t.Errorf("Gk: got %v, want %v", gk, wantGk)
	}
	if ek != 60 {
		t.Errorf("Ek: got %v, want 60", ek)
	}
	wantIk := (60 - 10) * wantGk
	if math.Abs(ch.IkOut()-wantIk) > difTol {
		t.Errorf("Ik: got %v, want %v", ch.IkOut(), wantIk)
	}
}
