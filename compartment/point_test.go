// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compartment

import (
	"math"
	"testing"

	"github.com/emer/hhgate/v2/channel"
)

const difTol = 1e-9

func TestNewPointStartsAtRest(t *testing.T) {
	p := NewPoint(1, 0.3, -0.07)
	if p.Vm != -0.07 {
		t.Errorf("initial Vm: got %v, want -0.07", p.Vm)
	}
}

func TestStepIntegratesLeakTowardRest(t *testing.T) {
	p := NewPoint(1, 1, -0.07)
	p.Vm = 0 // start away from rest, no channels attached
	if err := p.Step(0.01); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// totalIk = Gl*(El-Vm) = 1*(-0.07-0) = -0.07; dVm = dt/Cm*totalIk
	want := -0.07 * 0.01
	if math.Abs(p.Vm-want) > difTol {
		t.Errorf("Vm after one leak-only step: got %v, want %v", p.Vm, want)
	}
}

func TestStepSumsChannelCurrent(t *testing.T) {
	p := NewPoint(1, 0, 0) // no leak, isolate the channel's contribution
	ch := channel.New1D(1, 10)
	if err := ch.SetPower(channel.SlotX, 1); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	ch.SetInstant(channel.SlotX, true)
	g, err := ch.Gate1D(channel.SlotX)
	if err != nil {
		t.Fatalf("Gate1D: %v", err)
	}
	if err := g.SetRange(ch, -1, 1, 1); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if err := g.SetTables(ch, []float64{1, 1}, []float64{2, 2}); err != nil {
		t.Fatalf("SetTables: %v", err)
	}
	p.Add(ch)
	if err := p.Reinit(); err != nil {
		t.Fatalf("Reinit: %v", err)
	}

	if err := p.Step(0.01); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// Gk = gBar * (A/B) = 1*0.5 = 0.5; Ik = (Ek-Vm)*Gk = (10-0)*0.5 = 5
	// dVm = dt/Cm*Ik = 0.01*5 = 0.05
	want := 0.05
	if math.Abs(p.Vm-want) > difTol {
		t.Errorf("Vm after one channel-driven step: got %v, want %v", p.Vm, want)
	}
}
