// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanidx

import "testing"

func TestResolveAllSix(t *testing.T) {
	cases := []struct {
		index      string
		dim0, dim1 Dim
	}{
		{VoltIndex, Volt, None},
		{C1Index, C1, None},
		{C2Index, C2, None},
		{VoltC1Index, Volt, C1},
		{VoltC2Index, Volt, C2},
		{C1C2Index, C1, C2},
	}
	for _, c := range cases {
		d0, d1, err := Resolve(c.index)
		if err != nil {
			t.Errorf("Resolve(%q): unexpected error %v", c.index, err)
			continue
		}
		if d0 != c.dim0 || d1 != c.dim1 {
			t.Errorf("Resolve(%q): got (%v,%v), want (%v,%v)", c.index, d0, d1, c.dim0, c.dim1)
		}
	}
}

func TestResolveUnrecognised(t *testing.T) {
	if _, _, err := Resolve("NOT_A_REAL_INDEX"); err == nil {
		t.Errorf("expected an error for an unrecognised index string")
	}
}

func TestSelectRoutesInputs(t *testing.T) {
	vm, c1, c2 := -0.050, 1e-4, 5e-4
	v, c := Select(Volt, C1, vm, c1, c2)
	if v != vm || c != c1 {
		t.Errorf("VOLT_C1: got (%v,%v), want (%v,%v)", v, c, vm, c1)
	}
	v, c = Select(Volt, C2, vm, c1, c2)
	if v != vm || c != c2 {
		t.Errorf("VOLT_C2: got (%v,%v), want (%v,%v)", v, c, vm, c2)
	}
	v, c = Select(C1, C2, vm, c1, c2)
	if v != c1 || c != c2 {
		t.Errorf("C1_C2: got (%v,%v), want (%v,%v)", v, c, c1, c2)
	}
	v, c = Select(Volt, None, vm, c1, c2)
	if v != vm || c != 0 {
		t.Errorf("VOLT only: got (%v,%v), want (%v,0)", v, c, vm)
	}
}
