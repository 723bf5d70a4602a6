// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import "math"

// singularityEps is the threshold below which a denominator or table
// entry is treated as a removable singularity rather than a real value.
const singularityEps = 1e-6

// Curve5 is the canonical five-coefficient HH rate-law curve
//
//	y(x) = (P0 + P1*x) / (P2 + exp((x + P3) / P4))
//
// used by a gate's parametric (alphaParms) form. Two Curve5 values, one
// per rate (alpha and beta), make up a parametric gate setup.
type Curve5 struct {
	P0, P1, P2, P3, P4 float64
}

// eval computes y(x), healing the two removable-singularity cases the HH
// canonical form is prone to: a zero P4 (curve defined to be zero there),
// and a near-zero denominator at x itself, healed by averaging the curve
// at x-dx/10 and x+dx/10.
func (c Curve5) eval(x, dx float64) float64 {
	if math.Abs(c.P4) < singularityEps {
		return 0
	}
	denom := c.P2 + math.Exp((x+c.P3)/c.P4)
	if math.Abs(denom) < singularityEps {
		lo := c.rawEval(x - dx/10)
		hi := c.rawEval(x + dx/10)
		return (lo + hi) / 2
	}
	return (c.P0 + c.P1*x) / denom
}

// rawEval computes y(x) without singularity healing; used only to
// evaluate the flanking samples in eval, which are themselves assumed far
// enough from the singularity to be safe.
func (c Curve5) rawEval(x float64) float64 {
	denom := c.P2 + math.Exp((x+c.P3)/c.P4)
	return (c.P0 + c.P1*x) / denom
}
