// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gate implements the Hodgkin-Huxley gate entities: Gate1D (table- or
formula-backed, rates depending on one scalar input) and Gate2D (formula
only, rates depending on two scalar inputs). Both share the (A, B)
return convention used by the channel integrator: A is always the HH
forward rate (or its tau/inf equivalent inf/tau), and B is always the
sum of forward and backward rates (or 1/tau).
*/
package gate

import (
	"math"

	"github.com/emer/hhgate/v2/hhexpr"
	"github.com/emer/hhgate/v2/logx"
)

// Gate1D is a single HH gating particle whose rates are a function of one
// scalar input, typically membrane voltage. It is owned by exactly one
// Channel (the original); other Channels that were produced by copying
// the original share this Gate1D by pointer but may not mutate it -- every
// mutating method takes the calling channel's identity and rejects the
// call if it does not match the owner.
type Gate1D struct {
	owner any

	min, max float64
	divs     int
	invDx    float64

	A, B []float64

	form             Form
	useInterpolation bool

	alphaExpr, betaExpr *hhexpr.Program
	tauExpr, infExpr    *hhexpr.Program

	useParms              bool
	alphaCurve, betaCurve Curve5
}

// NewGate1D allocates a Gate1D owned by the given identity (normally the
// *channel.Channel that is allocating it for one of its X/Y/Z slots), in
// its Defaults() configuration. The error Defaults returns is always nil
// here since owner == caller by construction.
func NewGate1D(owner any) *Gate1D {
	g := &Gate1D{owner: owner}
	_ = g.Defaults(owner)
	return g
}

// Defaults resets the gate to table form over the default [-1,1] range
// with no tables and direct (non-interpolated) lookup, the same
// Defaults()/Update() pair the teacher keeps on its own parameter structs
// (nxx1.Params, knadapt.Chan): Defaults assigns the raw configuration,
// then calls Update to recompute everything derived from it.
func (g *Gate1D) Defaults(caller any) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	g.min, g.max, g.divs = -1, 1, 0
	g.form = TableForm
	g.useInterpolation = false
	g.A, g.B = nil, nil
	g.alphaExpr, g.betaExpr = nil, nil
	g.tauExpr, g.infExpr = nil, nil
	g.useParms = false
	g.alphaCurve, g.betaCurve = Curve5{}, Curve5{}
	return g.Update()
}

// Update recomputes every value cached from the gate's raw configuration:
// invDx from min/max/divs, and -- for a formula or parametric gate -- the
// filled A/B tables from the current expressions/coefficients. It takes
// no owner argument because it changes no configuration of its own, only
// re-derives cached state from what is already set; every mutating setter
// below calls it after changing raw configuration, the same way the
// teacher's own Update() methods are called at the end of Defaults() and
// after any raw-field change.
func (g *Gate1D) Update() error {
	g.recomputeInvDx()
	if g.form == TableForm {
		return nil
	}
	return g.fill()
}

// Owner returns the identity that may mutate this gate.
func (g *Gate1D) Owner() any { return g.owner }

// Form reports the gate's current parameter-supply form.
func (g *Gate1D) Form() Form { return g.form }

// UseInterpolation reports whether table lookups interpolate.
func (g *Gate1D) UseInterpolation() bool { return g.useInterpolation }

// Range reports the current input range and grid resolution.
func (g *Gate1D) Range() (min, max float64, divs int) { return g.min, g.max, g.divs }

// Tables returns copies of the current A and B arrays.
func (g *Gate1D) Tables() (a, b []float64) {
	a = append([]float64(nil), g.A...)
	b = append([]float64(nil), g.B...)
	return
}

func (g *Gate1D) checkOwner(caller any) error {
	if caller != g.owner {
		logx.Warnf("gate: rejected mutation from non-original channel (form=%s)", g.form)
		return ErrNotOriginal
	}
	return nil
}

// SetUseInterpolation toggles direct-index vs. linear-interpolation table
// lookup.
func (g *Gate1D) SetUseInterpolation(caller any, v bool) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	g.useInterpolation = v
	return nil
}

// SetRange changes the gate's input range and grid resolution. A
// direct-table gate is re-sampled by linear interpolation into the new
// grid; a formula-backed gate is re-filled from its expressions.
func (g *Gate1D) SetRange(caller any, min, max float64, divs int) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	if min >= max {
		return ErrOutOfConfigRange
	}
	oldA, oldB := g.A, g.B
	oldMin, oldMax, oldDivs := g.min, g.max, g.divs

	g.min, g.max, g.divs = min, max, divs

	switch {
	case divs < 1:
		g.A, g.B = nil, nil
	case g.form == TableForm:
		if oldDivs >= 1 && len(oldA) == oldDivs+1 && len(oldB) == oldDivs+1 {
			g.A = resample(oldA, oldMin, oldMax, oldDivs, min, max, divs)
			g.B = resample(oldB, oldMin, oldMax, oldDivs, min, max, divs)
		} else {
			g.A = make([]float64, divs+1)
			g.B = make([]float64, divs+1)
		}
	}
	return g.Update()
}

// SetTables assigns direct A/B arrays, switching the gate to TableForm.
func (g *Gate1D) SetTables(caller any, a, b []float64) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	if len(a) != len(b) {
		return ErrShapeMismatch
	}
	if g.divs >= 1 && len(a) != g.divs+1 {
		return ErrShapeMismatch
	}
	g.form = TableForm
	g.A = append([]float64(nil), a...)
	g.B = append([]float64(nil), b...)
	if g.divs < 1 {
		g.divs = len(a) - 1
	}
	return g.Update()
}

// SetAlphaBetaExpr compiles the given alpha and beta expression strings
// and switches the gate to AlphaBetaForm. On a compile error the gate's
// previously-valid expressions and tables are left untouched.
func (g *Gate1D) SetAlphaBetaExpr(caller any, alphaSrc, betaSrc string) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	alpha, err := hhexpr.Compile1D(alphaSrc)
	if err != nil {
		return err
	}
	beta, err := hhexpr.Compile1D(betaSrc)
	if err != nil {
		return err
	}
	g.form = AlphaBetaForm
	g.useParms = false
	g.alphaExpr, g.betaExpr = alpha, beta
	return g.Update()
}

// SetTauInfExpr compiles the given tau and inf expression strings and
// switches the gate to TauInfForm.
func (g *Gate1D) SetTauInfExpr(caller any, tauSrc, infSrc string) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	tau, err := hhexpr.Compile1D(tauSrc)
	if err != nil {
		return err
	}
	inf, err := hhexpr.Compile1D(infSrc)
	if err != nil {
		return err
	}
	g.form = TauInfForm
	g.tauExpr, g.infExpr = tau, inf
	return g.Update()
}

// SetAlphaParms configures the gate from the canonical 13-scalar
// parametric form: [A0..A4, B0..B4, divs, min, max], where the A
// coefficients define the alpha curve and the B coefficients the beta
// curve of y(x) = (P0 + P1*x) / (P2 + exp((x+P3)/P4)).
func (g *Gate1D) SetAlphaParms(caller any, parms [13]float64) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	min, max := parms[11], parms[12]
	divs := int(parms[10])
	if min >= max {
		return ErrOutOfConfigRange
	}
	g.alphaCurve = Curve5{parms[0], parms[1], parms[2], parms[3], parms[4]}
	g.betaCurve = Curve5{parms[5], parms[6], parms[7], parms[8], parms[9]}
	g.useParms = true
	g.form = AlphaBetaForm
	g.min, g.max, g.divs = min, max, divs
	return g.Update()
}

// AlphaParms reads back the 13-scalar parametric setup. It is only valid
// if the gate was configured via SetAlphaParms (and not since reconfigured
// with string expressions or direct tables).
func (g *Gate1D) AlphaParms() ([13]float64, error) {
	if !g.useParms || g.form != AlphaBetaForm {
		return [13]float64{}, ErrOutOfConfigRange
	}
	a, b := g.alphaCurve, g.betaCurve
	return [13]float64{
		a.P0, a.P1, a.P2, a.P3, a.P4,
		b.P0, b.P1, b.P2, b.P3, b.P4,
		float64(g.divs), g.min, g.max,
	}, nil
}

// Lookup returns the (A, B) pair for the given input, clamping at the
// range endpoints and interpolating or direct-indexing the table
// according to UseInterpolation.
func (g *Gate1D) Lookup(v float64) (a, b float64, err error) {
	if g.divs < 1 {
		return 0, 0, ErrOutOfConfigRange
	}
	if len(g.A) != g.divs+1 || len(g.B) != g.divs+1 {
		return 0, 0, ErrShapeMismatch
	}
	if v <= g.min {
		return g.A[0], g.B[0], nil
	}
	if v >= g.max {
		return g.A[g.divs], g.B[g.divs], nil
	}
	i := int(math.Floor((v - g.min) * g.invDx))
	if i >= g.divs {
		i = g.divs - 1
	}
	if i < 0 {
		i = 0
	}
	if !g.useInterpolation {
		return g.A[i], g.B[i], nil
	}
	frac := (v - g.min - float64(i)/g.invDx) * g.invDx
	a = g.A[i]*(1-frac) + g.A[i+1]*frac
	b = g.B[i]*(1-frac) + g.B[i+1]*frac
	return a, b, nil
}

// LookupVC adapts Lookup to the two-input signature Channel composes
// against uniformly for both Gate1D and Gate2D slots; c is ignored.
func (g *Gate1D) LookupVC(v, c float64) (a, b float64, err error) {
	return g.Lookup(v)
}

func (g *Gate1D) recomputeInvDx() {
	if g.divs > 0 && g.max > g.min {
		g.invDx = float64(g.divs) / (g.max - g.min)
	} else {
		g.invDx = 0
	}
}

// fill (re)computes A and B from the gate's current formula or parametric
// source. It is a no-op while divs < 1, since there is no grid to fill
// yet; the gate is simply not queryable until a valid range is set.
func (g *Gate1D) fill() error {
	if g.divs < 1 {
		g.A, g.B = nil, nil
		return nil
	}
	dv := (g.max - g.min) / float64(g.divs)
	a := make([]float64, g.divs+1)
	b := make([]float64, g.divs+1)

	switch {
	case g.form == AlphaBetaForm && g.useParms:
		for i := 0; i <= g.divs; i++ {
			x := g.min + float64(i)*dv
			av := g.alphaCurve.eval(x, dv)
			bv := g.betaCurve.eval(x, dv)
			a[i] = av
			b[i] = av + bv
		}
	case g.form == AlphaBetaForm:
		for i := 0; i <= g.divs; i++ {
			v := g.min + float64(i)*dv
			av, err := g.alphaExpr.Run1D(v)
			if err != nil {
				return err
			}
			bv, err := g.betaExpr.Run1D(v)
			if err != nil {
				return err
			}
			a[i] = av
			b[i] = av + bv
		}
	case g.form == TauInfForm:
		tau := make([]float64, g.divs+1)
		inf := make([]float64, g.divs+1)
		for i := 0; i <= g.divs; i++ {
			v := g.min + float64(i)*dv
			tv, err := g.tauExpr.Run1D(v)
			if err != nil {
				return err
			}
			iv, err := g.infExpr.Run1D(v)
			if err != nil {
				return err
			}
			tau[i], inf[i] = tv, iv
		}
		for i := 0; i <= g.divs; i++ {
			if math.Abs(tau[i]) < singularityEps {
				if i > 0 {
					a[i], b[i] = a[i-1], b[i-1]
				}
				continue
			}
			a[i] = inf[i] / tau[i]
			b[i] = 1 / tau[i]
		}
	default:
		return nil // TableForm: nothing to derive
	}

	healSweep(a)
	healSweep(b)
	g.A, g.B = a, b
	return nil
}
