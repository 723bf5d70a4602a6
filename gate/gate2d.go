// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import "github.com/emer/hhgate/v2/hhexpr"

// Gate2D is an HH gating particle whose rates depend on two scalar
// inputs, typically voltage and a calcium concentration. Unlike Gate1D it
// keeps no table: every Lookup2D call evaluates the compiled expressions
// directly, since a full 2-D discretisation is not required by this
// core (spec.md designates the Gate1D table extension as future work).
type Gate2D struct {
	owner any

	form Form // AlphaBetaForm or TauInfForm; TableForm is not supported

	alphaExpr, betaExpr *hhexpr.Program
	tauExpr, infExpr    *hhexpr.Program
}

// NewGate2D allocates a Gate2D owned by the given identity.
func NewGate2D(owner any) *Gate2D {
	return &Gate2D{owner: owner}
}

// Owner returns the identity that may mutate this gate.
func (g *Gate2D) Owner() any { return g.owner }

// Form reports the gate's current parameter-supply form.
func (g *Gate2D) Form() Form { return g.form }

func (g *Gate2D) checkOwner(caller any) error {
	if caller != g.owner {
		return ErrNotOriginal
	}
	return nil
}

// SetAlphaBetaExpr compiles the given two-variable alpha and beta
// expressions and switches the gate to AlphaBetaForm.
func (g *Gate2D) SetAlphaBetaExpr(caller any, alphaSrc, betaSrc string) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	alpha, err := hhexpr.Compile2D(alphaSrc)
	if err != nil {
		return err
	}
	beta, err := hhexpr.Compile2D(betaSrc)
	if err != nil {
		return err
	}
	g.form = AlphaBetaForm
	g.alphaExpr, g.betaExpr = alpha, beta
	return nil
}

// SetTauInfExpr compiles the given two-variable tau and inf expressions
// and switches the gate to TauInfForm.
func (g *Gate2D) SetTauInfExpr(caller any, tauSrc, infSrc string) error {
	if err := g.checkOwner(caller); err != nil {
		return err
	}
	tau, err := hhexpr.Compile2D(tauSrc)
	if err != nil {
		return err
	}
	inf, err := hhexpr.Compile2D(infSrc)
	if err != nil {
		return err
	}
	g.form = TauInfForm
	g.tauExpr, g.infExpr = tau, inf
	return nil
}

// LookupVC is Lookup2D under the name Channel composes against uniformly
// for both Gate1D and Gate2D slots.
func (g *Gate2D) LookupVC(v, c float64) (a, b float64, err error) {
	return g.Lookup2D(v, c)
}

// Lookup2D evaluates the gate at (v, c) and returns (A, B) in the usual
// convention: (alpha, alpha+beta) for AlphaBetaForm, (inf/tau, 1/tau) for
// TauInfForm.
func (g *Gate2D) Lookup2D(v, c float64) (a, b float64, err error) {
	switch g.form {
	case AlphaBetaForm:
		alpha, err := g.alphaExpr.Run2D(v, c)
		if err != nil {
			return 0, 0, err
		}
		beta, err := g.betaExpr.Run2D(v, c)
		if err != nil {
			return 0, 0, err
		}
		return alpha, alpha + beta, nil
	case TauInfForm:
		tau, err := g.tauExpr.Run2D(v, c)
		if err != nil {
			return 0, 0, err
		}
		inf, err := g.infExpr.Run2D(v, c)
		if err != nil {
			return 0, 0, err
		}
		if tau == 0 {
			return 0, 0, ErrOutOfConfigRange
		}
		return inf / tau, 1 / tau, nil
	default:
		return 0, 0, ErrOutOfConfigRange
	}
}
