// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

// Form selects how a Gate1D supplies its rate parameters.
type Form int

const (
	// TableForm gates are backed by directly-assigned A/B arrays.
	TableForm Form = iota

	// AlphaBetaForm gates compute A = alpha, B = alpha + beta, either
	// from a pair of expression strings or from the canonical
	// 13-scalar parametric form.
	AlphaBetaForm

	// TauInfForm gates compute A = inf/tau, B = 1/tau from a pair of
	// expression strings.
	TauInfForm
)

// String gives the human-readable name used in log messages.
func (f Form) String() string {
	switch f {
	case TableForm:
		return "table"
	case AlphaBetaForm:
		return "alpha-beta"
	case TauInfForm:
		return "tau-inf"
	default:
		return "unknown"
	}
}
