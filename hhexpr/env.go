// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hhexpr compiles the small arithmetic-expression language used by
formula-backed HH gates (alpha/beta or tau/inf rate laws) into a form that
can be evaluated many times per simulated tick without re-parsing.

Expressions are compiled once with github.com/expr-lang/expr against a
fixed symbol table: the scalar input v (and, for two-input gates, c), plus
four writable helper scalars alpha, beta, tau, inf that let a rate law
stage an intermediate computation before clamping or branching on it, e.g.
"alpha := 1500/(1+exp(-v)), alpha < 3.8 ? 3.8 : alpha". No state is
captured across calls: every Run starts the helpers back at zero.
*/
package hhexpr

// env is the symbol table bound to a compiled expression. It is rebuilt
// fresh (zeroed helpers) on every Run so that no call observes state left
// over by a previous one. The expr struct tags map this struct's exported
// fields onto the lowercase identifiers the rate-law language actually
// uses, the same way expr-lang/expr examples rename env fields.
type env struct {
	V float64 `expr:"v"`
	C float64 `expr:"c"`

	Alpha float64 `expr:"alpha"`
	Beta  float64 `expr:"beta"`
	Tau   float64 `expr:"tau"`
	Inf   float64 `expr:"inf"`
}

// names recognised in the 1-D symbol table (v plus the helpers).
var names1D = map[string]bool{
	"v": true, "alpha": true, "beta": true, "tau": true, "inf": true,
}

// names recognised in the 2-D symbol table (1-D set plus c).
var names2D = map[string]bool{
	"v": true, "c": true, "alpha": true, "beta": true, "tau": true, "inf": true,
}
