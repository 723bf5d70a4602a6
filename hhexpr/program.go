// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hhexpr

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// MalformedExpression is returned when a gate's alpha/beta/tau/inf/alphaParms
// expression string fails to compile. It carries the offending source text
// and the diagnostic message. Compile sets Pos to -1 in every case: the
// position expr-lang/expr reports for a failing clause is not carried over,
// so Msg is the only pointer to the failing token.
type MalformedExpression struct {
	Source string
	Pos    int
	Msg    string
}

func (e *MalformedExpression) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("hhexpr: malformed expression at byte %d of %q: %s", e.Pos, e.Source, e.Msg)
	}
	return fmt.Sprintf("hhexpr: malformed expression %q: %s", e.Source, e.Msg)
}

// clause is one step of a compiled program: optionally an assignment into
// one of the writable helper scalars, always a compiled sub-expression.
type clause struct {
	assignTo string // "" for the terminal (result) clause
	prog     *vm.Program
}

// Program is a compiled expression, ready to be evaluated repeatedly
// without reparsing. It is safe for concurrent read-only use by multiple
// callers as long as no caller mutates it; Run itself allocates a fresh
// env per call so Programs may also be evaluated concurrently.
type Program struct {
	source  string
	clauses []clause
	is2D    bool
}

// Source returns the original expression string the Program was compiled
// from.
func (p *Program) Source() string { return p.source }

// Compile1D compiles an expression over the 1-D symbol table (v, alpha,
// beta, tau, inf).
func Compile1D(source string) (*Program, error) {
	return compile(source, false)
}

// Compile2D compiles an expression over the 2-D symbol table (v, c, alpha,
// beta, tau, inf).
func Compile2D(source string) (*Program, error) {
	return compile(source, true)
}

func compile(source string, is2D bool) (*Program, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, &MalformedExpression{Source: source, Pos: -1, Msg: "empty expression"}
	}
	body := stripMooseWrapper(trimmed)
	parts, err := splitTopLevel(body)
	if err != nil {
		return nil, &MalformedExpression{Source: source, Pos: -1, Msg: err.Error()}
	}

	names := names1D
	if is2D {
		names = names2D
	}

	p := &Program{source: source, is2D: is2D}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		assignTo, rhs := splitAssign(part, names)
		opts := append(builtinOpts(), expr.Env(env{}))
		prog, cerr := expr.Compile(rhs, opts...)
		if cerr != nil {
			return nil, &MalformedExpression{Source: source, Pos: -1, Msg: cerr.Error()}
		}
		c := clause{prog: prog}
		if assignTo != "" {
			c.assignTo = assignTo
		} else if i != len(parts)-1 {
			// a non-terminal clause with no assignment has no observable
			// effect; reject it the same way a malformed expression is
			// rejected rather than silently discarding work.
			return nil, &MalformedExpression{Source: source, Pos: -1, Msg: "intermediate clause must assign to a helper variable"}
		}
		p.clauses = append(p.clauses, c)
	}
	return p, nil
}

// Run1D evaluates the program for a single scalar input v. It is an error
// to call Run1D on a Program compiled with Compile2D.
func (p *Program) Run1D(v float64) (float64, error) {
	if p.is2D {
		return 0, fmt.Errorf("hhexpr: Run1D called on a 2-D program %q", p.source)
	}
	return p.run(v, 0)
}

// Run2D evaluates the program for the pair of scalar inputs (v, c). It is
// an error to call Run2D on a Program compiled with Compile1D.
func (p *Program) Run2D(v, c float64) (float64, error) {
	if !p.is2D {
		return 0, fmt.Errorf("hhexpr: Run2D called on a 1-D program %q", p.source)
	}
	return p.run(v, c)
}

func (p *Program) run(v, c float64) (float64, error) {
	e := env{V: v, C: c}
	var result float64
	for _, cl := range p.clauses {
		out, err := expr.Run(cl.prog, &e)
		if err != nil {
			return 0, fmt.Errorf("hhexpr: evaluating %q: %w", p.source, err)
		}
		val := toFloat(out)
		switch cl.assignTo {
		case "alpha":
			e.Alpha = val
		case "beta":
			e.Beta = val
		case "tau":
			e.Tau = val
		case "inf":
			e.Inf = val
		case "":
			result = val
		}
	}
	return result, nil
}

// stripMooseWrapper removes the conditional-assignment-sequence wrapper
// "~( ... )" that MOOSE-style rate laws use to signal a multi-clause
// expression; the comma-sequence semantics are identical with or without
// it, so it is purely cosmetic here.
func stripMooseWrapper(s string) string {
	if strings.HasPrefix(s, "~(") && strings.HasSuffix(s, ")") {
		return s[2 : len(s)-1]
	}
	if strings.HasPrefix(s, "~") {
		return s[1:]
	}
	return s
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	parts = append(parts, s[start:])
	return parts, nil
}

// splitAssign recognises a leading "name := rhs" clause for name in the
// writable helper set; any other clause is returned unchanged as the rhs.
func splitAssign(part string, names map[string]bool) (assignTo, rhs string) {
	idx := strings.Index(part, ":=")
	if idx < 0 {
		return "", part
	}
	lhs := strings.TrimSpace(part[:idx])
	if lhs == "alpha" || lhs == "beta" || lhs == "tau" || lhs == "inf" {
		return lhs, strings.TrimSpace(part[idx+2:])
	}
	return "", part
}
