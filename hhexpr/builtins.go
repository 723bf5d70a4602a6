// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hhexpr

import (
	"math"
	"math/rand"

	"github.com/expr-lang/expr"
)

// toFloat coerces an expr argument (int or float64, expr's two numeric
// kinds) to float64.
func toFloat(a interface{}) float64 {
	switch x := a.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	default:
		return 0
	}
}

// builtinOpts returns the expr.Option set shared by every compiled
// expression: natural log and exp, fmod, three arities of uniform random
// number, and the pi/e constants. exp is included alongside the spec's
// minimum built-in list because every canonical HH rate law needs it.
func builtinOpts() []expr.Option {
	return []expr.Option{
		expr.Function("ln", func(params ...interface{}) (interface{}, error) {
			return math.Log(toFloat(params[0])), nil
		}, new(func(float64) float64)),
		expr.Function("exp", func(params ...interface{}) (interface{}, error) {
			return math.Exp(toFloat(params[0])), nil
		}, new(func(float64) float64)),
		expr.Function("fmod", func(params ...interface{}) (interface{}, error) {
			return math.Mod(toFloat(params[0]), toFloat(params[1])), nil
		}, new(func(float64, float64) float64)),
		expr.Function("rand", func(params ...interface{}) (interface{}, error) {
			switch len(params) {
			case 0:
				return rand.Float64(), nil
			case 1:
				src := rand.New(rand.NewSource(int64(toFloat(params[0]))))
				return src.Float64(), nil
			default:
				lo, hi := toFloat(params[0]), toFloat(params[1])
				return lo + rand.Float64()*(hi-lo), nil
			}
		}, new(func() float64), new(func(float64) float64), new(func(float64, float64) float64)),
		expr.Function("pow", func(params ...interface{}) (interface{}, error) {
			return math.Pow(toFloat(params[0]), toFloat(params[1])), nil
		}, new(func(float64, float64) float64)),
		expr.Const("PI", math.Pi),
		expr.Const("E", math.E),
	}
}
