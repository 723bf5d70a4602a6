// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import "math"

// healSweep replaces NaN, Inf, and near-zero (< singularityEps in
// magnitude) entries in place by linear extrapolation from the nearest
// two valid neighbours, preferring one neighbour on each side. If every
// entry is invalid the array is left untouched -- there is nothing to
// extrapolate from.
func healSweep(arr []float64) {
	n := len(arr)
	valid := make([]bool, n)
	anyValid := false
	for i, v := range arr {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) >= singularityEps {
			valid[i] = true
			anyValid = true
		}
	}
	if !anyValid {
		return
	}
	for i := range arr {
		if valid[i] {
			continue
		}
		lo, hi, ok := nearestValidPair(valid, i)
		if !ok {
			arr[i] = arr[onlyValidIndex(valid)]
			continue
		}
		if lo == hi {
			arr[i] = arr[lo]
			continue
		}
		t := float64(i-lo) / float64(hi-lo)
		arr[i] = arr[lo] + (arr[hi]-arr[lo])*t
	}
}

// nearestValidPair finds two valid indices to extrapolate/interpolate
// position i from: the nearest valid index below i and the nearest valid
// index above i, when both exist. If only one side has valid entries, the
// two nearest valid entries on that side are used instead.
func nearestValidPair(valid []bool, i int) (lo, hi int, ok bool) {
	below, above := -1, -1
	for j := i - 1; j >= 0; j-- {
		if valid[j] {
			below = j
			break
		}
	}
	for j := i + 1; j < len(valid); j++ {
		if valid[j] {
			above = j
			break
		}
	}
	switch {
	case below >= 0 && above >= 0:
		return below, above, true
	case above >= 0:
		above2 := -1
		for j := above + 1; j < len(valid); j++ {
			if valid[j] {
				above2 = j
				break
			}
		}
		if above2 >= 0 {
			return above, above2, true
		}
		return above, above, true
	case below >= 0:
		below2 := -1
		for j := below - 1; j >= 0; j-- {
			if valid[j] {
				below2 = j
				break
			}
		}
		if below2 >= 0 {
			return below2, below, true
		}
		return below, below, true
	default:
		return 0, 0, false
	}
}

func onlyValidIndex(valid []bool) int {
	for i, v := range valid {
		if v {
			return i
		}
	}
	return 0
}

// sampleTable evaluates a table at v using the standard clamp-then-
// interpolate rule, regardless of the owning gate's UseInterpolation
// setting -- used when resampling onto a new grid, which always
// interpolates to avoid aliasing the old grid's step function.
func sampleTable(arr []float64, min, max float64, divs int, v float64) float64 {
	if v <= min {
		return arr[0]
	}
	if v >= max {
		return arr[divs]
	}
	invDx := float64(divs) / (max - min)
	i := int(math.Floor((v - min) * invDx))
	if i >= divs {
		i = divs - 1
	}
	if i < 0 {
		i = 0
	}
	frac := (v - min - float64(i)/invDx) * invDx
	return arr[i]*(1-frac) + arr[i+1]*frac
}

// resample re-grids an old table onto a new [min,max]/divs grid by linear
// interpolation of the old table.
func resample(old []float64, oldMin, oldMax float64, oldDivs int, newMin, newMax float64, newDivs int) []float64 {
	out := make([]float64, newDivs+1)
	dv := (newMax - newMin) / float64(newDivs)
	for i := 0; i <= newDivs; i++ {
		v := newMin + float64(i)*dv
		out[i] = sampleTable(old, oldMin, oldMax, oldDivs, v)
	}
	return out
}
