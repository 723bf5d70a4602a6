// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import "errors"

// ErrNotOriginal is returned by any gate mutation method invoked through a
// channel that is not the gate's original owner. The gate's state is left
// unchanged; callers typically log this at warning level and move on.
var ErrNotOriginal = errors.New("gate: mutation attempted through a non-original channel")

// ErrShapeMismatch is returned when tableA and tableB have different
// lengths on a direct table assignment.
var ErrShapeMismatch = errors.New("gate: tableA and tableB lengths differ")

// ErrOutOfConfigRange is returned for divs < 1 at query time, min >= max,
// or other out-of-range configuration.
var ErrOutOfConfigRange = errors.New("gate: divs, min and max are out of the required range")

// ErrUninitialised is returned by Channel.Reinit when a slot has power > 0
// but no gate allocated. An allocated gate that has no usable tables is not
// reported with this error: its lookup fails with ErrOutOfConfigRange (or
// ErrShapeMismatch), and Reinit returns that error as it is.
var ErrUninitialised = errors.New("gate: channel requested reinit of a gate with no tables")
