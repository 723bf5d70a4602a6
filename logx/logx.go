// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package logx is a thin wrapper over the standard log package, in the same
bare log.Println/log.Printf style the rest of this codebase's lineage
uses for non-fatal warnings (see e.g. leabra's network and layer
packages). It adds exactly one thing the gating core's hot path needs
that the stdlib doesn't: a per-site "log once" guard, since the same
degrade-and-warn path (a reinit refused for a near-zero B, an instant gate
clamped for B = 0) can otherwise fire every simulated tick and flood the
log.
*/
package logx

import (
	"fmt"
	"log"
	"sync"
)

var (
	onceMu   sync.Mutex
	warned   = map[string]bool{}
	disabled bool
)

// Warnf logs a warning every time it is called, in the conventional
// log.Printf style.
func Warnf(format string, args ...interface{}) {
	if disabled {
		return
	}
	log.Printf("warning: "+format, args...)
}

// WarnOnce logs a warning the first time it is called for a given key,
// and silently drops every subsequent call with the same key. Used on
// per-tick degrade paths where repeating the message would just be
// noise.
func WarnOnce(key, format string, args ...interface{}) {
	if disabled {
		return
	}
	onceMu.Lock()
	already := warned[key]
	warned[key] = true
	onceMu.Unlock()
	if already {
		return
	}
	log.Printf("warning: "+fmt.Sprintf(format, args...))
}

// SetDisabled turns logging on or off; tests use this to keep expected
// warning paths quiet.
func SetDisabled(d bool) { disabled = d }
