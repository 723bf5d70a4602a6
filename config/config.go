// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package config loads a channel model description from TOML, using
github.com/BurntSushi/toml the same way the teacher codebase's own go.mod
already pulls it in. It covers exactly the configuration surface spec.md
§6 names: per-gate min/max/divs/tableA/tableB/alphaExpr/betaExpr/
tauExpr/infExpr/alphaParms/useInterpolation, and per-channel
gBar/Ek/Xpower/Ypower/Zpower/instant/Xindex/Yindex/Zindex.
*/
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/emer/hhgate/v2/channel"
	"github.com/emer/hhgate/v2/gate"
)

// GateConfig describes one X/Y/Z gate slot. Exactly one of the supply
// forms (Table, AlphaBeta, TauInf, AlphaParms) should be set; Power == 0
// means the slot is absent. Min and Max have no applied default: toml
// leaves an omitted field at its Go zero value, and a slot with Power > 0
// left at Min == Max == 0 is rejected by Gate1D.SetRange's min < max
// invariant at Build time -- any active 1-D slot supplied through tables
// or expressions must set Min/Max explicitly in the TOML document. A slot
// supplied through AlphaParms takes its range from the last three of the
// 13 scalars and ignores Min/Max/Divs; 2-D slots have no range.
type GateConfig struct {
	Power int     `toml:"power"`
	Min   float64 `toml:"min"`
	Max   float64 `toml:"max"`
	Divs  int     `toml:"divs"`

	UseInterpolation bool `toml:"use_interpolation"`
	Instant          bool `toml:"instant"`

	TableA []float64 `toml:"table_a"`
	TableB []float64 `toml:"table_b"`

	AlphaExpr string `toml:"alpha_expr"`
	BetaExpr  string `toml:"beta_expr"`
	TauExpr   string `toml:"tau_expr"`
	InfExpr   string `toml:"inf_expr"`

	AlphaParms []float64 `toml:"alpha_parms"`

	// Index is the 2-D input-routing string (chanidx.VoltIndex etc.);
	// ignored for 1-D channels.
	Index string `toml:"index"`
}

// ChannelConfig describes one Channel: its maximal conductance and
// reversal potential, whether it is 2-D, and its X/Y/Z gate slots. GBar
// has no applied default either: an omitted gbar decodes to 0, which
// channel.New1D/New2D accept as-is -- a channel with no conductance,
// not an error, since GBar == 0 is itself a meaningful configuration
// (a channel temporarily wired in but contributing nothing).
type ChannelConfig struct {
	Name string  `toml:"name"`
	GBar float64 `toml:"gbar"`
	Ek   float64 `toml:"ek"`
	Is2D bool    `toml:"is_2d"`

	X GateConfig `toml:"x"`
	Y GateConfig `toml:"y"`
	Z GateConfig `toml:"z"`
}

// Model is the top-level TOML document: a named set of channels.
type Model struct {
	Channels []ChannelConfig `toml:"channel"`
}

// Load reads and parses a TOML model description from path.
func Load(path string) (*Model, error) {
	var m Model
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &m, nil
}

// Build constructs one channel.Channel per entry in the model.
func Build(m *Model) ([]*channel.Channel, error) {
	chs := make([]*channel.Channel, 0, len(m.Channels))
	for _, cc := range m.Channels {
		ch, err := buildChannel(cc)
		if err != nil {
			return nil, fmt.Errorf("config: channel %q: %w", cc.Name, err)
		}
		chs = append(chs, ch)
	}
	return chs, nil
}

func buildChannel(cc ChannelConfig) (*channel.Channel, error) {
	var ch *channel.Channel
	if cc.Is2D {
		ch = channel.New2D(cc.GBar, cc.Ek)
	} else {
		ch = channel.New1D(cc.GBar, cc.Ek)
	}
	slots := [3]struct {
		slot channel.Slot
		cfg  GateConfig
	}{
		{channel.SlotX, cc.X},
		{channel.SlotY, cc.Y},
		{channel.SlotZ, cc.Z},
	}
	for _, s := range slots {
		if s.cfg.Power == 0 {
			continue
		}
		if err := ch.SetPower(s.slot, s.cfg.Power); err != nil {
			return nil, err
		}
		ch.SetInstant(s.slot, s.cfg.Instant)
		if cc.Is2D && s.cfg.Index != "" {
			if err := ch.SetIndex(s.slot, s.cfg.Index); err != nil {
				return nil, err
			}
		}
		if err := applyGateConfig(ch, cc.Is2D, s.slot, s.cfg); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

func applyGateConfig(ch *channel.Channel, is2D bool, slot channel.Slot, cfg GateConfig) error {
	if is2D {
		g2, err := ch.Gate2D(slot)
		if err != nil {
			return err
		}
		switch {
		case cfg.AlphaExpr != "" && cfg.BetaExpr != "":
			return g2.SetAlphaBetaExpr(ch, cfg.AlphaExpr, cfg.BetaExpr)
		case cfg.TauExpr != "" && cfg.InfExpr != "":
			return g2.SetTauInfExpr(ch, cfg.TauExpr, cfg.InfExpr)
		}
		return nil
	}

	g1, err := ch.Gate1D(slot)
	if err != nil {
		return err
	}
	if err := g1.SetUseInterpolation(ch, cfg.UseInterpolation); err != nil {
		return err
	}
	switch {
	case len(cfg.AlphaParms) == 13:
		var parms [13]float64
		copy(parms[:], cfg.AlphaParms)
		return g1.SetAlphaParms(ch, parms)
	case len(cfg.TableA) > 0:
		if err := g1.SetRange(ch, cfg.Min, cfg.Max, cfg.Divs); err != nil {
			return err
		}
		return g1.SetTables(ch, cfg.TableA, cfg.TableB)
	case cfg.AlphaExpr != "" && cfg.BetaExpr != "":
		if err := g1.SetRange(ch, cfg.Min, cfg.Max, cfg.Divs); err != nil {
			return err
		}
		return g1.SetAlphaBetaExpr(ch, cfg.AlphaExpr, cfg.BetaExpr)
	case cfg.TauExpr != "" && cfg.InfExpr != "":
		if err := g1.SetRange(ch, cfg.Min, cfg.Max, cfg.Divs); err != nil {
			return err
		}
		return g1.SetTauInfExpr(ch, cfg.TauExpr, cfg.InfExpr)
	}
	return fmt.Errorf("gate slot %v: no recognised parameter supply in config", slot)
}
