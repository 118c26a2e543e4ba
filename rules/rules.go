// This file is part of Vizcaddy.
//
// Vizcaddy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vizcaddy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vizcaddy.  If not, see <https://www.gnu.org/licenses/>.

// Package rules evaluates a profile's scripted rules against the current
// zone text values and screen id, producing Tips. Rules are a thin scripted
// pass: a pure function from (zone values, screen id) to Tip[], implemented
// with embedded Lua rather than host-native code so game profiles can ship
// logic without recompiling the binary.
package rules

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
)

// Definition is one rule as persisted in a game profile.
type Definition struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Script  string `json:"script"`
}

// Tip is a short message the rule engine wants displayed.
type Tip struct {
	ID       string
	Message  string
	Priority int // 0-100
	Duration time.Duration
	Sound    bool
}

// Engine evaluates a fixed set of rules against per-call inputs. Each
// Definition's script is compiled once and re-run per Evaluate call with
// fresh globals, so scripts hold no state across frames.
type Engine struct {
	rules []compiledRule
}

type compiledRule struct {
	def   Definition
	proto *lua.FunctionProto
}

// New compiles every enabled rule's script. A script that fails to compile
// makes New return an error rather than being silently skipped, so a profile
// author finds the mistake immediately. Whether a script defines a top-level
// `evaluate(zones, screen_id)` function is not checked here; a rule without
// one fails when it runs and Evaluate skips it.
func New(defs []Definition) (*Engine, error) {
	e := &Engine{}
	for _, d := range defs {
		if !d.Enabled {
			continue
		}
		proto, err := compile(d)
		if err != nil {
			return nil, vizerrors.Errorf(vizerrors.RuleCompileFailure, d.ID, err)
		}
		e.rules = append(e.rules, compiledRule{def: d, proto: proto})
	}
	return e, nil
}

func compile(d Definition) (*lua.FunctionProto, error) {
	chunk, err := parseLua(d.Script, d.ID)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// Evaluate runs every rule's evaluate(zones, screen_id) function and
// collects every Tip any rule returns. A rule that errors at runtime is
// skipped for this call rather than aborting the whole pass, since one
// broken rule in a profile should not silence the rest.
func (e *Engine) Evaluate(zoneValues map[string]string, screenID string) []Tip {
	var tips []Tip
	for _, r := range e.rules {
		rtips, err := runRule(r, zoneValues, screenID)
		if err != nil {
			continue
		}
		tips = append(tips, rtips...)
	}
	return tips
}
