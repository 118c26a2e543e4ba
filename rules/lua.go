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

package rules

import (
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
)

// parseLua compiles a rule's script into a reusable function prototype,
// checking only that it parses; the presence of `evaluate` is checked at
// call time, since gopher-lua has no static export-list concept.
func parseLua(script, ruleID string) (*lua.FunctionProto, error) {
	chunk, err := lua.Parse(strings.NewReader(script), ruleID)
	if err != nil {
		return nil, err
	}
	proto, err := lua.Compile(chunk, ruleID)
	if err != nil {
		return nil, err
	}
	return proto, nil
}

// runRule executes one compiled rule in a fresh Lua state (only the `table`
// library is opened), calls its `evaluate` function with `zones` (a table of
// zone-id -> text) and `screen_id` as arguments, and reads back whatever
// table it returns as a list of tips.
func runRule(r compiledRule, zoneValues map[string]string, screenID string) ([]Tip, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	L.Push(L.NewFunction(lua.OpenTable))
	L.Push(lua.LString(lua.TabLibName))
	L.Call(1, 0)

	fn := L.NewFunctionFromProto(r.proto)
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, vizerrors.Errorf(vizerrors.RuleRuntimeFailure, r.def.ID, err)
	}

	evalFn := L.GetGlobal("evaluate")
	if evalFn.Type() != lua.LTFunction {
		return nil, vizerrors.Errorf(vizerrors.RuleMissingEntrypoint, r.def.ID)
	}

	zonesTable := L.NewTable()
	for k, v := range zoneValues {
		zonesTable.RawSetString(k, lua.LString(v))
	}

	if err := L.CallByParam(lua.P{Fn: evalFn, NRet: 1, Protect: true}, zonesTable, lua.LString(screenID)); err != nil {
		return nil, vizerrors.Errorf(vizerrors.RuleRuntimeFailure, r.def.ID, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, nil
	}

	var tips []Tip
	table.ForEach(func(_, v lua.LValue) {
		t, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		tips = append(tips, tableToTip(r.def.ID, t))
	})

	return tips, nil
}

func tableToTip(ruleID string, t *lua.LTable) Tip {
	tip := Tip{ID: ruleID}

	if msg := t.RawGetString("message"); msg.Type() == lua.LTString {
		tip.Message = msg.String()
	}
	if pr := t.RawGetString("priority"); pr.Type() == lua.LTNumber {
		p := int(pr.(lua.LNumber))
		tip.Priority = clampPriority(p)
	}
	if dur := t.RawGetString("duration_ms"); dur.Type() == lua.LTNumber {
		tip.Duration = time.Duration(float64(dur.(lua.LNumber))) * time.Millisecond
	}
	if snd := t.RawGetString("sound"); snd.Type() == lua.LTBool {
		tip.Sound = bool(snd.(lua.LBool))
	}

	return tip
}

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
