// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns an array-style string list field, or nil if missing.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		// Otherwise treat as map.
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Items:     map[string]types.Item{},
		Locations: map[string]types.Location{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.items {
		defs.Items[raw.id] = compileItem(raw)
	}

	for _, raw := range coll.locations {
		loc, err := compileLocation(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling location %s: %w", raw.id, err)
		}
		defs.Locations[raw.id] = loc
	}

	for i, tbl := range coll.interactions {
		rule, err := compileInteraction(tbl)
		if err != nil {
			return nil, fmt.Errorf("compiling interaction #%d: %w", i+1, err)
		}
		defs.Interactions = append(defs.Interactions, rule)
	}

	for _, tbl := range coll.rewrites {
		defs.Rewrites = append(defs.Rewrites, compileRewrite(tbl))
	}

	for _, tbl := range coll.conflicts {
		defs.Conflicts = append(defs.Conflicts, types.Conflict{
			A:    getString(tbl, "a"),
			B:    getString(tbl, "b"),
			AMsg: getString(tbl, "a_msg"),
			BMsg: getString(tbl, "b_msg"),
		})
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.Game {
	return types.Game{
		Title:     getString(tbl, "title"),
		Start:     getString(tbl, "start"),
		MaxEnergy: getInt(tbl, "max_energy"),
		Intro:     getStrings(tbl, "intro"),
		Flags:     getStrings(tbl, "flags"),

		WinBanner:  getString(tbl, "win_banner"),
		LoseBanner: getString(tbl, "lose_banner"),
	}
}

func compileItem(raw rawDef) types.Item {
	tbl := raw.table
	item := types.Item{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Desc:     getString(tbl, "desc"),
		RoomDesc: getString(tbl, "room_desc"),
		Takeable: getBool(tbl, "takeable", true),
		IsFood:   getBool(tbl, "food", false),
		Energy:   getInt(tbl, "energy"),
		Win:      getBool(tbl, "win", false),
		TakeMsg:  getString(tbl, "take_msg"),
		TakeFlag: getString(tbl, "take_flag"),
		Hint:     getString(tbl, "hint"),
		HintFlag: getString(tbl, "hint_flag"),
		HideWhen: getString(tbl, "hide_when"),
	}
	if useTbl := getTable(tbl, "use"); useTbl != nil {
		item.Use = &types.UseDef{
			Sets:    getString(useTbl, "sets"),
			Message: getString(useTbl, "message"),
			Already: getString(useTbl, "already"),
		}
	}
	return item
}

func compileLocation(raw rawDef) (types.Location, error) {
	tbl := raw.table
	loc := types.Location{
		ID:    raw.id,
		Name:  getString(tbl, "name"),
		Desc:  getString(tbl, "desc"),
		Items: getStrings(tbl, "items"),
	}

	if featTbl := getTable(tbl, "features"); featTbl != nil {
		for i := 1; i <= featTbl.MaxN(); i++ {
			f, ok := featTbl.RawGetInt(i).(*lua.LTable)
			if !ok {
				continue
			}
			loc.Features = append(loc.Features, types.Feature{
				ID:           getString(f, "id"),
				Name:         getString(f, "name"),
				Desc:         getString(f, "desc"),
				Interactable: getBool(f, "interactable", false),
			})
		}
	}

	if exitsTbl := getTable(tbl, "exits"); exitsTbl != nil {
		for i := 1; i <= exitsTbl.MaxN(); i++ {
			e, ok := exitsTbl.RawGetInt(i).(*lua.LTable)
			if !ok {
				continue
			}
			loc.Exits = append(loc.Exits, compileExit(e))
		}
	}

	var err error
	if loc.OnEnter, err = compileHook(tbl, "on_enter"); err != nil {
		return loc, err
	}
	if loc.OnCommand, err = compileHook(tbl, "on_command"); err != nil {
		return loc, err
	}
	if loc.Describe, err = compileHook(tbl, "describe"); err != nil {
		return loc, err
	}
	return loc, nil
}

func compileExit(tbl *lua.LTable) types.Exit {
	return types.Exit{
		Direction:    getString(tbl, "direction"),
		To:           getString(tbl, "to"),
		Locked:       getBool(tbl, "locked", false),
		LockedMsg:    getString(tbl, "locked_msg"),
		RequiredFlag: getString(tbl, "requires"),
		NotMetMsg:    getString(tbl, "not_met_msg"),
		Cost:         getInt(tbl, "cost"),
	}
}

// compileHook resolves a Hook(...) marker table into a Hook reference.
// A missing field compiles to nil; a non-marker table is an error.
func compileHook(tbl *lua.LTable, key string) (*types.Hook, error) {
	marker := getTable(tbl, key)
	if marker == nil {
		return nil, nil
	}
	kind := getString(marker, "__hook_kind")
	if kind == "" {
		return nil, fmt.Errorf("%s must be a Hook(kind, params) value", key)
	}
	params := map[string]any{}
	if p := getTable(marker, "__hook_params"); p != nil {
		p.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				params[string(ks)] = toGoValue(v)
			}
		})
	}
	return &types.Hook{Kind: kind, Params: params}, nil
}

func compileInteraction(tbl *lua.LTable) (types.Interaction, error) {
	rule := types.Interaction{
		Item:            getString(tbl, "item"),
		Targets:         getStrings(tbl, "targets"),
		Location:        getString(tbl, "location"),
		Guard:           getString(tbl, "guard"),
		Conflict:        getString(tbl, "conflict"),
		RequiresCarried: getString(tbl, "requires_carried"),
		RequiresInRoom:  getString(tbl, "requires_in_room"),
		Consumes:        getStrings(tbl, "consumes"),
		Sets:            getStrings(tbl, "sets"),
		CombinesWith:    getStrings(tbl, "combines_with"),
		Combined:        getString(tbl, "combined"),
		CombinedMsg:     getString(tbl, "combined_msg"),
		RevealAt:        getString(tbl, "reveal_at"),
		Msg:             getString(tbl, "msg"),
		AlreadyMsg:      getString(tbl, "already_msg"),
		ConflictMsg:     getString(tbl, "conflict_msg"),
		MissingMsg:      getString(tbl, "missing_msg"),
	}
	if rule.Item == "" || rule.Location == "" || len(rule.Targets) == 0 {
		return rule, fmt.Errorf("item, location, and targets are required")
	}
	if revealTbl := getTable(tbl, "reveal"); revealTbl != nil {
		exit := compileExit(revealTbl)
		rule.Reveal = &exit
		if rule.RevealAt == "" {
			rule.RevealAt = rule.Location
		}
	}
	return rule, nil
}

func compileRewrite(tbl *lua.LTable) types.Rewrite {
	r := types.Rewrite{
		Location:    getString(tbl, "location"),
		Flag:        getString(tbl, "flag"),
		NotFlags:    getStrings(tbl, "not_flags"),
		ItemPresent: getString(tbl, "item_present"),
		ItemAbsent:  getString(tbl, "item_absent"),
		Mode:        getString(tbl, "mode"),
		Find:        getString(tbl, "find"),
		Text:        getString(tbl, "text"),
	}
	if r.Mode == "" {
		r.Mode = "append"
	}
	return r
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
