package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals. Every
// constructor only collects its table; compilation happens after all
// files have run.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Item "id" { ... } — curried: Item("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Location "id" { ... } — curried.
	L.SetGlobal("Location", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.locations = append(coll.locations, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Hook("kind", { params }) — returns a marker table consumed by a
	// location's on_enter / on_command / describe field.
	L.SetGlobal("Hook", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		params := L.OptTable(2, L.NewTable())
		marker := L.NewTable()
		marker.RawSetString("__hook_kind", lua.LString(kind))
		marker.RawSetString("__hook_params", params)
		L.Push(marker)
		return 1
	}))

	// Interaction { item = "...", targets = {...}, ... } — rules keep
	// their source order; the first match wins at runtime.
	L.SetGlobal("Interaction", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.interactions = append(coll.interactions, tbl)
		return 0
	}))

	// Rewrite { location = "...", mode = "append", ... }
	L.SetGlobal("Rewrite", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.rewrites = append(coll.rewrites, tbl)
		return 0
	}))

	// Conflict { a = "...", b = "...", a_msg = "...", b_msg = "..." }
	L.SetGlobal("Conflict", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.conflicts = append(coll.conflicts, tbl)
		return 0
	}))
}
