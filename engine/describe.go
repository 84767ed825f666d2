package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/cavecore/engine/hooks"
	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// describeLocation emits the full description block for a location:
// name, rewritten description, visible items, features, and exits.
func (e *Engine) describeLocation(locID string) {
	loc, ok := e.Defs.Locations[locID]
	if !ok {
		e.emit(fmt.Sprintf("You are somewhere unknown (%s).", locID), types.MsgError)
		return
	}

	e.emit(loc.Name, types.MsgLocation)
	e.emit(e.describeText(loc), types.MsgNarration)

	// One message per item, so the TUI can style and wrap each on its
	// own line.
	for _, it := range e.visibleItems(locID) {
		if !strings.HasSuffix(it, ".") {
			it += "."
		}
		e.emit("You see: "+it, types.MsgItem)
	}

	for _, f := range loc.Features {
		e.emit(fmt.Sprintf("You notice: %s. (%s)", f.Name, f.Desc), types.MsgItem)
	}

	e.emit(e.exitLine(locID), types.MsgInfo)
}

// describeText runs the base description through the rewrite table and
// the location's describe hook.
func (e *Engine) describeText(loc types.Location) string {
	desc := loc.Desc
	for _, r := range e.Defs.Rewrites {
		if r.Location != loc.ID || !e.rewriteApplies(r, loc.ID) {
			continue
		}
		switch r.Mode {
		case "append":
			desc += " " + r.Text
		case "replace":
			desc = strings.Replace(desc, r.Find, r.Text, 1)
		case "set":
			desc = r.Text
		}
	}
	if loc.Describe != nil {
		desc = hooks.Describe(loc.Describe, desc, e.State)
	}
	return desc
}

func (e *Engine) rewriteApplies(r types.Rewrite, locID string) bool {
	if r.Flag != "" && !state.GetFlag(e.State, r.Flag) {
		return false
	}
	for _, f := range r.NotFlags {
		if state.GetFlag(e.State, f) {
			return false
		}
	}
	// Present means lying in the room; absent means gone entirely, not
	// just picked up.
	if r.ItemPresent != "" && !state.ItemInRoom(e.State, r.ItemPresent, locID) {
		return false
	}
	if r.ItemAbsent != "" &&
		(state.ItemInRoom(e.State, r.ItemAbsent, locID) || state.HasItem(e.State, r.ItemAbsent)) {
		return false
	}
	return true
}

// visibleItems lists the room's items for display, using the room
// description when one exists and skipping items hidden by a flag.
func (e *Engine) visibleItems(locID string) []string {
	var out []string
	for _, id := range e.State.WorldItems[locID] {
		item, ok := e.Defs.Items[id]
		if !ok {
			continue
		}
		if item.HideWhen != "" && state.GetFlag(e.State, item.HideWhen) {
			continue
		}
		if item.RoomDesc != "" {
			out = append(out, item.RoomDesc)
		} else {
			out = append(out, item.Name)
		}
	}
	return out
}

// exitLine lists exits the player could traverse right now, ignoring
// energy: locked and flag-gated exits stay hidden, exhaustion does not.
func (e *Engine) exitLine(locID string) string {
	var parts []string
	for _, exit := range state.Exits(e.State, e.Defs, locID) {
		if !state.ExitOpen(e.State, exit) {
			continue
		}
		name := exit.To
		if dest, ok := e.Defs.Locations[exit.To]; ok {
			name = dest.Name
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", exit.Direction, name))
	}
	if len(parts) == 0 {
		return "There are no obvious exits."
	}
	return "Obvious exits: " + strings.Join(parts, ", ")
}
