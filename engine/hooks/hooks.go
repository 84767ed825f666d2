// Package hooks implements the closed set of location hook variants.
// Content packs reference a variant by kind and parameterize it with
// data; the logic itself lives here, auditable in one place, and is
// committed through the mutator by the engine. Hooks never mutate
// state directly: state in, patch + message out.
package hooks

import (
	"strings"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// Result is a hook's requested outcome. The engine applies the patch,
// energy delta, and spawns through the mutator, then logs the message.
type Result struct {
	Handled     bool // command hooks: the input was consumed
	Message     string
	Type        types.MessageType
	Patch       state.Patch
	EnergyDelta int
	Spawns      []string // item IDs added to the hook's location
}

// EnterKinds lists the recognized onEnter hook kinds.
var EnterKinds = map[string]bool{
	"flag_penalty": true,
	"item_penalty": true,
}

// CommandKinds lists the recognized onCommand hook kinds.
var CommandKinds = map[string]bool{
	"riddle":    true,
	"container": true,
}

// DescribeKinds lists the recognized describe hook kinds.
var DescribeKinds = map[string]bool{
	"assembly": true,
}

// Enter runs an onEnter hook against the pre-move state.
func Enter(h *types.Hook, s *types.State) Result {
	switch h.Kind {
	case "flag_penalty":
		// Entering without the named flag costs energy every time.
		if state.GetFlag(s, pstr(h, "flag")) {
			return Result{Message: pstr(h, "with"), Type: types.MsgNarration}
		}
		return Result{
			Message:     pstr(h, "without"),
			Type:        types.MsgNarration,
			EnergyDelta: -pint(h, "penalty"),
		}

	case "item_penalty":
		// One warning (and one stumble) for entering without the named
		// item; the warned flag keeps the penalty from repeating.
		if state.HasItem(s, pstr(h, "item")) {
			return Result{Message: pstr(h, "with"), Type: types.MsgNarration}
		}
		warned := pstr(h, "warned_flag")
		if state.GetFlag(s, warned) {
			return Result{}
		}
		return Result{
			Message:     pstr(h, "without"),
			Type:        types.MsgNarration,
			Patch:       state.Patch{Flags: map[string]bool{warned: true}},
			EnergyDelta: -pint(h, "penalty"),
		}
	}
	return Result{}
}

// Command runs an onCommand hook. A location owns any command its hook
// handles, even one colliding with a built-in; Handled=false falls
// through to generic dispatch.
func Command(h *types.Hook, cmd string, args []string, s *types.State) Result {
	switch h.Kind {
	case "riddle":
		// The solution word works as a bare command or as arguments to
		// any command ("map", "answer map").
		answer := strings.ToLower(pstr(h, "answer"))
		if cmd != answer && strings.ToLower(strings.Join(args, " ")) != answer {
			return Result{}
		}
		flag := pstr(h, "flag")
		if state.GetFlag(s, flag) {
			return Result{Handled: true, Message: pstr(h, "already"), Type: types.MsgSuccess}
		}
		return Result{
			Handled: true,
			Message: pstr(h, "message"),
			Type:    types.MsgSuccess,
			Patch:   state.Patch{Flags: map[string]bool{flag: true}},
			Spawns:  []string{pstr(h, "reward")},
		}

	case "container":
		if cmd != pstr(h, "verb") ||
			!strings.Contains(strings.ToLower(strings.Join(args, " ")), pstr(h, "target")) {
			return Result{}
		}
		flag := pstr(h, "flag")
		if state.GetFlag(s, flag) {
			return Result{Handled: true, Message: pstr(h, "already"), Type: types.MsgSuccess}
		}
		return Result{
			Handled: true,
			Message: pstr(h, "message"),
			Type:    types.MsgSuccess,
			Patch:   state.Patch{Flags: map[string]bool{flag: true}},
			Spawns:  pstrs(h, "spawns"),
		}
	}
	return Result{}
}

// Describe rewrites a location's base description from current state.
func Describe(h *types.Hook, base string, s *types.State) string {
	switch h.Kind {
	case "assembly":
		// A multi-part mechanism: the find text is replaced by the
		// activated phrasing, a progress summary, or left alone when
		// nothing has been placed yet.
		find := pstr(h, "find")
		if state.GetFlag(s, pstr(h, "active_flag")) {
			return strings.Replace(base, find, pstr(h, "active"), 1)
		}
		var placed []string
		for _, part := range pparts(h) {
			if state.GetFlag(s, part.flag) {
				placed = append(placed, part.text)
			}
		}
		if len(placed) == 0 {
			return base
		}
		status := pstr(h, "prefix") + strings.Join(placed, ", ") + pstr(h, "suffix")
		return strings.Replace(base, find, status, 1)
	}
	return base
}

type assemblyPart struct {
	flag string
	text string
}

func pparts(h *types.Hook) []assemblyPart {
	raw, _ := h.Params["parts"].([]any)
	parts := make([]assemblyPart, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			flag, _ := m["flag"].(string)
			text, _ := m["text"].(string)
			parts = append(parts, assemblyPart{flag: flag, text: text})
		}
	}
	return parts
}

func pstr(h *types.Hook, key string) string {
	v, _ := h.Params[key].(string)
	return v
}

func pint(h *types.Hook, key string) int {
	switch n := h.Params[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func pstrs(h *types.Hook, key string) []string {
	raw, _ := h.Params[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
