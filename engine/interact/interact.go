// Package interact evaluates the declarative use-interaction table.
// Each puzzle ("use rope on chasm", "use key on chest") is one data
// rule with a precondition, an idempotency guard, effects, and a
// success message, checked in source order — new puzzles are added as
// content, not as new conditional branches.
package interact

import (
	"strings"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// Evaluate runs the interaction table for "use <item> on <target>".
// It returns the response, its category, and whether any rule claimed
// the input. State changes are committed through the mutator.
func Evaluate(s *types.State, defs *state.Defs, itemID, target string) (string, types.MessageType, bool) {
	lower := strings.ToLower(target)

	for _, rule := range defs.Interactions {
		if rule.Item != itemID || rule.Location != s.Player.Location {
			continue
		}
		if !targetMatches(lower, rule.Targets) {
			continue
		}
		if rule.RequiresCarried != "" && !state.HasItem(s, rule.RequiresCarried) {
			continue
		}

		if rule.Guard != "" && state.GetFlag(s, rule.Guard) {
			if rule.AlreadyMsg == "" {
				continue // silently fall through to generic use
			}
			return rule.AlreadyMsg, types.MsgInfo, true
		}
		if rule.Conflict != "" && state.GetFlag(s, rule.Conflict) {
			return rule.ConflictMsg, types.MsgInfo, true
		}
		if rule.RequiresInRoom != "" && !state.ItemInRoom(s, rule.RequiresInRoom, s.Player.Location) {
			return rule.MissingMsg, types.MsgError, true
		}

		return apply(s, rule), types.MsgInfo, true
	}

	return "", "", false
}

// apply consumes the rule's items, sets its flags (including the
// combined activation when the other components are already in place),
// reveals any exit, and returns the success message.
func apply(s *types.State, rule types.Interaction) string {
	for _, id := range rule.Consumes {
		state.RemoveItemFromPlayer(s, id)
	}

	flags := map[string]bool{}
	for _, f := range rule.Sets {
		flags[f] = true
	}

	msg := rule.Msg
	if rule.Combined != "" && allSet(s, rule.CombinesWith) {
		flags[rule.Combined] = true
		msg = rule.CombinedMsg
	}
	state.Apply(s, state.Patch{Flags: flags}, 0)

	if rule.Reveal != nil {
		state.RevealExit(s, rule.RevealAt, *rule.Reveal)
	}
	return msg
}

func targetMatches(target string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(target, sub) {
			return true
		}
	}
	return false
}

func allSet(s *types.State, flags []string) bool {
	for _, f := range flags {
		if !state.GetFlag(s, f) {
			return false
		}
	}
	return true
}
