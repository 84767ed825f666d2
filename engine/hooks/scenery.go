package hooks

import (
	"strings"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// sceneryRule handles `look <target>` for named scenery that is not an
// item or feature — state-dependent phrasing for the chest, the chasm,
// the river, and the antechamber mechanism. A small, intentionally
// special-cased set.
type sceneryRule struct {
	substr    string
	locations []string
	text      func(s *types.State) string
}

var sceneryRules = []sceneryRule{
	{
		substr:    "chest",
		locations: []string{"locked_door_room"},
		text: func(s *types.State) string {
			if state.GetFlag(s, "chestUnlocked") {
				return "The old chest is open and empty, revealing a passage behind it."
			}
			return "A sturdy, locked old wooden chest. It looks like it needs a key."
		},
	},
	{
		substr:    "chasm",
		locations: []string{"chasm_edge"},
		text: func(s *types.State) string {
			if state.GetFlag(s, "chasmBridged") {
				return "The chasm is now spanned by your rope bridge."
			}
			if state.GetFlag(s, "raftBuilt") {
				return "The chasm remains. You used your rope for the raft."
			}
			return "A wide, deep chasm. It's too far to jump across."
		},
	},
	{
		substr:    "river",
		locations: []string{"underground_river_access", "far_river_bank"},
		text: func(s *types.State) string {
			if state.GetFlag(s, "raftBuilt") {
				return "The river flows swiftly. Your raft is nearby."
			}
			return "A wide, dark river flows swiftly. It looks too dangerous to swim."
		},
	},
	{
		substr:    "mechanism",
		locations: []string{"sunstone_antechamber"},
		text: func(s *types.State) string {
			status := "It's a complex stone mechanism. "
			if state.GetFlag(s, "antechamberMechanismActivated") {
				return status + "It's active and the door north is open!"
			}
			var parts []string
			if state.GetFlag(s, "gearPlacedInMechanism") {
				parts = append(parts, "a gear is in place")
			} else {
				parts = append(parts, "a slot for a gear is visible")
			}
			if state.GetFlag(s, "leverPlacedInMechanism") {
				parts = append(parts, "a lever is inserted")
			} else {
				parts = append(parts, "a socket for a lever is visible")
			}
			if state.GetFlag(s, "crystalKeyPlacedInNiche") {
				parts = append(parts, "a crystal key glows in a niche")
			} else {
				parts = append(parts, "a crystal-lined niche looks empty")
			}
			return status + strings.Join(parts, ", ") + "."
		},
	},
}

// Scenery returns state-dependent text for a looked-at scenery noun in
// the given location, or ok=false when no rule applies.
func Scenery(target, locID string, s *types.State) (string, bool) {
	lower := strings.ToLower(target)
	for _, rule := range sceneryRules {
		if !strings.Contains(lower, rule.substr) {
			continue
		}
		for _, loc := range rule.locations {
			if loc == locID {
				return rule.text(s), true
			}
		}
	}
	return "", false
}
