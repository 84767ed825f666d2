// Package state holds the immutable world definitions, the mutable
// session state, and the mutator — the only path through which the
// session state changes.
package state

import "github.com/nathoo/cavecore/types"

// DefaultExitCost is the energy debited by an exit that does not
// declare its own cost.
const DefaultExitCost = 5

// Defs holds the immutable world definitions loaded from Lua.
type Defs struct {
	Game         types.Game
	Items        map[string]types.Item
	Locations    map[string]types.Location
	Interactions []types.Interaction
	Rewrites     []types.Rewrite
	Conflicts    []types.Conflict
}

// NewState creates a fresh session: empty inventory, full energy,
// world items seeded from each location's initial list, all flags
// false, player at the content pack's start location.
func NewState(defs *Defs) *types.State {
	worldItems := make(map[string][]string, len(defs.Locations))
	for id, loc := range defs.Locations {
		worldItems[id] = append([]string(nil), loc.Items...)
	}

	flags := make(map[string]bool, len(defs.Game.Flags))
	for _, f := range defs.Game.Flags {
		flags[f] = false
	}

	return &types.State{
		Player: types.Player{
			Location:  defs.Game.Start,
			Inventory: []string{},
			Energy:    defs.Game.MaxEnergy,
			MaxEnergy: defs.Game.MaxEnergy,
		},
		Flags:      flags,
		WorldItems: worldItems,
		Revealed:   map[string][]types.Exit{},
	}
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(s *types.State, name string) bool {
	return s.Flags[name]
}

// HasItem returns true if the player carries the given item.
func HasItem(s *types.State, itemID string) bool {
	for _, id := range s.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// ItemInRoom returns true if the item is currently placed in the
// given location.
func ItemInRoom(s *types.State, itemID, locID string) bool {
	for _, id := range s.WorldItems[locID] {
		if id == itemID {
			return true
		}
	}
	return false
}

// Exits returns the effective exit list for a location: the static
// definition plus any exits revealed during this session.
func Exits(s *types.State, defs *Defs, locID string) []types.Exit {
	loc, ok := defs.Locations[locID]
	if !ok {
		return nil
	}
	if revealed := s.Revealed[locID]; len(revealed) > 0 {
		exits := make([]types.Exit, 0, len(loc.Exits)+len(revealed))
		exits = append(exits, loc.Exits...)
		exits = append(exits, revealed...)
		return exits
	}
	return loc.Exits
}

// FindExit returns the exit in the given direction, if any.
func FindExit(s *types.State, defs *Defs, locID, direction string) (types.Exit, bool) {
	for _, exit := range Exits(s, defs, locID) {
		if exit.Direction == direction {
			return exit, true
		}
	}
	return types.Exit{}, false
}

// ExitCost returns the energy cost of an exit, applying the default
// when the content did not set one. A negative cost means free.
func ExitCost(exit types.Exit) int {
	if exit.Cost < 0 {
		return 0
	}
	if exit.Cost == 0 {
		return DefaultExitCost
	}
	return exit.Cost
}

// ExitOpen reports whether an exit is currently traversable, ignoring
// energy (which is a move-time check): not locked and, if flag-gated,
// the required flag is set.
func ExitOpen(s *types.State, exit types.Exit) bool {
	if exit.Locked {
		return false
	}
	return exit.RequiredFlag == "" || GetFlag(s, exit.RequiredFlag)
}

// ConflictMessage returns the mutual-exclusion explanation for a
// required flag whose alternative was chosen instead, and whether the
// flag is indeed foreclosed.
func ConflictMessage(s *types.State, defs *Defs, requiredFlag string) (string, bool) {
	for _, c := range defs.Conflicts {
		if requiredFlag == c.A && !GetFlag(s, c.A) && GetFlag(s, c.B) {
			return c.AMsg, true
		}
		if requiredFlag == c.B && !GetFlag(s, c.B) && GetFlag(s, c.A) {
			return c.BMsg, true
		}
	}
	return "", false
}
