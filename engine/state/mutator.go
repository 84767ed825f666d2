package state

import "github.com/nathoo/cavecore/types"

// Patch is a partial state update. Zero-valued fields are left alone;
// Flags entries are merged into the flag set. GameOver and GameWon are
// set-only: a patch can end or win the game but never un-end it.
type Patch struct {
	Location string
	Flags    map[string]bool
	GameOver bool
	GameWon  bool
}

// Apply merges a patch into the session state, then applies energyDelta
// on top of the patched player energy, clamped to [0, maxEnergy].
// After clamping, if energy has reached zero and the game is neither
// over nor won, gameOver is derived unconditionally — callers never
// need to check it themselves. Apply cannot fail; inputs are trusted.
func Apply(s *types.State, p Patch, energyDelta int) {
	if p.Location != "" {
		s.Player.Location = p.Location
	}
	for name, v := range p.Flags {
		s.Flags[name] = v
	}
	if p.GameWon {
		s.GameWon = true
	}
	if p.GameOver {
		s.GameOver = true
	}

	if energyDelta != 0 {
		s.Player.Energy += energyDelta
	}
	if s.Player.Energy < 0 {
		s.Player.Energy = 0
	}
	if s.Player.Energy > s.Player.MaxEnergy {
		s.Player.Energy = s.Player.MaxEnergy
	}

	if s.Player.Energy == 0 && !s.GameOver && !s.GameWon {
		s.GameOver = true
		s.GameWon = false
	}
}

// SetFlag sets a single flag through the mutator.
func SetFlag(s *types.State, name string, value bool) {
	Apply(s, Patch{Flags: map[string]bool{name: value}}, 0)
}

// AddItemToPlayer appends an item to the player's inventory.
// Callers guarantee the item is not already held.
func AddItemToPlayer(s *types.State, itemID string) {
	s.Player.Inventory = append(append([]string(nil), s.Player.Inventory...), itemID)
}

// RemoveItemFromPlayer removes an item from the player's inventory.
// Removing an item the player does not hold is a no-op.
func RemoveItemFromPlayer(s *types.State, itemID string) {
	s.Player.Inventory = removed(s.Player.Inventory, itemID)
}

// AddItemToLocation places an item into a location's item list.
func AddItemToLocation(s *types.State, itemID, locID string) {
	s.WorldItems[locID] = append(append([]string(nil), s.WorldItems[locID]...), itemID)
}

// RemoveItemFromLocation takes an item out of a location's item list.
func RemoveItemFromLocation(s *types.State, itemID, locID string) {
	s.WorldItems[locID] = removed(s.WorldItems[locID], itemID)
}

// RevealExit adds a runtime-revealed exit to a location. The static
// location definition stays immutable; revealed exits are session
// state merged in by Exits.
func RevealExit(s *types.State, locID string, exit types.Exit) {
	for _, e := range s.Revealed[locID] {
		if e.Direction == exit.Direction && e.To == exit.To {
			return
		}
	}
	s.Revealed[locID] = append(s.Revealed[locID], exit)
}

// AddMessage appends one line to the session transcript.
func AddMessage(s *types.State, text string, t types.MessageType) {
	s.Messages = append(s.Messages, types.Message{Text: text, Type: t})
}

// removed returns a copy of the slice without the first occurrence of
// the given value. Never mutates the input.
func removed(list []string, value string) []string {
	out := make([]string, 0, len(list))
	skipped := false
	for _, v := range list {
		if v == value && !skipped {
			skipped = true
			continue
		}
		out = append(out, v)
	}
	return out
}
