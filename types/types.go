// Package types defines the shared data structures for the CaveCore engine.
// This package contains only type definitions — no logic, no methods.
package types

// MessageType classifies a log line for display styling only.
// It has no effect on game logic.
type MessageType string

const (
	MsgInfo      MessageType = "info"
	MsgError     MessageType = "error"
	MsgSuccess   MessageType = "success"
	MsgLocation  MessageType = "location"
	MsgNarration MessageType = "narration"
	MsgSystem    MessageType = "system"
	MsgItem      MessageType = "item"
	MsgEnergy    MessageType = "energy"
)

// Message is one line of the append-only session transcript.
type Message struct {
	Text string
	Type MessageType
}

// UseDef is an item's generic use behavior: optionally set a flag,
// with distinct messages for the first and repeated use.
type UseDef struct {
	Sets    string // flag set on use ("" = no state change)
	Message string
	Already string // shown instead when Sets is already true
}

// Item is an immutable item template. Placement is session state.
type Item struct {
	ID       string
	Name     string
	Desc     string // inventory view
	RoomDesc string // room view
	Takeable bool

	// Food attributes.
	IsFood bool
	Energy int // energy restored when eaten

	// Generic use behavior (nil for items with no standalone use).
	Use *UseDef

	// Take special cases.
	Win      bool   // taking this item wins the game
	TakeMsg  string // custom pickup confirmation (win/wearable items)
	TakeFlag string // one-time flag set on first pickup
	Hint     string // appended to pickup confirmation...
	HintFlag string // ...unless this flag is set

	// HideWhen names a flag that removes this item from room listings
	// (an opened chest stays in the room but is no longer shown).
	HideWhen string
}

// Exit is a directed, possibly gated connection between locations.
type Exit struct {
	Direction    string
	To           string
	Locked       bool
	LockedMsg    string
	RequiredFlag string
	NotMetMsg    string
	Cost         int // energy cost; content may override the default of 5
}

// Feature is static, non-collectible scenery within a location.
type Feature struct {
	ID           string
	Name         string
	Desc         string
	Interactable bool
}

// Hook is a reference to one of the closed set of location hook
// variants, selected by Kind and parameterized by content data.
type Hook struct {
	Kind   string
	Params map[string]any
}

// Location is the immutable definition of one place in the world.
// Exits revealed at runtime live in State.Revealed, not here.
type Location struct {
	ID       string
	Name     string
	Desc     string // static base description
	Items    []string
	Features []Feature
	Exits    []Exit

	OnEnter   *Hook // invoked before a move into this location commits
	OnCommand *Hook // may intercept any command before generic dispatch
	Describe  *Hook // rewrites the base description from current state
}

// Interaction is one declarative "use <item> on <target>" puzzle rule.
// Rules are evaluated in source order; the first match wins.
type Interaction struct {
	Item     string   // inventory item that triggers the rule
	Targets  []string // target phrase must contain one of these
	Location string

	Guard    string // flag meaning "already done" → AlreadyMsg
	Conflict string // flag that forecloses this rule → ConflictMsg

	RequiresCarried string // additional inventory item that must be held
	RequiresInRoom  string // item that must be present in the room

	Consumes []string // inventory items removed (not returned anywhere)
	Sets     []string // flags set

	// Combined activation: when all CombinesWith flags are already set,
	// Combined is set in the same call and CombinedMsg replaces Msg.
	CombinesWith []string
	Combined     string
	CombinedMsg  string

	// Reveal appends an exit to RevealAt's traversable set.
	Reveal   *Exit
	RevealAt string

	Msg         string
	AlreadyMsg  string
	ConflictMsg string
	MissingMsg  string // when RequiresInRoom is absent
}

// Rewrite is one conditional description substitution applied during
// a full location description.
type Rewrite struct {
	Location string
	Flag     string   // required flag
	NotFlags []string // flags that must all be unset

	// ItemPresent requires the item to be lying in the room.
	// ItemAbsent requires it gone from both the room and the inventory.
	ItemPresent string
	ItemAbsent  string

	Mode string // "append", "replace", or "set"
	Find string // substring replaced when Mode == "replace"
	Text string
}

// Conflict records two mutually exclusive progression flags (two
// alternate uses of one consumed resource) and the explanations shown
// when the player attempts the path whose flag was never set.
type Conflict struct {
	A, B string
	AMsg string // shown when A is required but B was chosen
	BMsg string // shown when B is required but A was chosen
}

// Game holds content-pack metadata and session constants.
type Game struct {
	Title     string
	Start     string
	MaxEnergy int
	Intro     []string
	Flags     []string // every progression flag the content may set

	// Terminal banners shown by the front ends once the game ends.
	// Empty means a generic banner.
	WinBanner  string
	LoseBanner string
}

// Player holds the player's runtime state.
type Player struct {
	Location  string
	Inventory []string
	Energy    int
	MaxEnergy int
}

// State is the complete mutable session state. It is created once at
// game start and mutated only through the state package's mutator.
type State struct {
	Player     Player
	Flags      map[string]bool
	WorldItems map[string][]string // location ID → item IDs present
	Revealed   map[string][]Exit   // runtime-revealed exits per location
	Messages   []Message
	GameOver   bool
	GameWon    bool
}
