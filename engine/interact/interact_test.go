package interact

import (
	"testing"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.Game{Start: "edge", MaxEnergy: 100},
		Items: map[string]types.Item{
			"rope":  {ID: "rope", Name: "Coil of Rope", Takeable: true},
			"log":   {ID: "log", Name: "Rotting Log", Takeable: true},
			"key":   {ID: "key", Name: "Old Key", Takeable: true},
			"chest": {ID: "chest", Name: "Chest"},
			"gear":  {ID: "gear", Name: "Ancient Gear", Takeable: true},
			"lever": {ID: "lever", Name: "Rusty Lever", Takeable: true},
		},
		Locations: map[string]types.Location{
			"edge":  {ID: "edge", Name: "Chasm Edge", Items: []string{"chest"}},
			"vault": {ID: "vault", Name: "Vault"},
		},
		Interactions: []types.Interaction{
			{
				Item: "rope", Targets: []string{"log", "raft"}, Location: "edge",
				RequiresCarried: "log",
				Conflict:        "chasmBridged",
				ConflictMsg:     "The rope is already tied across the chasm.",
				Consumes:        []string{"rope", "log"},
				Sets:            []string{"raftBuilt"},
				Msg:             "You lash the log into a raft.",
			},
			{
				Item: "rope", Targets: []string{"chasm"}, Location: "edge",
				Guard: "chasmBridged", AlreadyMsg: "The bridge is already in place.",
				Conflict:    "raftBuilt",
				ConflictMsg: "You already used the rope for the raft.",
				Consumes:    []string{"rope"},
				Sets:        []string{"chasmBridged"},
				Msg:         "You rig a rope bridge across the chasm.",
			},
			{
				Item: "key", Targets: []string{"chest"}, Location: "edge",
				Guard:          "chestOpened",
				RequiresInRoom: "chest",
				MissingMsg:     "There is no chest here anymore.",
				Sets:           []string{"chestOpened"},
				Reveal:         &types.Exit{Direction: "north nook", To: "vault", Cost: -1},
				RevealAt:       "edge",
				Msg:            "The chest opens, revealing a hidden nook.",
			},
			{
				Item: "gear", Targets: []string{"mechanism"}, Location: "edge",
				Consumes:     []string{"gear"},
				Sets:         []string{"gearPlaced"},
				CombinesWith: []string{"leverPlaced"},
				Combined:     "mechanismActive",
				CombinedMsg:  "The mechanism grinds to life!",
				Msg:          "The gear clicks into place.",
			},
			{
				Item: "lever", Targets: []string{"mechanism"}, Location: "edge",
				Consumes:     []string{"lever"},
				Sets:         []string{"leverPlaced"},
				CombinesWith: []string{"gearPlaced"},
				Combined:     "mechanismActive",
				CombinedMsg:  "The mechanism grinds to life!",
				Msg:          "The lever seats with a clunk.",
			},
		},
	}
}

func carrying(defs *state.Defs, ids ...string) *types.State {
	s := state.NewState(defs)
	for _, id := range ids {
		state.AddItemToPlayer(s, id)
	}
	return s
}

func TestEvaluate_NoRuleMatches(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "rope")

	if _, _, matched := Evaluate(s, defs, "rope", "wall"); matched {
		t.Error("unrelated target matched a rule")
	}
	if _, _, matched := Evaluate(s, defs, "key", "wall"); matched {
		t.Error("unrelated item matched a rule")
	}
}

func TestEvaluate_WrongLocation(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "rope")
	state.Apply(s, state.Patch{Location: "vault"}, 0)

	if _, _, matched := Evaluate(s, defs, "rope", "chasm"); matched {
		t.Error("rule matched outside its location")
	}
}

func TestEvaluate_BasicSuccess(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "rope")

	msg, mt, matched := Evaluate(s, defs, "rope", "chasm")
	if !matched {
		t.Fatal("rule did not match")
	}
	if msg != "You rig a rope bridge across the chasm." {
		t.Errorf("msg = %q", msg)
	}
	if mt != types.MsgInfo {
		t.Errorf("type = %q, want info", mt)
	}
	if !state.GetFlag(s, "chasmBridged") {
		t.Error("flag not set")
	}
	if state.HasItem(s, "rope") {
		t.Error("rope not consumed")
	}
}

func TestEvaluate_TargetSubstringMatch(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "rope")

	if _, _, matched := Evaluate(s, defs, "rope", "the wide chasm"); !matched {
		t.Error("phrase containing the target word did not match")
	}
}

func TestEvaluate_GuardReturnsAlready(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "rope")
	state.SetFlag(s, "chasmBridged", true)

	msg, _, matched := Evaluate(s, defs, "rope", "chasm")
	if !matched || msg != "The bridge is already in place." {
		t.Errorf("guarded result = %q, matched=%v", msg, matched)
	}
}

func TestEvaluate_SilentGuardFallsThrough(t *testing.T) {
	defs := testDefs()
	// A guard with no already-message drops the rule entirely so the
	// caller can produce its generic refusal.
	defs.Interactions = append(defs.Interactions, types.Interaction{
		Item: "key", Targets: []string{"slot"}, Location: "edge",
		Guard: "keyUsed",
		Sets:  []string{"keyUsed"},
		Msg:   "The key fits the slot.",
	})
	s := carrying(defs, "key")
	state.SetFlag(s, "keyUsed", true)

	if _, _, matched := Evaluate(s, defs, "key", "slot"); matched {
		t.Error("silently guarded rule still claimed the input")
	}
}

func TestEvaluate_ConflictMessage(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "rope")
	state.SetFlag(s, "raftBuilt", true)

	msg, _, matched := Evaluate(s, defs, "rope", "chasm")
	if !matched || msg != "You already used the rope for the raft." {
		t.Errorf("conflict result = %q, matched=%v", msg, matched)
	}
	if state.GetFlag(s, "chasmBridged") {
		t.Error("foreclosed rule still applied")
	}
	if !state.HasItem(s, "rope") {
		t.Error("foreclosed rule consumed the rope")
	}
}

func TestEvaluate_RequiresCarried(t *testing.T) {
	defs := testDefs()

	// Without the log the raft rule is skipped and "log" matches nothing.
	s := carrying(defs, "rope")
	if _, _, matched := Evaluate(s, defs, "rope", "log"); matched {
		t.Error("rule matched without its required companion item")
	}

	s = carrying(defs, "rope", "log")
	msg, _, matched := Evaluate(s, defs, "rope", "log")
	if !matched || msg != "You lash the log into a raft." {
		t.Fatalf("raft result = %q, matched=%v", msg, matched)
	}
	if state.HasItem(s, "rope") || state.HasItem(s, "log") {
		t.Error("components not consumed")
	}
}

func TestEvaluate_RequiresInRoom(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "key")
	state.RemoveItemFromLocation(s, "chest", "edge")

	msg, mt, matched := Evaluate(s, defs, "key", "chest")
	if !matched || msg != "There is no chest here anymore." {
		t.Fatalf("missing-item result = %q, matched=%v", msg, matched)
	}
	if mt != types.MsgError {
		t.Errorf("type = %q, want error", mt)
	}
	if state.GetFlag(s, "chestOpened") {
		t.Error("rule applied despite missing room item")
	}
}

func TestEvaluate_RevealExit(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "key")

	if _, _, matched := Evaluate(s, defs, "key", "chest"); !matched {
		t.Fatal("chest rule did not match")
	}
	exit, ok := state.FindExit(s, defs, "edge", "north nook")
	if !ok {
		t.Fatal("revealed exit not found")
	}
	if exit.To != "vault" {
		t.Errorf("revealed exit leads to %q, want vault", exit.To)
	}
}

func TestEvaluate_CombinedActivation(t *testing.T) {
	defs := testDefs()
	s := carrying(defs, "gear", "lever")

	msg, _, _ := Evaluate(s, defs, "gear", "mechanism")
	if msg != "The gear clicks into place." {
		t.Errorf("first part msg = %q", msg)
	}
	if state.GetFlag(s, "mechanismActive") {
		t.Fatal("mechanism active after a single part")
	}

	msg, _, _ = Evaluate(s, defs, "lever", "mechanism")
	if msg != "The mechanism grinds to life!" {
		t.Errorf("final part msg = %q", msg)
	}
	if !state.GetFlag(s, "mechanismActive") {
		t.Fatal("combined flag not set")
	}
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	defs := testDefs()
	// "rope on raft log" matches the raft rule first because it appears
	// earlier in the table.
	s := carrying(defs, "rope", "log")

	msg, _, _ := Evaluate(s, defs, "rope", "raft")
	if msg != "You lash the log into a raft." {
		t.Errorf("msg = %q, want the earlier rule's message", msg)
	}
}
