package engine

import (
	"testing"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/loader"
)

// loadCrystalCave loads the shipped content pack so full play sequences
// run against the real world data.
func loadCrystalCave(t *testing.T) *Engine {
	t.Helper()
	defs, err := loader.Load("../games/crystal-cave")
	if err != nil {
		t.Fatalf("loading crystal-cave: %v", err)
	}
	return New(defs)
}

func TestCrystalCave_BridgeRoute(t *testing.T) {
	e := loadCrystalCave(t)
	e.Start()

	wantLine(t, e.Process("take boots"),
		"You take the Sturdy Boots and put them on. They feel much better for cave exploration!")

	e.Process("go north") // dark passage
	wantLine(t, e.Process("go north"),
		"It's too dark to proceed north safely. You need a light source.")

	wantLine(t, e.Process("take torch"), "It's currently unlit. Try 'use torch'.")
	wantLine(t, e.Process("use torch"),
		"You strike the flint, and the torch head catches, casting a flickering light!")

	out := e.Process("go north") // chasm edge
	wantLine(t, out, "Edge of a Chasm")
	if e.State.Player.Energy != 90 {
		t.Fatalf("energy = %d, want 90 after two moves", e.State.Player.Energy)
	}

	e.Process("take rope")
	e.Process("go east") // alcove

	// The riddle answer works as a bare command and pays out once.
	wantLine(t, e.Process("map"),
		"With a soft click, a small stone panel slides open in the wall, revealing an old key!")
	wantLine(t, e.Process("map"), "You've already solved this riddle.")
	e.Process("take key")

	e.Process("go west") // chasm edge
	wantLine(t, e.Process("use rope on chasm"),
		"You skillfully use the rope to create a makeshift bridge across the chasm. The way north is now open!")
	if state.HasItem(e.State, "rope") {
		t.Fatal("rope not consumed by the bridge")
	}

	e.Process("go north") // chasm crossing
	e.Process("go north") // crystal chamber

	wantLine(t, e.Process("open box"),
		"You open the ornate box. Inside, resting on velvet, are a shimmering Crystal Key and a folded Journal Page!")
	e.Process("take crystal key")

	e.Process("go west") // locked door room
	out = e.Process("use old key on chest")
	wantLine(t, out, "The old key fits the lock! With a click, the chest opens.")
	if _, ok := state.FindExit(e.State, e.Defs, "locked_door_room", "north nook"); !ok {
		t.Fatal("chest did not reveal the treasure nook exit")
	}

	out = e.Process("go north nook")
	wantLine(t, out, "Hidden Treasure Nook")
	e.Process("take coins")
	if !state.HasItem(e.State, "gold_coins") {
		t.Fatal("gold coins not taken")
	}

	e.Process("go south") // locked door room
	e.Process("go east")  // crystal chamber

	wantLine(t, e.Process("use crystal key on wall"),
		"a hidden passage grinds open, revealing the entrance to the Ancient Catacombs!")

	e.Process("go north") // catacombs entry
	e.Process("go north") // catacombs passage

	e.Process("take fungus")
	before := e.State.Player.Energy
	wantLine(t, e.Process("eat fungus"), "(+15 energy)")
	if e.State.Player.Energy != before+15 {
		t.Fatalf("energy = %d, want %d after eating", e.State.Player.Energy, before+15)
	}

	e.Process("go west")  // junction
	e.Process("go north") // antechamber
	if e.State.Player.Location != "sunstone_antechamber" {
		t.Fatalf("location = %q, want sunstone_antechamber", e.State.Player.Location)
	}

	// Without the gear and lever the door stays sealed.
	wantLine(t, e.Process("go north"),
		"The massive stone door to the north is sealed. The mechanism in the room looks incomplete.")
	wantLine(t, e.Process("look mechanism"),
		"Mechanism: A large stone mechanism with a slot for a gear and a socket for a lever.")
}

func TestCrystalCave_RaftRouteForeclosesBridge(t *testing.T) {
	e := loadCrystalCave(t)
	e.Start()

	e.Process("take boots")
	e.Process("go north") // dark passage
	e.Process("take torch")
	e.Process("use torch")
	e.Process("go north") // chasm edge
	e.Process("take rope")

	out := e.Process("go west") // slippery passage
	wantLine(t, out, "Your sturdy boots provide excellent grip on the slippery surface.")
	if e.State.Player.Energy != 85 {
		t.Fatalf("energy = %d, want 85 (no slip penalty with boots)", e.State.Player.Energy)
	}

	e.Process("go down") // river access
	e.Process("take log")
	wantLine(t, e.Process("use rope on log"),
		"You use the rope to lash the rotting log together, creating a crude but serviceable raft! You can now try to 'cross river'.")
	if state.HasItem(e.State, "rope") || state.HasItem(e.State, "rotting_log") {
		t.Fatal("raft components not consumed")
	}

	out = e.Process("go cross river")
	wantLine(t, out, "Far River Bank")

	e.Process("go north") // ruined guardroom
	e.Process("take lever")
	e.Process("take gear")
	if !state.HasItem(e.State, "rusty_lever") || !state.HasItem(e.State, "ancient_gear") {
		t.Fatal("guardroom components not taken")
	}

	e.Process("go south")
	e.Process("go cross river")
	e.Process("go up")
	e.Process("go east") // chasm edge

	// One rope: having built the raft, the bridge is gone for good.
	wantLine(t, e.Process("go north"),
		"You used your rope to build the raft, so you can't build a bridge here.")
}

func TestCrystalCave_SlipPenaltyOnce(t *testing.T) {
	e := loadCrystalCave(t)
	e.Start()

	// No boots this time.
	e.Process("go north")
	e.Process("take torch")
	e.Process("use torch")
	e.Process("go north") // chasm edge, 90

	out := e.Process("go west") // slippery passage
	wantLine(t, out, "You stumble and slide, losing your footing! This is tiring without proper footwear (-10 energy).")
	if e.State.Player.Energy != 75 {
		t.Fatalf("energy = %d, want 75 (5 move + 10 slip)", e.State.Player.Energy)
	}

	e.Process("go east") // back, 70
	out = e.Process("go west")
	wantNoLine(t, out, "losing your footing")
	if e.State.Player.Energy != 65 {
		t.Fatalf("energy = %d, want 65 (slip penalty never repeats)", e.State.Player.Energy)
	}
}

func TestCrystalCave_WinOnSunstone(t *testing.T) {
	e := loadCrystalCave(t)
	e.Start()
	state.Apply(e.State, state.Patch{Location: "sunstone_sanctuary"}, 0)

	out := e.Process("take sunstone")
	wantLine(t, out,
		"You take the Sunstone! A wave of warmth and power washes over you. You have found the Sunstone! Congratulations, you have won!")
	if !e.State.GameWon || !e.State.GameOver {
		t.Fatal("win did not set both terminal flags")
	}

	wantLine(t, e.Process("look"), "You have already won! Start a new game to play again.")
}
