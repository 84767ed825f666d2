// Package engine implements the command interpreter: it tokenizes raw
// input, dispatches to a built-in or location-specific handler, and
// commits every state change through the mutator.
package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/cavecore/engine/hooks"
	"github.com/nathoo/cavecore/engine/interact"
	"github.com/nathoo/cavecore/engine/resolve"
	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// Engine holds the world definitions and the mutable session state.
type Engine struct {
	Defs  *state.Defs
	State *types.State
}

// New creates an engine with a fresh session for the given world.
func New(defs *state.Defs) *Engine {
	return &Engine{
		Defs:  defs,
		State: state.NewState(defs),
	}
}

// handler is one built-in command. Handlers return the response and
// its display category explicitly; an empty response logs nothing.
type handler func(e *Engine, args []string) (string, types.MessageType)

var builtins = map[string]handler{
	"go":        (*Engine).cmdGo,
	"look":      (*Engine).cmdLook,
	"take":      (*Engine).cmdTake,
	"drop":      (*Engine).cmdDrop,
	"inventory": (*Engine).cmdInventory,
	"use":       (*Engine).cmdUse,
	"eat":       (*Engine).cmdEat,
	"help":      (*Engine).cmdHelp,
}

// Start emits the intro, the starting energy note, and the initial
// location description. Call once, before the first Process.
func (e *Engine) Start() []types.Message {
	mark := len(e.State.Messages)

	for _, line := range e.Defs.Game.Intro {
		e.emit(line, types.MsgSystem)
	}
	e.emit(fmt.Sprintf("You start with %d energy. Moving consumes energy. Find food to replenish it!",
		e.Defs.Game.MaxEnergy), types.MsgEnergy)
	e.describeLocation(e.State.Player.Location)

	return e.State.Messages[mark:]
}

// Process interprets one line of player input. Messages are appended
// to the session transcript; the newly added ones are returned for the
// presentation layer.
func (e *Engine) Process(input string) []types.Message {
	mark := len(e.State.Messages)

	// Terminal states refuse all further input.
	if e.State.GameWon {
		e.emit("You have already won! Start a new game to play again.", types.MsgSuccess)
		return e.State.Messages[mark:]
	}
	if e.State.GameOver {
		e.emit("The game is over. Start a new game to try again.", types.MsgError)
		return e.State.Messages[mark:]
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	// Echo the raw input so the transcript shows exactly what was typed.
	e.emit("> "+input, types.MsgInfo)

	words := strings.Fields(trimmed)
	cmd := strings.ToLower(words[0])
	args := words[1:]

	wasOver := e.State.GameOver

	// A location's command hook owns any verb it handles, even one
	// colliding with a built-in.
	if loc, ok := e.Defs.Locations[e.State.Player.Location]; ok && loc.OnCommand != nil {
		if res := hooks.Command(loc.OnCommand, cmd, args, e.State); res.Handled {
			e.commitHook(res, loc.ID)
			e.checkCollapse(wasOver)
			return e.State.Messages[mark:]
		}
	}

	if cmd == "i" {
		cmd = "inventory"
	}

	if h, ok := builtins[cmd]; ok {
		msg, t := h(e, args)
		if msg != "" {
			e.emit(msg, t)
		}
	} else {
		e.emit(fmt.Sprintf("Unknown command: %q. Type 'help' for commands.", cmd), types.MsgError)
	}

	// Some handlers debit energy through hook results; re-derive the
	// collapse message here so no handler needs to remember it.
	e.checkCollapse(wasOver)
	return e.State.Messages[mark:]
}

// commitHook applies a hook result through the mutator and logs its
// message.
func (e *Engine) commitHook(res hooks.Result, locID string) {
	state.Apply(e.State, res.Patch, res.EnergyDelta)
	for _, id := range res.Spawns {
		state.AddItemToLocation(e.State, id, locID)
	}
	if res.Message != "" {
		e.emit(res.Message, res.Type)
	}
}

// checkCollapse announces exhaustion when a command drove energy to
// zero. The mutator has already derived gameOver.
func (e *Engine) checkCollapse(wasOver bool) {
	if !wasOver && e.State.GameOver && !e.State.GameWon {
		e.emit("You have collapsed from exhaustion... The darkness consumes you. GAME OVER.", types.MsgError)
	}
}

func (e *Engine) emit(text string, t types.MessageType) {
	state.AddMessage(e.State, text, t)
}

func (e *Engine) cmdGo(args []string) (string, types.MessageType) {
	direction := strings.ToLower(strings.Join(args, " "))
	if direction == "" {
		return "Go where?", types.MsgError
	}

	exit, ok := state.FindExit(e.State, e.Defs, e.State.Player.Location, direction)
	if !ok {
		return fmt.Sprintf("You can't go %s.", direction), types.MsgError
	}

	if exit.Locked {
		if exit.LockedMsg != "" {
			return exit.LockedMsg, types.MsgError
		}
		return "That way is locked.", types.MsgError
	}

	if exit.RequiredFlag != "" && !state.GetFlag(e.State, exit.RequiredFlag) {
		// The player may have spent the shared resource on the other
		// solution; explain the exclusion rather than restate the gate.
		if msg, foreclosed := state.ConflictMessage(e.State, e.Defs, exit.RequiredFlag); foreclosed {
			return msg, types.MsgError
		}
		if exit.NotMetMsg != "" {
			return exit.NotMetMsg, types.MsgError
		}
		return "You can't go that way yet.", types.MsgError
	}

	cost := state.ExitCost(exit)
	if cost > 0 && e.State.Player.Energy <= cost {
		return fmt.Sprintf("You are too exhausted to move %s. You need %d energy but only have %d. Find some food!",
			direction, cost, e.State.Player.Energy), types.MsgError
	}

	// The destination's enter hook runs against pre-move state and its
	// mutation commits immediately; the move and debit follow as one
	// mutator call.
	var narration string
	if dest, ok := e.Defs.Locations[exit.To]; ok && dest.OnEnter != nil {
		res := hooks.Enter(dest.OnEnter, e.State)
		state.Apply(e.State, res.Patch, res.EnergyDelta)
		narration = res.Message
	}

	state.Apply(e.State, state.Patch{Location: exit.To}, -cost)

	move := fmt.Sprintf("You go %s...", direction)
	if cost > 0 {
		move += fmt.Sprintf(" (-%d energy)", cost)
	}
	e.emit(move, types.MsgInfo)
	if narration != "" {
		e.emit(narration, types.MsgNarration)
	}

	e.describeLocation(e.State.Player.Location)
	return "", types.MsgInfo
}

func (e *Engine) cmdLook(args []string) (string, types.MessageType) {
	target := strings.TrimSpace(strings.Join(args, " "))
	lower := strings.ToLower(target)

	if target == "" || lower == "around" || lower == "room" {
		e.describeLocation(e.State.Player.Location)
		return "", types.MsgInfo
	}

	locID := e.State.Player.Location

	if item, ok := resolve.Item(target, e.State.Player.Inventory, e.Defs); ok {
		return fmt.Sprintf("%s: %s", item.Name, item.Desc), types.MsgInfo
	}
	if item, ok := resolve.Item(target, e.State.WorldItems[locID], e.Defs); ok {
		return fmt.Sprintf("%s: %s %s", item.Name, item.RoomDesc, item.Desc), types.MsgInfo
	}
	if loc, ok := e.Defs.Locations[locID]; ok {
		if feature, ok := resolve.Feature(target, loc.Features); ok {
			return fmt.Sprintf("%s: %s", feature.Name, feature.Desc), types.MsgInfo
		}
	}
	if text, ok := hooks.Scenery(target, locID, e.State); ok {
		return text, types.MsgInfo
	}

	return fmt.Sprintf("You don't see any %q here.", target), types.MsgError
}

func (e *Engine) cmdTake(args []string) (string, types.MessageType) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "Take what?", types.MsgError
	}

	locID := e.State.Player.Location
	item, ok := resolve.Item(name, e.State.WorldItems[locID], e.Defs)
	if !ok {
		return fmt.Sprintf("There is no %q here to take. Try being more specific or check spelling.", name), types.MsgError
	}
	if !item.Takeable {
		return fmt.Sprintf("You can't take the %s.", item.Name), types.MsgError
	}

	state.RemoveItemFromLocation(e.State, item.ID, locID)
	state.AddItemToPlayer(e.State, item.ID)

	// Win item: both terminal bits flip in the same mutation.
	if item.Win {
		state.Apply(e.State, state.Patch{GameWon: true, GameOver: true}, 0)
		return item.TakeMsg, types.MsgSuccess
	}

	// One-time wearable: custom message on first pickup only.
	if item.TakeFlag != "" && !state.GetFlag(e.State, item.TakeFlag) {
		state.SetFlag(e.State, item.TakeFlag, true)
		return item.TakeMsg, types.MsgInfo
	}

	msg := fmt.Sprintf("You take the %s.", item.Name)
	if item.Hint != "" && !state.GetFlag(e.State, item.HintFlag) {
		msg += " " + item.Hint
	}
	return msg, types.MsgInfo
}

func (e *Engine) cmdDrop(args []string) (string, types.MessageType) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "Drop what?", types.MsgError
	}

	item, ok := resolve.Item(name, e.State.Player.Inventory, e.Defs)
	if !ok {
		return fmt.Sprintf("You don't have a %q to drop. Check your inventory or spelling.", name), types.MsgError
	}

	state.RemoveItemFromPlayer(e.State, item.ID)
	state.AddItemToLocation(e.State, item.ID, e.State.Player.Location)
	return fmt.Sprintf("You drop the %s.", item.Name), types.MsgInfo
}

func (e *Engine) cmdInventory([]string) (string, types.MessageType) {
	inv := e.State.Player.Inventory
	if len(inv) == 0 {
		return "Your inventory is empty.", types.MsgInfo
	}
	names := make([]string, 0, len(inv))
	for _, id := range inv {
		if item, ok := e.Defs.Items[id]; ok {
			names = append(names, item.Name)
		} else {
			names = append(names, id)
		}
	}
	return "You are carrying: " + strings.Join(names, ", ") + ".", types.MsgInfo
}

func (e *Engine) cmdUse(args []string) (string, types.MessageType) {
	itemPhrase, targetPhrase := splitOnKeyword(args, "on")
	if itemPhrase == "" {
		return "Use what?", types.MsgError
	}

	item, ok := resolve.Item(itemPhrase, e.State.Player.Inventory, e.Defs)
	if !ok {
		return fmt.Sprintf("You don't have a %q in your inventory.", itemPhrase), types.MsgError
	}

	if targetPhrase != "" {
		if msg, t, matched := interact.Evaluate(e.State, e.Defs, item.ID, targetPhrase); matched {
			return msg, t
		}
	}

	if item.Use != nil {
		u := item.Use
		if u.Sets != "" && state.GetFlag(e.State, u.Sets) {
			return u.Already, types.MsgInfo
		}
		if u.Sets != "" {
			state.SetFlag(e.State, u.Sets, true)
		}
		return u.Message, types.MsgInfo
	}

	if targetPhrase != "" {
		return fmt.Sprintf("You can't use the %s on %q.", item.Name, targetPhrase), types.MsgError
	}
	return fmt.Sprintf("You can't use the %s like that here.", item.Name), types.MsgError
}

func (e *Engine) cmdEat(args []string) (string, types.MessageType) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "Eat what?", types.MsgError
	}

	item, ok := resolve.Item(name, e.State.Player.Inventory, e.Defs)
	if !ok {
		return fmt.Sprintf("You don't have %q to eat.", name), types.MsgError
	}
	if !item.IsFood || item.Energy <= 0 {
		return fmt.Sprintf("You can't eat the %s.", item.Name), types.MsgError
	}

	state.RemoveItemFromPlayer(e.State, item.ID)
	state.Apply(e.State, state.Patch{}, item.Energy)
	e.emit(fmt.Sprintf("You eat the %s. You feel somewhat revitalized. (+%d energy)",
		item.Name, item.Energy), types.MsgEnergy)
	return "", types.MsgInfo
}

func (e *Engine) cmdHelp([]string) (string, types.MessageType) {
	return strings.Join([]string{
		"Available commands:",
		"  GO [direction] - Move in a direction (e.g., 'go north').",
		"  LOOK - Describe your surroundings.",
		"  LOOK [object/item/feature] - Examine something more closely.",
		"  TAKE [item] - Pick up an item.",
		"  DROP [item] - Drop an item from your inventory.",
		"  USE [item] - Use an item (e.g., 'use torch').",
		"  USE [item] ON [target] - Use an item on something (e.g., 'use rope on chasm').",
		"  EAT [food item] - Consume a food item to regain energy.",
		"  INVENTORY / I - Check what you are carrying.",
		"  HELP - Show this help message.",
		"You might also try typing answers to riddles directly, or 'open box'.",
	}, "\n"), types.MsgInfo
}

// Banner returns the content pack's end-of-game banner, falling back
// to a generic one when the pack defines none. Front ends show it once,
// on the turn the game ends.
func Banner(game types.Game, won bool) string {
	if won {
		if game.WinBanner != "" {
			return game.WinBanner
		}
		return "CONGRATULATIONS! YOU HAVE WON THE GAME!"
	}
	if game.LoseBanner != "" {
		return game.LoseBanner
	}
	return "GAME OVER. Your quest ends here."
}

// splitOnKeyword splits the argument words on the first occurrence of
// the keyword (case-insensitive): words before form the first phrase,
// words after the second.
func splitOnKeyword(args []string, keyword string) (string, string) {
	for i, w := range args {
		if strings.EqualFold(w, keyword) {
			return strings.Join(args[:i], " "), strings.Join(args[i+1:], " ")
		}
	}
	return strings.Join(args, " "), ""
}
