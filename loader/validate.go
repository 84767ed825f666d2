package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/cavecore/engine/hooks"
	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity and
// consistency before the engine ever sees them.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if defs.Game.MaxEnergy <= 0 {
		ve.Errors = append(ve.Errors, "Game.max_energy must be positive")
	}

	if defs.Game.Start == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := defs.Locations[defs.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start location %q not found in defined locations", defs.Game.Start))
	}

	flags := map[string]bool{}
	for _, f := range defs.Game.Flags {
		flags[f] = true
	}

	for locID, loc := range defs.Locations {
		for _, exit := range loc.Exits {
			validateExit(locID, exit, defs, flags, ve)
		}
		for _, itemID := range loc.Items {
			if _, ok := defs.Items[itemID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q lists undefined item %q", locID, itemID))
			}
		}
		validateHook(locID, "on_enter", loc.OnEnter, hooks.EnterKinds, flags, ve)
		validateHook(locID, "on_command", loc.OnCommand, hooks.CommandKinds, flags, ve)
		validateHook(locID, "describe", loc.Describe, hooks.DescribeKinds, flags, ve)
	}

	for itemID, item := range defs.Items {
		if item.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q has no name", itemID))
		}
		if item.IsFood && item.Energy <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"food item %q must restore positive energy", itemID))
		}
		if item.Use != nil {
			requireFlag(flags, item.Use.Sets, fmt.Sprintf("item %q use.sets", itemID), ve)
		}
		requireFlag(flags, item.TakeFlag, fmt.Sprintf("item %q take_flag", itemID), ve)
		requireFlag(flags, item.HintFlag, fmt.Sprintf("item %q hint_flag", itemID), ve)
		requireFlag(flags, item.HideWhen, fmt.Sprintf("item %q hide_when", itemID), ve)
	}

	for i, rule := range defs.Interactions {
		where := fmt.Sprintf("interaction #%d", i+1)
		if _, ok := defs.Items[rule.Item]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s references undefined item %q", where, rule.Item))
		}
		if _, ok := defs.Locations[rule.Location]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s references undefined location %q", where, rule.Location))
		}
		for _, id := range append([]string{rule.RequiresCarried, rule.RequiresInRoom}, rule.Consumes...) {
			if id != "" {
				if _, ok := defs.Items[id]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"%s references undefined item %q", where, id))
				}
			}
		}
		for _, f := range rule.Sets {
			requireFlag(flags, f, where+" sets", ve)
		}
		for _, f := range rule.CombinesWith {
			requireFlag(flags, f, where+" combines_with", ve)
		}
		requireFlag(flags, rule.Guard, where+" guard", ve)
		requireFlag(flags, rule.Conflict, where+" conflict", ve)
		requireFlag(flags, rule.Combined, where+" combined", ve)
		if rule.Reveal != nil {
			if _, ok := defs.Locations[rule.Reveal.To]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s reveals an exit to undefined location %q", where, rule.Reveal.To))
			}
			if _, ok := defs.Locations[rule.RevealAt]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s reveals an exit at undefined location %q", where, rule.RevealAt))
			}
		}
	}

	for i, r := range defs.Rewrites {
		where := fmt.Sprintf("rewrite #%d", i+1)
		if _, ok := defs.Locations[r.Location]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s references undefined location %q", where, r.Location))
		}
		switch r.Mode {
		case "append", "set":
		case "replace":
			if r.Find == "" {
				ve.Errors = append(ve.Errors, where+` mode "replace" requires find`)
			}
		default:
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s has unknown mode %q", where, r.Mode))
		}
		requireFlag(flags, r.Flag, where+" flag", ve)
		for _, f := range r.NotFlags {
			requireFlag(flags, f, where+" not_flags", ve)
		}
	}

	for i, c := range defs.Conflicts {
		where := fmt.Sprintf("conflict #%d", i+1)
		requireFlag(flags, c.A, where+" a", ve)
		requireFlag(flags, c.B, where+" b", ve)
		if c.AMsg == "" || c.BMsg == "" {
			ve.Errors = append(ve.Errors, where+" must carry both messages")
		}
	}

	// Warnings: items never placed anywhere and never spawned may be
	// content mistakes.
	placed := map[string]bool{}
	for _, loc := range defs.Locations {
		for _, id := range loc.Items {
			placed[id] = true
		}
		if loc.OnCommand != nil {
			for _, v := range hookSpawns(loc.OnCommand) {
				placed[v] = true
			}
		}
	}
	for itemID := range defs.Items {
		if !placed[itemID] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"item %q is never placed in any location", itemID))
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateExit(locID string, exit types.Exit, defs *state.Defs, flags map[string]bool, ve *ValidationError) {
	if exit.Direction == "" {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"location %q has an exit without a direction", locID))
	}
	if _, ok := defs.Locations[exit.To]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"location %q exit %q points to undefined location %q", locID, exit.Direction, exit.To))
	}
	requireFlag(flags, exit.RequiredFlag,
		fmt.Sprintf("location %q exit %q requires", locID, exit.Direction), ve)
}

func validateHook(locID, field string, h *types.Hook, kinds map[string]bool, flags map[string]bool, ve *ValidationError) {
	if h == nil {
		return
	}
	if !kinds[h.Kind] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"location %q %s uses unknown hook kind %q", locID, field, h.Kind))
		return
	}
	// Flag params shared by every hook kind that uses them.
	for _, key := range []string{"flag", "warned_flag", "active_flag"} {
		if f, ok := h.Params[key].(string); ok {
			requireFlag(flags, f, fmt.Sprintf("location %q %s %s", locID, field, key), ve)
		}
	}
}

// requireFlag records an error when a referenced flag was not declared
// in Game.flags. Empty references are fine.
func requireFlag(flags map[string]bool, name, where string, ve *ValidationError) {
	if name == "" {
		return
	}
	if !flags[name] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"%s references undeclared flag %q", where, name))
	}
}

func hookSpawns(h *types.Hook) []string {
	raw, _ := h.Params["spawns"].([]any)
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	// A riddle's single reward spawns too.
	if s, ok := h.Params["reward"].(string); ok && s != "" {
		out = append(out, s)
	}
	return out
}
