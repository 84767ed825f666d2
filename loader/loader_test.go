package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeGame writes a set of .lua files into a temp game directory.
func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const minimalGame = `
Game {
	title = "Minimal Test Game",
	start = "hall",
	max_energy = 100,
	flags = {},
}
Location "hall" {
	name = "Great Hall",
	desc = "A grand hall.",
}
`

func TestLoad_MinimalGame(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": minimalGame})

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Game.Title != "Minimal Test Game" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
	if defs.Game.Start != "hall" {
		t.Errorf("Start = %q", defs.Game.Start)
	}
	hall, ok := defs.Locations["hall"]
	if !ok {
		t.Fatal("location 'hall' not found")
	}
	if hall.Desc != "A grand hall." {
		t.Errorf("hall desc = %q", hall.Desc)
	}
}

func TestLoad_FullGame(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": `
Game {
	title = "Full Test Game",
	start = "hall",
	max_energy = 100,
	intro = { "Welcome." },
	flags = { "torchLit", "chestOpened", "riddleSolved" },
}
`,
		"items.lua": `
Item "torch" {
	name = "Torch",
	desc = "A sturdy torch.",
	use = { sets = "torchLit", message = "Lit.", already = "Already lit." },
}
Item "key" { name = "Old Key" }
Item "chest" { name = "Chest", takeable = false, hide_when = "chestOpened" }
Item "coin" { name = "Gold Coin" }
`,
		"locations.lua": `
Location "hall" {
	name = "Great Hall",
	desc = "A vaulted hall.",
	items = { "torch", "key", "chest" },
	exits = {
		{ direction = "north", to = "cellar" },
	},
}
Location "cellar" {
	name = "Cellar",
	desc = "Low and damp.",
	exits = { { direction = "south", to = "hall" } },
	on_command = Hook("riddle", {
		answer = "echo",
		flag = "riddleSolved",
		reward = "coin",
		message = "Correct!",
		already = "Answered.",
	}),
}
Location "vault" { name = "Vault", desc = "Bare stone." }
`,
		"puzzles.lua": `
Interaction {
	item = "key",
	targets = { "chest" },
	location = "hall",
	guard = "chestOpened",
	sets = { "chestOpened" },
	reveal = { direction = "behind chest", to = "vault", cost = -1 },
	msg = "The chest opens.",
}
Rewrite {
	location = "hall",
	flag = "torchLit",
	text = "Shadows dance.",
}
`,
	})

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(defs.Locations) != 3 {
		t.Errorf("locations = %d, want 3", len(defs.Locations))
	}
	if len(defs.Items) != 4 {
		t.Errorf("items = %d, want 4", len(defs.Items))
	}

	cellar := defs.Locations["cellar"]
	if cellar.OnCommand == nil || cellar.OnCommand.Kind != "riddle" {
		t.Fatalf("cellar OnCommand = %+v", cellar.OnCommand)
	}

	if len(defs.Interactions) != 1 {
		t.Fatalf("interactions = %d, want 1", len(defs.Interactions))
	}
	rule := defs.Interactions[0]
	if rule.Reveal == nil || rule.Reveal.To != "vault" || rule.RevealAt != "hall" {
		t.Errorf("rule reveal = %+v at %q", rule.Reveal, rule.RevealAt)
	}

	if len(defs.Rewrites) != 1 || defs.Rewrites[0].Mode != "append" {
		t.Errorf("rewrites = %+v", defs.Rewrites)
	}
}

func TestLoad_GameLuaRunsFirst(t *testing.T) {
	// aaa.lua sorts before game.lua alphabetically but must still see
	// the constructors; definition order across files does not matter
	// because compilation happens after every file has run.
	dir := writeGame(t, map[string]string{
		"aaa.lua": `Location "hall" { name = "Hall", desc = "A hall." }`,
		"game.lua": `
Game { title = "Order Test", start = "hall", max_energy = 50, flags = {} }
`,
	})

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if defs.Game.MaxEnergy != 50 {
		t.Errorf("MaxEnergy = %d", defs.Game.MaxEnergy)
	}
}

func TestLoad_InvalidRefs_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `
Game { title = "Bad Refs", start = "hall", max_energy = 100, flags = {} }
Location "hall" {
	name = "Hall",
	desc = "A hall.",
	exits = { { direction = "north", to = "nowhere" } },
}
`})

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for invalid references")
	}
	if !strings.Contains(err.Error(), "undefined location") {
		t.Errorf("error = %q, expected 'undefined location'", err)
	}
}

func TestLoad_UndeclaredFlag_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `
Game { title = "Bad Flag", start = "hall", max_energy = 100, flags = {} }
Location "hall" {
	name = "Hall",
	desc = "A hall.",
	exits = { { direction = "north", to = "hall", requires = "mystery" } },
}
`})

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for undeclared flag")
	}
	if !strings.Contains(err.Error(), "undeclared flag") {
		t.Errorf("error = %q, expected 'undeclared flag'", err)
	}
}

func TestLoad_UnknownHookKind_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `
Game { title = "Bad Hook", start = "hall", max_energy = 100, flags = {} }
Location "hall" {
	name = "Hall",
	desc = "A hall.",
	on_enter = Hook("teleporter", {}),
}
`})

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown hook kind")
	}
	if !strings.Contains(err.Error(), "unknown hook kind") {
		t.Errorf("error = %q, expected 'unknown hook kind'", err)
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `Game { title = `})

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
}

func TestLoad_NoGameDef_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"locations.lua": `Location "hall" { name = "Hall", desc = "A hall." }`,
	})

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for missing Game{} definition")
	}
	if !strings.Contains(err.Error(), "no Game{}") {
		t.Errorf("error = %q, expected 'no Game{}'", err)
	}
}

func TestLoad_EmptyDir_Fails(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without .lua files")
	}
}

func TestLoad_MissingDir_Fails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_SandboxBlocksFileAccess(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `
if dofile ~= nil or loadfile ~= nil or load ~= nil then
	error("file access available inside the sandbox")
end
if os ~= nil or io ~= nil then
	error("os/io available inside the sandbox")
end
Game { title = "Sandboxed", start = "hall", max_energy = 100, flags = {} }
Location "hall" { name = "Hall", desc = "A hall." }
`})

	if _, err := Load(dir); err != nil {
		t.Fatalf("sandboxed game failed to load: %v", err)
	}
}

func TestLoad_SafeLibsAvailable(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `
local name = string.format("%s Hall", "Great")
local n = math.max(50, 100)
Game { title = "Libs", start = "hall", max_energy = n, flags = {} }
Location "hall" { name = name, desc = "A hall." }
`})

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if defs.Game.MaxEnergy != 100 {
		t.Errorf("MaxEnergy = %d", defs.Game.MaxEnergy)
	}
	if defs.Locations["hall"].Name != "Great Hall" {
		t.Errorf("Name = %q", defs.Locations["hall"].Name)
	}
}
