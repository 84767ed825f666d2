// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the CaveCore game engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/cavecore/engine"
	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro and the starting
// location, then loops: prompt → input → dispatch → output. It returns
// when input runs out, on /quit, or once the game has ended.
func (c *CLI) Run() {
	c.printMessages(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		wasTerminal := c.Engine.State.GameOver || c.Engine.State.GameWon
		c.printMessages(c.Engine.Process(input))

		if !wasTerminal && (c.Engine.State.GameWon || c.Engine.State.GameOver) {
			c.printLine("")
			c.printLine(engine.Banner(c.Defs.Game, c.Engine.State.GameWon))
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit   — Exit game",
		"  /help   — Show this help",
		"  /state  — Debug: dump current state",
		"",
		"Game commands:",
		"  look                  — Describe your surroundings",
		"  look <thing>          — Examine something more closely",
		"  go <direction>        — Move (costs energy)",
		"  take <item>           — Pick something up",
		"  drop <item>           — Put something down",
		"  use <item>            — Use an item",
		"  use <item> on <thing> — Use an item on something",
		"  eat <item>            — Eat food to regain energy",
		"  inventory (i)         — Check what you're carrying",
		"  again (g)             — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Location: %s", s.Player.Location))
	c.printSystem(fmt.Sprintf("Energy: %d/%d", s.Player.Energy, s.Player.MaxEnergy))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Player.Inventory))
	var set []string
	for name, v := range s.Flags {
		if v {
			set = append(set, name)
		}
	}
	sort.Strings(set)
	if len(set) > 0 {
		c.printSystem(fmt.Sprintf("Flags set: %v", set))
	}
}

func (c *CLI) printMessages(messages []types.Message) {
	for _, m := range messages {
		c.printLine(m.Text)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
