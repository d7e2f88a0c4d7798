// Package keymap maps operator key presses to scoring commands. The
// defaults mirror the left-hand/right-hand split of the two team
// columns; individual bindings can be overridden from the config file.
package keymap

import (
	"fmt"
	"strings"
)

// Command is one operator action a key can trigger.
type Command string

const (
	CmdNone Command = ""

	CmdPointsA1 Command = "points_a_1"
	CmdPointsA2 Command = "points_a_2"
	CmdPointsA3 Command = "points_a_3"
	CmdPointsB1 Command = "points_b_1"
	CmdPointsB2 Command = "points_b_2"
	CmdPointsB3 Command = "points_b_3"

	CmdFoulA Command = "foul_a"
	CmdFoulB Command = "foul_b"

	CmdFreeThrowMadeA   Command = "ft_made_a"
	CmdFreeThrowMadeB   Command = "ft_made_b"
	CmdFreeThrowMissedA Command = "ft_missed_a"
	CmdFreeThrowMissedB Command = "ft_missed_b"

	CmdTimeoutA Command = "timeout_a"
	CmdTimeoutB Command = "timeout_b"

	CmdToggleClock Command = "toggle_clock"
	CmdUndo        Command = "undo"
	CmdCancel      Command = "cancel"

	// CmdSelectA1..5 / CmdSelectB1..5 pick the nth on-court player of a
	// team.
	CmdSelectA1 Command = "select_a_1"
	CmdSelectA2 Command = "select_a_2"
	CmdSelectA3 Command = "select_a_3"
	CmdSelectA4 Command = "select_a_4"
	CmdSelectA5 Command = "select_a_5"
	CmdSelectB1 Command = "select_b_1"
	CmdSelectB2 Command = "select_b_2"
	CmdSelectB3 Command = "select_b_3"
	CmdSelectB4 Command = "select_b_4"
	CmdSelectB5 Command = "select_b_5"
)

// SelectSlot decodes a court-slot selection command into its team side
// ("A" or "B") and zero-based slot. ok is false for other commands.
func SelectSlot(cmd Command) (side string, slot int, ok bool) {
	s := string(cmd)
	if !strings.HasPrefix(s, "select_") || len(s) != len("select_a_1") {
		return "", 0, false
	}
	side = strings.ToUpper(s[7:8])
	slot = int(s[9] - '1')
	if (side != "A" && side != "B") || slot < 0 || slot > 4 {
		return "", 0, false
	}
	return side, slot, true
}

// Keymap resolves key presses to commands.
type Keymap struct {
	bindings map[string]Command
}

// Default returns the standard bindings: the left hand drives team A
// (q/w/e points, r foul, t/y free throws), the right hand team B (a/s/d,
// f, g/h), digits 1-5 and 6-0 quick-select the on-court players.
func Default() *Keymap {
	return &Keymap{bindings: map[string]Command{
		"q": CmdPointsA1,
		"w": CmdPointsA2,
		"e": CmdPointsA3,
		"r": CmdFoulA,
		"t": CmdFreeThrowMadeA,
		"y": CmdFreeThrowMissedA,

		"a": CmdPointsB1,
		"s": CmdPointsB2,
		"d": CmdPointsB3,
		"f": CmdFoulB,
		"g": CmdFreeThrowMadeB,
		"h": CmdFreeThrowMissedB,

		"z": CmdTimeoutA,
		"x": CmdTimeoutB,

		" ":      CmdToggleClock,
		"space":  CmdToggleClock,
		"u":      CmdUndo,
		"esc":    CmdCancel,
		"escape": CmdCancel,

		"1": CmdSelectA1,
		"2": CmdSelectA2,
		"3": CmdSelectA3,
		"4": CmdSelectA4,
		"5": CmdSelectA5,
		"6": CmdSelectB1,
		"7": CmdSelectB2,
		"8": CmdSelectB3,
		"9": CmdSelectB4,
		"0": CmdSelectB5,
	}}
}

// Apply overlays config overrides onto the keymap. Each entry maps a
// command name to the key that should trigger it; the command's previous
// binding is removed.
func (k *Keymap) Apply(overrides map[string]string) error {
	for name, key := range overrides {
		cmd := Command(name)
		if !known(cmd) {
			return fmt.Errorf("unknown command in key overrides: %q", name)
		}
		key = normalize(key)
		if key == "" {
			return fmt.Errorf("empty key for command %q", name)
		}
		for existing, bound := range k.bindings {
			if bound == cmd {
				delete(k.bindings, existing)
			}
		}
		k.bindings[key] = cmd
	}
	return nil
}

// Resolve maps a key press to its command, or CmdNone.
func (k *Keymap) Resolve(key string) Command {
	return k.bindings[normalize(key)]
}

func normalize(key string) string {
	if key == " " {
		return " "
	}
	return strings.ToLower(strings.TrimSpace(key))
}

func known(cmd Command) bool {
	switch cmd {
	case CmdPointsA1, CmdPointsA2, CmdPointsA3,
		CmdPointsB1, CmdPointsB2, CmdPointsB3,
		CmdFoulA, CmdFoulB,
		CmdFreeThrowMadeA, CmdFreeThrowMadeB,
		CmdFreeThrowMissedA, CmdFreeThrowMissedB,
		CmdTimeoutA, CmdTimeoutB,
		CmdToggleClock, CmdUndo, CmdCancel,
		CmdSelectA1, CmdSelectA2, CmdSelectA3, CmdSelectA4, CmdSelectA5,
		CmdSelectB1, CmdSelectB2, CmdSelectB3, CmdSelectB4, CmdSelectB5:
		return true
	}
	return false
}
