// internal/keyboard/keyboard.go
//
// Aggregated per-letter feedback for the on-screen keyboard.
//
// Each of the 26 letter keys carries the best feedback seen so far. Live
// updates honor the priority Correct > Misplaced > Incorrect > Default, so a
// key never regresses during play. Restore is the resume path and writes
// states verbatim.
//
// Serialized form: "A:default,B:incorrect,...,Z:correct" (A..Z order).

package keyboard

import (
	"strings"
	"unicode"
)

// State is the feedback classification of a single key.
type State string

const (
	Default   State = "default"
	Correct   State = "correct"
	Misplaced State = "misplaced"
	Incorrect State = "incorrect"
	Disabled  State = "disabled"
)

// priority orders live updates; Disabled is display-only and never wins.
func (s State) priority() int {
	switch s {
	case Correct:
		return 3
	case Misplaced:
		return 2
	case Incorrect:
		return 1
	default:
		return 0
	}
}

// ParseState maps a serialized state name to a State.
// Unknown names fall back to Default.
func ParseState(s string) State {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case Correct:
		return Correct
	case Misplaced:
		return Misplaced
	case Incorrect:
		return Incorrect
	case Disabled:
		return Disabled
	default:
		return Default
	}
}

type key struct {
	state        State
	interactable bool
}

// Aggregator tracks feedback for the letters A–Z.
// It is not safe for concurrent use; the owning session serializes access.
type Aggregator struct {
	keys [26]key
}

// New returns an aggregator with every key Default and interactable.
func New() *Aggregator {
	a := &Aggregator{}
	a.Reset()
	return a
}

// index maps a letter of either case to 0..25, or -1.
func index(letter rune) int {
	l := unicode.ToUpper(letter)
	if l < 'A' || l > 'Z' {
		return -1
	}
	return int(l - 'A')
}

// Update records an observed state for letter. Observations ranked below the
// key's current state are ignored; Correct always applies.
func (a *Aggregator) Update(letter rune, observed State) {
	i := index(letter)
	if i < 0 {
		return
	}
	if observed.priority() < a.keys[i].state.priority() {
		return
	}
	if observed == Disabled {
		return
	}
	a.keys[i].state = observed
}

// Reset sets every key to Default and makes it interactable.
func (a *Aggregator) Reset() {
	for i := range a.keys {
		a.keys[i] = key{state: Default, interactable: true}
	}
}

// State returns the stored feedback for letter.
func (a *Aggregator) State(letter rune) State {
	i := index(letter)
	if i < 0 {
		return Default
	}
	return a.keys[i].state
}

// Query reports whether letter is currently in state s.
func (a *Aggregator) Query(letter rune, s State) bool {
	i := index(letter)
	return i >= 0 && a.keys[i].state == s
}

// SetInteractable enables or disables a key without touching its feedback.
func (a *Aggregator) SetInteractable(letter rune, on bool) {
	if i := index(letter); i >= 0 {
		a.keys[i].interactable = on
	}
}

// Display is what the presentation layer shows for letter: Disabled for a
// key that cannot be pressed, its feedback otherwise.
func (a *Aggregator) Display(letter rune) State {
	i := index(letter)
	if i < 0 {
		return Default
	}
	if !a.keys[i].interactable {
		return Disabled
	}
	return a.keys[i].state
}

// Serialize encodes every key, Default included, so pre-marked keys survive
// a save/restore cycle.
func (a *Aggregator) Serialize() string {
	var b strings.Builder
	for i, k := range a.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(byte('A' + i))
		b.WriteByte(':')
		b.WriteString(string(k.state))
	}
	return b.String()
}

// Restore overwrites key states from a Serialize string, bypassing the
// priority check. Malformed pairs are skipped; letters not mentioned keep
// their current state.
func (a *Aggregator) Restore(serialized string) {
	if serialized == "" {
		return
	}
	for _, pair := range strings.Split(serialized, ",") {
		letter, state, ok := strings.Cut(pair, ":")
		letter = strings.TrimSpace(letter)
		if !ok || len(letter) == 0 {
			continue
		}
		i := index(rune(letter[0]))
		if i < 0 {
			continue
		}
		a.keys[i].state = ParseState(state)
	}
}
