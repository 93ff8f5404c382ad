package automaton

import (
	"fmt"

	"github.com/hiking90/ongeul/internal/layout"
)

// Automaton is the shared contract both the TwoSet and ThreeSet dialects
// implement. The engine holds exactly one, chosen by the layout's type at
// load time.
type Automaton interface {
	// Process feeds one jamo rune (already resolved via the layout's
	// keymap) into the automaton.
	Process(ch rune, l *layout.Layout) Outcome
	// Backspace undoes the automaton's last state transition.
	Backspace() Outcome
	// Flush commits whatever is currently buffered.
	Flush() Outcome
	// ComposingText returns the current pre-edit rendering, if any.
	ComposingText() (string, bool)
	// State returns the current buffer state, for tests and diagnostics.
	State() State
}

// New constructs the automaton variant matching the layout's declared type.
func New(l *layout.Layout) (Automaton, error) {
	switch l.Type {
	case layout.TypeJamo:
		return NewTwoSet(), nil
	case layout.TypeJaso:
		return NewThreeSet(l.AutoReorder), nil
	default:
		return nil, fmt.Errorf("unknown layout type %q", l.Type)
	}
}
