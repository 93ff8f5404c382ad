// Package automaton implements the Hangul composition state machine: the
// TwoSet (두벌식) and ThreeSet (세벌식) dialects share a compose buffer and
// a common Automaton contract.
package automaton

import "github.com/hiking90/ongeul/internal/hangul"

// State names the six positions a compose buffer can occupy.
type State int

const (
	// Empty: no jamo buffered.
	Empty State = iota
	// Choseong: only an initial consonant is buffered.
	Choseong
	// Jungseong: a vowel is buffered (initial optional).
	Jungseong
	// Jungseong2: the buffered vowel is a cluster (ㅘ, ㅙ, ...).
	Jungseong2
	// Jongseong: initial, vowel and a single final are all buffered.
	Jongseong
	// Jongseong2: the buffered final is a cluster (ㄳ, ㄵ, ...).
	Jongseong2
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Choseong:
		return "Choseong"
	case Jungseong:
		return "Jungseong"
	case Jungseong2:
		return "Jungseong2"
	case Jongseong:
		return "Jongseong"
	case Jongseong2:
		return "Jongseong2"
	default:
		return "Unknown"
	}
}

// Buffer is the small mutable (L?, V?, T?) triple plus its state tag that
// both automaton variants assemble syllables into.
type Buffer struct {
	Choseong  *uint32
	Jungseong *uint32
	Jongseong *uint32
	State     State
}

// NewBuffer returns an empty compose buffer.
func NewBuffer() *Buffer {
	return &Buffer{State: Empty}
}

// Reset clears all three slots and returns the buffer to Empty.
func (b *Buffer) Reset() {
	b.Choseong = nil
	b.Jungseong = nil
	b.Jongseong = nil
	b.State = Empty
}

// SetL sets the choseong slot.
func (b *Buffer) SetL(l uint32) { b.Choseong = &l }

// SetV sets the jungseong slot.
func (b *Buffer) SetV(v uint32) { b.Jungseong = &v }

// SetT sets the jongseong slot.
func (b *Buffer) SetT(t uint32) { b.Jongseong = &t }

// Render realizes the §3 visible-rendering rule: both L and V set yields
// the composed syllable (with T if present); only L yields its
// compatibility-jamo form; only V likewise; otherwise empty.
func (b *Buffer) Render() (string, bool) {
	switch {
	case b.Choseong != nil && b.Jungseong != nil:
		t := uint32(0)
		if b.Jongseong != nil {
			t = *b.Jongseong
		}
		ch, ok := hangul.Compose(*b.Choseong, *b.Jungseong, t)
		if !ok {
			return "", false
		}
		return string(ch), true
	case b.Choseong != nil:
		ch, ok := hangul.ChoseongToCompat(*b.Choseong)
		if !ok {
			return "", false
		}
		return string(ch), true
	case b.Jungseong != nil:
		ch, ok := hangul.JungseongToCompat(*b.Jungseong)
		if !ok {
			return "", false
		}
		return string(ch), true
	default:
		return "", false
	}
}

// Outcome is the uniform result of every automaton and engine operation:
// committed finalized text (if any), the current composing text (if any),
// and whether the call was handled by the automaton at all.
type Outcome struct {
	Committed *string
	Composing *string
	Handled   bool
}

func strPtr(s string) *string { return &s }

// Handled builds an Outcome with Handled=true from optional committed and
// composing text.
func Handled(committed, composing string, hasCommitted, hasComposing bool) Outcome {
	o := Outcome{Handled: true}
	if hasCommitted {
		o.Committed = strPtr(committed)
	}
	if hasComposing {
		o.Composing = strPtr(composing)
	}
	return o
}

// HandledCommit builds a Handled outcome that carries only committed text.
func HandledCommit(committed string) Outcome {
	return Outcome{Handled: true, Committed: strPtr(committed)}
}

// HandledComposing builds a Handled outcome that carries only composing
// text.
func HandledComposing(composing string) Outcome {
	return Outcome{Handled: true, Composing: strPtr(composing)}
}

// HandledBoth builds a Handled outcome carrying both committed and
// composing text.
func HandledBoth(committed, composing string) Outcome {
	return Outcome{Handled: true, Committed: strPtr(committed), Composing: strPtr(composing)}
}

// HandledEmpty builds a Handled outcome with neither committed nor
// composing text (e.g. a no-op flush on an empty buffer).
func HandledEmpty() Outcome {
	return Outcome{Handled: true}
}

// NotHandled signals the host to pass the raw key through unconsumed.
func NotHandled() Outcome {
	return Outcome{Handled: false}
}

// renderOutcome builds a Handled outcome from an optional committed string
// plus the buffer's current rendering.
func renderOutcome(b *Buffer, committed *string) Outcome {
	o := Outcome{Handled: true, Committed: committed}
	if text, ok := b.Render(); ok {
		o.Composing = strPtr(text)
	}
	return o
}
