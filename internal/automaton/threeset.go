package automaton

import (
	"github.com/hiking90/ongeul/internal/hangul"
	"github.com/hiking90/ongeul/internal/layout"
)

// ThreeSet is the 세벌식 (three-set) automaton. Keys deliver *positional*
// jamo directly (choseong, jungseong or jongseong range), so the buffer
// role an incoming rune fills is known from the rune itself — unlike
// TwoSet, ThreeSet never steals a final into the next syllable's initial.
//
// When AutoReorder is enabled it additionally forgives two common
// mis-orderings: a vowel arriving before its initial, and an initial
// arriving before a vowel with a leading final (held in pendingJongseong
// until a vowel, another initial, or another final resolves it).
type ThreeSet struct {
	buffer      *Buffer
	AutoReorder bool

	prevChoseong  *uint32
	prevJungseong *uint32
	prevJongseong *uint32

	// pendingJongseong holds a final typed while the buffer has an initial
	// but no vowel yet; mutually exclusive with buffer.Jongseong and only
	// ever populated when AutoReorder is enabled.
	pendingJongseong *uint32
}

// NewThreeSet returns a fresh ThreeSet automaton.
func NewThreeSet(autoReorder bool) *ThreeSet {
	return &ThreeSet{buffer: NewBuffer(), AutoReorder: autoReorder}
}

type jasoClass int

const (
	jasoUnknown jasoClass = iota
	jasoChoseong
	jasoJungseong
	jasoJongseong
)

func classify(ch rune) (jasoClass, uint32) {
	if hangul.IsChoseong(ch) {
		idx, _ := hangul.ChoseongToIndex(ch)
		return jasoChoseong, idx
	}
	if hangul.IsJungseong(ch) {
		idx, _ := hangul.JungseongToIndex(ch)
		return jasoJungseong, idx
	}
	if hangul.IsJongseong(ch) {
		idx, _ := hangul.JongseongToIndex(ch)
		return jasoJongseong, idx
	}
	return jasoUnknown, 0
}

func (a *ThreeSet) commitCurrent() (string, bool) {
	text, ok := a.buffer.Render()
	a.buffer.Reset()
	a.prevChoseong = nil
	a.prevJungseong = nil
	a.prevJongseong = nil
	a.pendingJongseong = nil
	return text, ok
}

func appendCompatT(s string, t uint32) string {
	if ch, ok := hangul.JongseongToCompat(t); ok {
		return s + string(ch)
	}
	return s
}

// Process implements Automaton.
func (a *ThreeSet) Process(ch rune, l *layout.Layout) Outcome {
	class, idx := classify(ch)

	switch class {
	case jasoUnknown:
		if a.buffer.State != Empty || a.pendingJongseong != nil {
			pending := a.pendingJongseong
			a.pendingJongseong = nil
			committed, _ := a.commitCurrent()
			if pending != nil {
				committed = appendCompatT(committed, *pending)
			}
			return HandledCommit(committed)
		}
		return NotHandled()

	case jasoChoseong:
		return a.processChoseong(idx, l)

	case jasoJungseong:
		return a.processJungseong(idx, l)

	case jasoJongseong:
		return a.processJongseong(idx, l)
	}

	return NotHandled()
}

func (a *ThreeSet) processChoseong(lIdx uint32, l *layout.Layout) Outcome {
	// Auto-reorder: a pending final is abandoned once a new initial
	// arrives — both the buffered initial and the pending final commit as
	// plain text, then the new initial starts fresh.
	if a.pendingJongseong != nil {
		pending := *a.pendingJongseong
		a.pendingJongseong = nil
		committed, _ := a.commitCurrent()
		committed = appendCompatT(committed, pending)
		a.buffer.SetL(lIdx)
		a.buffer.State = Choseong
		return renderOutcome(a.buffer, &committed)
	}

	if currentL := a.buffer.Choseong; currentL != nil {
		if a.buffer.Jungseong != nil {
			// Syllable already in progress -> commit, start fresh.
			committed, hasCommit := a.commitCurrent()
			a.buffer.SetL(lIdx)
			a.buffer.State = Choseong
			return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
		}
		// Only an initial buffered -> try double-consonant combine.
		currentCh := hangul.ChoseongRune(*currentL)
		newCh := hangul.ChoseongRune(lIdx)
		if combined, ok := l.Combine(currentCh, newCh); ok {
			if combinedIdx, ok := hangul.ChoseongToIndex(combined); ok {
				saved := *currentL
				a.prevChoseong = &saved
				a.buffer.SetL(combinedIdx)
				return renderOutcome(a.buffer, nil)
			}
		}
		committed, hasCommit := a.commitCurrent()
		a.buffer.SetL(lIdx)
		a.buffer.State = Choseong
		return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
	}

	// No initial buffered yet.
	if a.AutoReorder && a.buffer.Jungseong != nil {
		// V-then-L fold-in: place the initial into the vowel-only buffer.
		a.buffer.SetL(lIdx)
		a.buffer.State = Jungseong
		return renderOutcome(a.buffer, nil)
	}
	if a.buffer.Jungseong != nil {
		// No auto-reorder: commit the lone vowel, start a fresh initial.
		committed, hasCommit := a.commitCurrent()
		a.buffer.SetL(lIdx)
		a.buffer.State = Choseong
		return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
	}
	a.buffer.SetL(lIdx)
	a.buffer.State = Choseong
	return renderOutcome(a.buffer, nil)
}

func (a *ThreeSet) processJungseong(vIdx uint32, l *layout.Layout) Outcome {
	if a.pendingJongseong != nil {
		// Auto-reorder resolution: initial + pending final + this vowel
		// assemble into a complete syllable.
		pending := *a.pendingJongseong
		a.pendingJongseong = nil
		a.buffer.SetV(vIdx)
		a.buffer.SetT(pending)
		a.buffer.State = Jongseong
		return renderOutcome(a.buffer, nil)
	}

	if currentV := a.buffer.Jungseong; currentV != nil {
		currentCh := hangul.JungseongRune(*currentV)
		newCh := hangul.JungseongRune(vIdx)
		if combined, ok := l.Combine(currentCh, newCh); ok {
			if combinedIdx, ok := hangul.JungseongToIndex(combined); ok {
				saved := *currentV
				a.prevJungseong = &saved
				a.buffer.SetV(combinedIdx)
				a.buffer.State = Jungseong2
				return renderOutcome(a.buffer, nil)
			}
		}
		committed, hasCommit := a.commitCurrent()
		a.buffer.SetV(vIdx)
		a.buffer.State = Jungseong
		return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
	}

	a.buffer.SetV(vIdx)
	a.buffer.State = Jungseong
	return renderOutcome(a.buffer, nil)
}

func (a *ThreeSet) processJongseong(tIdx uint32, l *layout.Layout) Outcome {
	// Auto-reorder: an initial with no vowel yet stashes the final instead
	// of committing it immediately.
	if a.AutoReorder && a.buffer.Choseong != nil && a.buffer.Jungseong == nil {
		if a.pendingJongseong != nil {
			pending := *a.pendingJongseong
			a.pendingJongseong = nil
			committed, _ := a.commitCurrent()
			committed = appendCompatT(committed, pending)
			committed = appendCompatT(committed, tIdx)
			return HandledCommit(committed)
		}
		saved := tIdx
		a.pendingJongseong = &saved
		return renderOutcome(a.buffer, nil)
	}

	if a.buffer.Choseong == nil || a.buffer.Jungseong == nil {
		var committed string
		if a.buffer.State != Empty {
			committed, _ = a.commitCurrent()
		}
		committed = appendCompatT(committed, tIdx)
		return HandledCommit(committed)
	}

	if currentT := a.buffer.Jongseong; currentT != nil {
		currentCh := hangul.JongseongRune(*currentT)
		newCh := hangul.JongseongRune(tIdx)
		if combined, ok := l.Combine(currentCh, newCh); ok {
			if combinedIdx, ok := hangul.JongseongToIndex(combined); ok {
				saved := *currentT
				a.prevJongseong = &saved
				a.buffer.SetT(combinedIdx)
				a.buffer.State = Jongseong2
				return renderOutcome(a.buffer, nil)
			}
		}
		committed, _ := a.commitCurrent()
		committed = appendCompatT(committed, tIdx)
		return HandledCommit(committed)
	}

	a.buffer.SetT(tIdx)
	a.buffer.State = Jongseong
	return renderOutcome(a.buffer, nil)
}

// Backspace implements Automaton.
func (a *ThreeSet) Backspace() Outcome {
	switch a.buffer.State {
	case Empty:
		if a.pendingJongseong != nil {
			a.pendingJongseong = nil
			return HandledEmpty()
		}
		return NotHandled()

	case Jongseong2:
		if a.prevJongseong != nil {
			a.buffer.Jongseong = a.prevJongseong
			a.prevJongseong = nil
			a.buffer.State = Jongseong
		}
		return renderOutcome(a.buffer, nil)

	case Jongseong:
		a.buffer.Jongseong = nil
		a.prevJongseong = nil
		switch {
		case a.prevJungseong != nil:
			a.buffer.State = Jungseong2
		case a.buffer.Jungseong != nil:
			a.buffer.State = Jungseong
		case a.buffer.Choseong != nil:
			a.buffer.State = Choseong
		default:
			a.buffer.State = Empty
		}
		return renderOutcome(a.buffer, nil)

	case Jungseong2:
		if a.prevJungseong != nil {
			a.buffer.Jungseong = a.prevJungseong
			a.prevJungseong = nil
			a.buffer.State = Jungseong
		}
		return renderOutcome(a.buffer, nil)

	case Jungseong:
		a.buffer.Jungseong = nil
		a.prevJungseong = nil
		if a.buffer.Choseong != nil {
			a.buffer.State = Choseong
		} else {
			a.buffer.State = Empty
		}
		return renderOutcome(a.buffer, nil)

	case Choseong:
		if a.pendingJongseong != nil {
			a.pendingJongseong = nil
			return renderOutcome(a.buffer, nil)
		}
		if a.prevChoseong != nil {
			a.buffer.Choseong = a.prevChoseong
			a.prevChoseong = nil
			return renderOutcome(a.buffer, nil)
		}
		a.buffer.Reset()
		a.prevChoseong = nil
		a.prevJungseong = nil
		a.prevJongseong = nil
		return HandledEmpty()
	}

	return NotHandled()
}

// Flush implements Automaton.
func (a *ThreeSet) Flush() Outcome {
	pending := a.pendingJongseong
	if a.buffer.State == Empty && pending == nil {
		return HandledEmpty()
	}
	a.pendingJongseong = nil
	committed, _ := a.commitCurrent()
	if pending != nil {
		committed = appendCompatT(committed, *pending)
	}
	return HandledCommit(committed)
}

// ComposingText implements Automaton.
func (a *ThreeSet) ComposingText() (string, bool) { return a.buffer.Render() }

// State implements Automaton.
func (a *ThreeSet) State() State { return a.buffer.State }
