package automaton

import (
	"github.com/hiking90/ongeul/internal/hangul"
	"github.com/hiking90/ongeul/internal/layout"
)

// TwoSet is the 두벌식 (two-set) automaton. Keys deliver compatibility
// jamo; the same consonant key serves both the initial and final role, so
// the buffer's state decides which one an incoming consonant means.
//
// Six-state transitions: Empty -> Choseong -> Jungseong -> Jungseong2 ->
// Jongseong -> Jongseong2. The defining trick is the "steal": when a vowel
// arrives while a final consonant is buffered, that final is removed and
// reborn as the initial of the next syllable.
type TwoSet struct {
	buffer *Buffer

	// prevJungseong restores the pre-cluster vowel on backspace out of
	// Jungseong2.
	prevJungseong *uint32
	// prevJongseong restores the pre-cluster final on backspace out of
	// Jongseong2.
	prevJongseong *uint32
}

// NewTwoSet returns a fresh TwoSet automaton with an empty buffer.
func NewTwoSet() *TwoSet {
	return &TwoSet{buffer: NewBuffer()}
}

func (a *TwoSet) commitCurrent() (string, bool) {
	text, ok := a.buffer.Render()
	a.buffer.Reset()
	a.prevJungseong = nil
	a.prevJongseong = nil
	return text, ok
}

// Process implements Automaton.
func (a *TwoSet) Process(ch rune, l *layout.Layout) Outcome {
	isConsonant := hangul.IsCompatConsonant(ch)
	isVowel := hangul.IsCompatVowel(ch)

	if !isConsonant && !isVowel {
		if a.buffer.State != Empty {
			committed, ok := a.commitCurrent()
			if !ok {
				return HandledEmpty()
			}
			return HandledCommit(committed)
		}
		return NotHandled()
	}

	switch a.buffer.State {
	case Empty:
		if isConsonant {
			idx, _ := hangul.CompatToChoseong(ch)
			return a.processEmptyConsonant(idx)
		}
		idx, _ := hangul.CompatToJungseong(ch)
		return a.processEmptyVowel(idx)

	case Choseong:
		if isVowel {
			idx, _ := hangul.CompatToJungseong(ch)
			return a.processChoseongVowel(idx)
		}
		idx, _ := hangul.CompatToChoseong(ch)
		return a.processChoseongConsonant(idx)

	case Jungseong:
		if isVowel {
			idx, _ := hangul.CompatToJungseong(ch)
			return a.processJungseongVowel(idx, l)
		}
		idx, _ := hangul.CompatToChoseong(ch)
		return a.processJungseongConsonant(ch, idx)

	case Jungseong2:
		if isVowel {
			committed, hasCommit := a.commitCurrent()
			idx, _ := hangul.CompatToJungseong(ch)
			a.buffer.SetV(idx)
			a.buffer.State = Jungseong
			return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
		}
		idx, _ := hangul.CompatToChoseong(ch)
		return a.processJungseong2Consonant(ch, idx)

	case Jongseong:
		if isVowel {
			idx, _ := hangul.CompatToJungseong(ch)
			return a.processJongseongVowel(idx)
		}
		idx, _ := hangul.CompatToChoseong(ch)
		return a.processJongseongConsonant(ch, idx, l)

	case Jongseong2:
		if isVowel {
			idx, _ := hangul.CompatToJungseong(ch)
			return a.processJongseong2Vowel(idx)
		}
		idx, _ := hangul.CompatToChoseong(ch)
		return a.processJongseong2Consonant(idx)
	}

	return NotHandled()
}

func optionalStr(s string, has bool) *string {
	if !has {
		return nil
	}
	return &s
}

func (a *TwoSet) processEmptyConsonant(l uint32) Outcome {
	a.buffer.SetL(l)
	a.buffer.State = Choseong
	return renderOutcome(a.buffer, nil)
}

func (a *TwoSet) processEmptyVowel(v uint32) Outcome {
	a.buffer.SetV(v)
	a.buffer.State = Jungseong
	return renderOutcome(a.buffer, nil)
}

func (a *TwoSet) processChoseongVowel(v uint32) Outcome {
	a.buffer.SetV(v)
	a.buffer.State = Jungseong
	return renderOutcome(a.buffer, nil)
}

func (a *TwoSet) processChoseongConsonant(l uint32) Outcome {
	committed, hasCommit := a.commitCurrent()
	a.buffer.SetL(l)
	a.buffer.State = Choseong
	return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
}

func (a *TwoSet) processJungseongVowel(v uint32, l *layout.Layout) Outcome {
	currentV := *a.buffer.Jungseong
	currentCh, _ := hangul.JungseongToCompat(currentV)
	newCh, _ := hangul.JungseongToCompat(v)

	if combined, ok := l.Combine(currentCh, newCh); ok {
		if combinedIdx, ok := hangul.CompatToJungseong(combined); ok {
			a.prevJungseong = &currentV
			a.buffer.SetV(combinedIdx)
			a.buffer.State = Jungseong2
			return renderOutcome(a.buffer, nil)
		}
	}

	committed, hasCommit := a.commitCurrent()
	a.buffer.SetV(v)
	a.buffer.State = Jungseong
	return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
}

func (a *TwoSet) processJungseongConsonant(ch rune, l uint32) Outcome {
	if a.buffer.Choseong == nil {
		committed, hasCommit := a.commitCurrent()
		a.buffer.SetL(l)
		a.buffer.State = Choseong
		return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
	}

	if hangul.IsFinalImpossible(ch) {
		committed, hasCommit := a.commitCurrent()
		a.buffer.SetL(l)
		a.buffer.State = Choseong
		return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
	}

	if t, ok := hangul.CompatToJongseong(ch); ok {
		a.buffer.SetT(t)
		a.buffer.State = Jongseong
		return renderOutcome(a.buffer, nil)
	}

	committed, hasCommit := a.commitCurrent()
	a.buffer.SetL(l)
	a.buffer.State = Choseong
	return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
}

func (a *TwoSet) processJungseong2Consonant(ch rune, l uint32) Outcome {
	return a.processJungseongConsonant(ch, l)
}

func (a *TwoSet) processJongseongConsonant(ch rune, l uint32, layoutCfg *layout.Layout) Outcome {
	currentT := *a.buffer.Jongseong
	currentCh, _ := hangul.JongseongToCompat(currentT)

	if combined, ok := layoutCfg.Combine(currentCh, ch); ok {
		if combinedIdx, ok := hangul.CompatToJongseong(combined); ok {
			a.prevJongseong = &currentT
			a.buffer.SetT(combinedIdx)
			a.buffer.State = Jongseong2
			return renderOutcome(a.buffer, nil)
		}
	}

	committed, hasCommit := a.commitCurrent()
	a.buffer.SetL(l)
	a.buffer.State = Choseong
	return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
}

// processJongseongVowel implements the steal: the buffered final becomes
// the initial of the next syllable.
func (a *TwoSet) processJongseongVowel(v uint32) Outcome {
	t := *a.buffer.Jongseong
	l := *a.buffer.Choseong
	vv := *a.buffer.Jungseong

	nextL, _ := hangul.JongseongToChoseong(t)

	var committedPtr *string
	if ch, ok := hangul.Compose(l, vv, 0); ok {
		s := string(ch)
		committedPtr = &s
	}

	a.buffer.Reset()
	a.prevJungseong = nil
	a.prevJongseong = nil
	a.buffer.SetL(nextL)
	a.buffer.SetV(v)
	a.buffer.State = Jungseong

	return renderOutcome(a.buffer, committedPtr)
}

// processJongseong2Vowel implements the cluster-steal: the cluster final
// splits, the first half stays, the second becomes the next initial.
func (a *TwoSet) processJongseong2Vowel(v uint32) Outcome {
	t := *a.buffer.Jongseong
	l := *a.buffer.Choseong
	vv := *a.buffer.Jungseong

	firstT, secondCh, _ := hangul.SplitFinal(t)
	nextL, _ := hangul.CompatToChoseong(secondCh)

	var committedPtr *string
	if ch, ok := hangul.Compose(l, vv, firstT); ok {
		s := string(ch)
		committedPtr = &s
	}

	a.buffer.Reset()
	a.prevJungseong = nil
	a.prevJongseong = nil
	a.buffer.SetL(nextL)
	a.buffer.SetV(v)
	a.buffer.State = Jungseong

	return renderOutcome(a.buffer, committedPtr)
}

func (a *TwoSet) processJongseong2Consonant(l uint32) Outcome {
	committed, hasCommit := a.commitCurrent()
	a.buffer.SetL(l)
	a.buffer.State = Choseong
	return renderOutcome(a.buffer, optionalStr(committed, hasCommit))
}

// Backspace implements Automaton.
func (a *TwoSet) Backspace() Outcome {
	switch a.buffer.State {
	case Empty:
		return NotHandled()

	case Choseong:
		a.buffer.Reset()
		a.prevJungseong = nil
		a.prevJongseong = nil
		return HandledEmpty()

	case Jungseong:
		if a.buffer.Choseong != nil {
			a.buffer.Jungseong = nil
			a.buffer.State = Choseong
		} else {
			a.buffer.Reset()
		}
		a.prevJungseong = nil
		return renderOutcome(a.buffer, nil)

	case Jungseong2:
		if a.prevJungseong != nil {
			a.buffer.Jungseong = a.prevJungseong
			a.prevJungseong = nil
			a.buffer.State = Jungseong
		}
		return renderOutcome(a.buffer, nil)

	case Jongseong:
		a.buffer.Jongseong = nil
		a.prevJongseong = nil
		if a.prevJungseong != nil {
			a.buffer.State = Jungseong2
		} else {
			a.buffer.State = Jungseong
		}
		return renderOutcome(a.buffer, nil)

	case Jongseong2:
		if a.prevJongseong != nil {
			a.buffer.Jongseong = a.prevJongseong
			a.prevJongseong = nil
			a.buffer.State = Jongseong
		}
		return renderOutcome(a.buffer, nil)
	}

	return NotHandled()
}

// Flush implements Automaton.
func (a *TwoSet) Flush() Outcome {
	if a.buffer.State == Empty {
		return HandledEmpty()
	}
	committed, hasCommit := a.commitCurrent()
	return Outcome{Handled: true, Committed: optionalStr(committed, hasCommit)}
}

// ComposingText implements Automaton.
func (a *TwoSet) ComposingText() (string, bool) { return a.buffer.Render() }

// State implements Automaton.
func (a *TwoSet) State() State { return a.buffer.State }
