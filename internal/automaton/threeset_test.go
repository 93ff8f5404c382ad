package automaton

import (
	"testing"

	"github.com/hiking90/ongeul/internal/layout"
)

// Key labels mirror a 세벌식390-style layout: m=ㅎ초 f=ㅏ중 s=ㄴ종 k=ㄱ초
// g=ㅡ중 w=ㄹ종 v=ㅗ중 x=ㄱ종 u=ㄷ초 d=ㅣ중 q=ㅅ종 h=ㄴ초 y=ㄹ초 j=ㅇ초.
const testThreeSetLayoutJSON = `{
	id: "3-390-test",
	name: "세벌식 390 테스트",
	type: "jaso",
	keymap: {
		"m": "0x1112",
		"f": "0x1161",
		"s": "0x11AB",
		"k": "0x1100",
		"g": "0x1173",
		"w": "0x11AF",
		"v": "0x1169",
		"x": "0x11A8",
		"u": "0x1103",
		"d": "0x1175",
		"q": "0x11BA",
		"h": "0x1102",
		"y": "0x1105",
		"j": "0x110B",
	},
	combinations: [
		{ first: "0x1100", second: "0x1100", result: "0x1101" },
		{ first: "0x1169", second: "0x1161", result: "0x116A" },
		{ first: "0x1169", second: "0x1175", result: "0x116C" },
		{ first: "0x1173", second: "0x1175", result: "0x1174" },
		{ first: "0x11AF", second: "0x11A8", result: "0x11B0" },
		{ first: "0x11BA", second: "0x11BA", result: "0x11BB" },
	],
	options: { auto_reorder: true },
}`

func makeThreeSetLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.Parse(testThreeSetLayoutJSON)
	if err != nil {
		t.Fatalf("failed to parse test layout: %v", err)
	}
	return l
}

func TestThreeSetBasicSyllable(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"m", "f", "s"})
	if committed != "" || !has || composing != "한" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 한)", committed, composing)
	}
}

func TestThreeSetHangulWord(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"m", "f", "s", "k", "g", "w"})
	if committed != "한" || !has || composing != "글" {
		t.Fatalf("got committed=%q composing=%q, want (한, 글)", committed, composing)
	}
}

func TestThreeSetNoJongseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"k", "f"})
	if committed != "" || !has || composing != "가" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 가)", committed, composing)
	}
}

func TestThreeSetDoubleVowel(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"k", "v", "f"})
	if committed != "" || !has || composing != "과" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 과)", committed, composing)
	}
}

func TestThreeSetDoubleJongseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"k", "f", "w", "x"})
	if committed != "" || !has || composing != "갉" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 갉)", committed, composing)
	}
}

func TestThreeSetNeverSteals(t *testing.T) {
	// "된" + ㄷ초 -> committed "된", composing "ㄷ" (ThreeSet never steals a
	// final into a new initial; a fresh choseong always commits).
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"u", "v", "d", "s", "u"})
	if committed != "된" || !has || composing != "ㄷ" {
		t.Fatalf("got committed=%q composing=%q, want (된, ㄷ)", committed, composing)
	}
}

func TestThreeSetSsangChoseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	ch, _ := l.MapKey("k")
	a.Process(ch, l)
	result := a.Process(ch, l)
	if result.Committed != nil {
		t.Fatalf("committed = %v, want nil", result.Committed)
	}
	if result.Composing == nil || *result.Composing != "ㄲ" {
		t.Fatalf("composing = %v, want ㄲ", result.Composing)
	}
}

func TestThreeSetBackspaceFromDoubleJongseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	processKeys(t, a, l, []string{"k", "f", "w", "x"})
	result := a.Backspace()
	if result.Composing == nil || *result.Composing != "갈" {
		t.Fatalf("composing = %v, want 갈", result.Composing)
	}
}

func TestThreeSetBackspaceToEmpty(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	processKeys(t, a, l, []string{"k"})
	result := a.Backspace()
	if result.Composing != nil || !result.Handled {
		t.Fatalf("got composing=%v handled=%v, want (nil, true)", result.Composing, result.Handled)
	}
	result = a.Backspace()
	if result.Handled {
		t.Fatal("expected Handled=false on empty-buffer backspace")
	}
}

func TestThreeSetJongseongWithoutChoseongJungseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	ch, _ := l.MapKey("q")
	result := a.Process(ch, l)
	if result.Committed == nil || *result.Committed != "ㅅ" {
		t.Fatalf("committed = %v, want ㅅ", result.Committed)
	}
	if result.Composing != nil {
		t.Fatalf("composing = %v, want nil", result.Composing)
	}
}

func TestThreeSetStandaloneJongseongThenChoseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"q", "k"})
	if committed != "ㅅ" || !has || composing != "ㄱ" {
		t.Fatalf("got committed=%q composing=%q, want (ㅅ, ㄱ)", committed, composing)
	}
}

func TestThreeSetEuiCombination(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"j", "g", "d"})
	if committed != "" || !has || composing != "의" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 의)", committed, composing)
	}
}

func TestThreeSetSsangJongseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(l.AutoReorder)
	committed, composing, has := processKeys(t, a, l, []string{"k", "f", "q", "q"})
	if committed != "" || !has || composing != "갔" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 갔)", committed, composing)
	}
}

// ── auto-reorder behavior ──

func TestThreeSetAutoReorderPendingSuccess(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(true)
	committed, composing, has := processKeys(t, a, l, []string{"k", "s", "f"})
	if committed != "" || !has || composing != "간" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 간)", committed, composing)
	}
	if a.State() != Jongseong {
		t.Fatalf("state = %v, want Jongseong", a.State())
	}
}

func TestThreeSetAutoReorderPendingFail(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(true)
	committed, composing, has := processKeys(t, a, l, []string{"k", "s", "u"})
	if committed != "ㄱㄴ" || !has || composing != "ㄷ" {
		t.Fatalf("got committed=%q composing=%q, want (ㄱㄴ, ㄷ)", committed, composing)
	}
}

func TestThreeSetAutoReorderPendingBackspace(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(true)
	processKeys(t, a, l, []string{"k", "s"})
	result := a.Backspace()
	if result.Composing == nil || *result.Composing != "ㄱ" {
		t.Fatalf("composing = %v, want ㄱ", result.Composing)
	}
	if !result.Handled {
		t.Fatal("expected Handled=true")
	}
	if a.State() != Choseong {
		t.Fatalf("state = %v, want Choseong", a.State())
	}
}

func TestThreeSetAutoReorderVowelThenChoseong(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(true)
	committed, composing, has := processKeys(t, a, l, []string{"f", "k"})
	if committed != "" || !has || composing != "가" {
		t.Fatalf("got committed=%q composing=%q, want (\"\", 가)", committed, composing)
	}
	if a.State() != Jungseong {
		t.Fatalf("state = %v, want Jungseong", a.State())
	}
}

func TestThreeSetAutoReorderPendingFlush(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(true)
	processKeys(t, a, l, []string{"k", "s"})
	result := a.Flush()
	if result.Committed == nil || *result.Committed != "ㄱㄴ" {
		t.Fatalf("committed = %v, want ㄱㄴ", result.Committed)
	}
	if result.Composing != nil {
		t.Fatalf("composing = %v, want nil", result.Composing)
	}
}

func TestThreeSetAutoReorderFullSequence(t *testing.T) {
	l := makeThreeSetLayout(t)
	a := NewThreeSet(true)
	committed, composing, has := processKeys(t, a, l, []string{"k", "s", "f", "k"})
	if committed != "간" || !has || composing != "ㄱ" {
		t.Fatalf("got committed=%q composing=%q, want (간, ㄱ)", committed, composing)
	}
}

// ── auto-reorder disabled: forgiveness behaviors turn off ──

func TestThreeSetNoAutoReorderPendingBecomesImmediateCommit(t *testing.T) {
	// Without auto-reorder, a final typed while only an initial is
	// buffered commits immediately instead of stashing as pending.
	l := makeThreeSetLayout(t)
	a := NewThreeSet(false)
	committed, composing, has := processKeys(t, a, l, []string{"k", "s"})
	if committed != "ㄱㄴ" || has {
		t.Fatalf("got committed=%q composing=%q has=%v, want (ㄱㄴ, \"\", false)", committed, composing, has)
	}
}

func TestThreeSetNoAutoReorderVowelThenChoseongCommits(t *testing.T) {
	// Without auto-reorder, an initial arriving after a lone vowel commits
	// the vowel and starts a fresh initial instead of folding in.
	l := makeThreeSetLayout(t)
	a := NewThreeSet(false)
	committed, composing, has := processKeys(t, a, l, []string{"f", "k"})
	if committed != "ㅏ" || !has || composing != "ㄱ" {
		t.Fatalf("got committed=%q composing=%q, want (ㅏ, ㄱ)", committed, composing)
	}
	if a.State() != Choseong {
		t.Fatalf("state = %v, want Choseong", a.State())
	}
}
