// Package hangul implements Hangul Unicode code-point arithmetic: syllable
// composition/decomposition, compatibility-jamo <-> positional-jamo
// conversion, cluster split tables and jamo classification.
//
// Every function here is pure and stateless; the package holds no mutable
// state and is safe to share across goroutines without synchronization.
package hangul

import (
	hg "github.com/suapapa/go_hangul"
)

// Hangul syllable block constants (Unicode 5.2, "Hangul Syllables" + "Hangul
// Jamo" blocks).
const (
	// SBase is the first composed syllable, '가'.
	SBase = 0xAC00
	// LBase is the first positional choseong, 'ᄀ'.
	LBase = 0x1100
	// VBase is the first positional jungseong, 'ᅡ'.
	VBase = 0x1161
	// TBase is the jongseong reference point; T index 0 means "no final".
	TBase = 0x11A7

	LCount = 19
	VCount = 21
	TCount = 28
	NCount = VCount * TCount // 588
	SCount = LCount * NCount // 11172
)

// Compatibility jamo block (U+3131-U+3163).
const (
	CompatConsonantStart = 0x3131
	CompatConsonantEnd   = 0x314E
	CompatVowelStart     = 0x314F
	CompatVowelEnd       = 0x3163
)

// Compose builds the Unicode syllable for the given L/V/T index triple.
// T=0 means no final. Returns (0, false) if any index is out of range.
func Compose(l, v, t uint32) (rune, bool) {
	if l >= LCount || v >= VCount || t >= TCount {
		return 0, false
	}
	return rune(SBase + l*NCount + v*TCount + t), true
}

// ComposeOptional is Compose with an optional T index (nil = no final).
func ComposeOptional(l, v uint32, t *uint32) (rune, bool) {
	ti := uint32(0)
	if t != nil {
		ti = *t
	}
	return Compose(l, v, ti)
}

// Decompose splits a precomposed Hangul syllable into its L/V/T indices.
// T is 0 when the syllable has no final consonant.
func Decompose(ch rune) (l, v, t uint32, ok bool) {
	code := uint32(ch)
	if code < SBase || code >= SBase+SCount {
		return 0, 0, 0, false
	}
	offset := code - SBase
	l = offset / NCount
	v = (offset % NCount) / TCount
	t = offset % TCount
	return l, v, t, true
}

// IsSyllable reports whether ch is a precomposed Hangul syllable (가..힣).
func IsSyllable(ch rune) bool {
	c := uint32(ch)
	return c >= SBase && c < SBase+SCount
}

// ── compatibility jamo <-> index tables ──

type compatEntry struct {
	compat rune
	index  uint32
}

// compatToChoseong maps a compatibility-jamo consonant to its choseong index.
var compatToChoseong = []compatEntry{
	{0x3131, 0},  // ㄱ
	{0x3132, 1},  // ㄲ
	{0x3134, 2},  // ㄴ
	{0x3137, 3},  // ㄷ
	{0x3138, 4},  // ㄸ
	{0x3139, 5},  // ㄹ
	{0x3141, 6},  // ㅁ
	{0x3142, 7},  // ㅂ
	{0x3143, 8},  // ㅃ
	{0x3145, 9},  // ㅅ
	{0x3146, 10}, // ㅆ
	{0x3147, 11}, // ㅇ
	{0x3148, 12}, // ㅈ
	{0x3149, 13}, // ㅉ
	{0x314A, 14}, // ㅊ
	{0x314B, 15}, // ㅋ
	{0x314C, 16}, // ㅌ
	{0x314D, 17}, // ㅍ
	{0x314E, 18}, // ㅎ
}

// compatToJungseong maps a compatibility-jamo vowel to its jungseong index.
var compatToJungseong = []compatEntry{
	{0x314F, 0},  // ㅏ
	{0x3150, 1},  // ㅐ
	{0x3151, 2},  // ㅑ
	{0x3152, 3},  // ㅒ
	{0x3153, 4},  // ㅓ
	{0x3154, 5},  // ㅔ
	{0x3155, 6},  // ㅕ
	{0x3156, 7},  // ㅖ
	{0x3157, 8},  // ㅗ
	{0x3158, 9},  // ㅘ
	{0x3159, 10}, // ㅙ
	{0x315A, 11}, // ㅚ
	{0x315B, 12}, // ㅛ
	{0x315C, 13}, // ㅜ
	{0x315D, 14}, // ㅝ
	{0x315E, 15}, // ㅞ
	{0x315F, 16}, // ㅟ
	{0x3160, 17}, // ㅠ
	{0x3161, 18}, // ㅡ
	{0x3162, 19}, // ㅢ
	{0x3163, 20}, // ㅣ
}

// compatToJongseong maps a compatibility-jamo consonant to its jongseong
// index (1-27). ㄸ, ㅃ, ㅉ never appear here — they cannot end a syllable.
var compatToJongseong = []compatEntry{
	{0x3131, 1},  // ㄱ
	{0x3132, 2},  // ㄲ
	{0x3133, 3},  // ㄳ
	{0x3134, 4},  // ㄴ
	{0x3135, 5},  // ㄵ
	{0x3136, 6},  // ㄶ
	{0x3137, 7},  // ㄷ
	{0x3139, 8},  // ㄹ
	{0x313A, 9},  // ㄺ
	{0x313B, 10}, // ㄻ
	{0x313C, 11}, // ㄼ
	{0x313D, 12}, // ㄽ
	{0x313E, 13}, // ㄾ
	{0x313F, 14}, // ㄿ
	{0x3140, 15}, // ㅀ
	{0x3141, 16}, // ㅁ
	{0x3142, 17}, // ㅂ
	{0x3144, 18}, // ㅄ
	{0x3145, 19}, // ㅅ
	{0x3146, 20}, // ㅆ
	{0x3147, 21}, // ㅇ
	{0x3148, 22}, // ㅈ
	{0x314A, 23}, // ㅊ
	{0x314B, 24}, // ㅋ
	{0x314C, 25}, // ㅌ
	{0x314D, 26}, // ㅍ
	{0x314E, 27}, // ㅎ
}

// jongseongToCompat maps a jongseong index (0-27) to its compatibility-jamo
// codepoint. Index 0 (no final) has no compatibility rune.
var jongseongToCompat = []rune{
	0,      // 0: none
	0x3131, // 1: ㄱ
	0x3132, // 2: ㄲ
	0x3133, // 3: ㄳ
	0x3134, // 4: ㄴ
	0x3135, // 5: ㄵ
	0x3136, // 6: ㄶ
	0x3137, // 7: ㄷ
	0x3139, // 8: ㄹ
	0x313A, // 9: ㄺ
	0x313B, // 10: ㄻ
	0x313C, // 11: ㄼ
	0x313D, // 12: ㄽ
	0x313E, // 13: ㄾ
	0x313F, // 14: ㄿ
	0x3140, // 15: ㅀ
	0x3141, // 16: ㅁ
	0x3142, // 17: ㅂ
	0x3144, // 18: ㅄ
	0x3145, // 19: ㅅ
	0x3146, // 20: ㅆ
	0x3147, // 21: ㅇ
	0x3148, // 22: ㅈ
	0x314A, // 23: ㅊ
	0x314B, // 24: ㅋ
	0x314C, // 25: ㅌ
	0x314D, // 26: ㅍ
	0x314E, // 27: ㅎ
}

// choseongToCompat maps a choseong index (0-18) to its compatibility-jamo
// codepoint.
var choseongToCompat = []rune{
	0x3131, // 0: ㄱ
	0x3132, // 1: ㄲ
	0x3134, // 2: ㄴ
	0x3137, // 3: ㄷ
	0x3138, // 4: ㄸ
	0x3139, // 5: ㄹ
	0x3141, // 6: ㅁ
	0x3142, // 7: ㅂ
	0x3143, // 8: ㅃ
	0x3145, // 9: ㅅ
	0x3146, // 10: ㅆ
	0x3147, // 11: ㅇ
	0x3148, // 12: ㅈ
	0x3149, // 13: ㅉ
	0x314A, // 14: ㅊ
	0x314B, // 15: ㅋ
	0x314C, // 16: ㅌ
	0x314D, // 17: ㅍ
	0x314E, // 18: ㅎ
}

// jungseongToCompat maps a jungseong index (0-20) to its compatibility-jamo
// codepoint.
var jungseongToCompat = []rune{
	0x314F, // 0: ㅏ
	0x3150, // 1: ㅐ
	0x3151, // 2: ㅑ
	0x3152, // 3: ㅒ
	0x3153, // 4: ㅓ
	0x3154, // 5: ㅔ
	0x3155, // 6: ㅕ
	0x3156, // 7: ㅖ
	0x3157, // 8: ㅗ
	0x3158, // 9: ㅘ
	0x3159, // 10: ㅙ
	0x315A, // 11: ㅚ
	0x315B, // 12: ㅛ
	0x315C, // 13: ㅜ
	0x315D, // 14: ㅝ
	0x315E, // 15: ㅞ
	0x315F, // 16: ㅟ
	0x3160, // 17: ㅠ
	0x3161, // 18: ㅡ
	0x3162, // 19: ㅢ
	0x3163, // 20: ㅣ
}

// IsCompatConsonant reports whether ch is a compatibility-jamo consonant
// (including doubled/cluster consonants). Delegates the classification to
// go_hangul's Jaeum predicate, which covers the same U+3131-U+314E range.
func IsCompatConsonant(ch rune) bool {
	return hg.IsJaeum(ch)
}

// IsCompatVowel reports whether ch is a compatibility-jamo vowel (including
// cluster vowels). Delegates to go_hangul's Moeum predicate.
func IsCompatVowel(ch rune) bool {
	return hg.IsMoeum(ch)
}

func find(table []compatEntry, ch rune) (uint32, bool) {
	for _, e := range table {
		if e.compat == ch {
			return e.index, true
		}
	}
	return 0, false
}

// CompatToChoseong converts a compatibility-jamo consonant to a choseong
// index.
func CompatToChoseong(ch rune) (uint32, bool) { return find(compatToChoseong, ch) }

// CompatToJungseong converts a compatibility-jamo vowel to a jungseong
// index.
func CompatToJungseong(ch rune) (uint32, bool) { return find(compatToJungseong, ch) }

// CompatToJongseong converts a compatibility-jamo consonant to a jongseong
// index. Fails for ㄸ, ㅃ, ㅉ, which cannot end a syllable.
func CompatToJongseong(ch rune) (uint32, bool) { return find(compatToJongseong, ch) }

// ChoseongToCompat converts a choseong index to its compatibility-jamo form.
func ChoseongToCompat(l uint32) (rune, bool) {
	if l >= uint32(len(choseongToCompat)) {
		return 0, false
	}
	return choseongToCompat[l], true
}

// JungseongToCompat converts a jungseong index to its compatibility-jamo
// form.
func JungseongToCompat(v uint32) (rune, bool) {
	if v >= uint32(len(jungseongToCompat)) {
		return 0, false
	}
	return jungseongToCompat[v], true
}

// JongseongToCompat converts a jongseong index to its compatibility-jamo
// form. Index 0 (no final) has no representation and returns false.
func JongseongToCompat(t uint32) (rune, bool) {
	if t == 0 || t >= uint32(len(jongseongToCompat)) {
		return 0, false
	}
	return jongseongToCompat[t], true
}

// JongseongToChoseong returns the choseong index that corresponds to a
// jongseong index, used when a final consonant is stolen into the next
// syllable as its initial.
func JongseongToChoseong(t uint32) (uint32, bool) {
	compat, ok := JongseongToCompat(t)
	if !ok {
		return 0, false
	}
	return CompatToChoseong(compat)
}

// ChoseongToJongseong returns the jongseong index that corresponds to a
// choseong index, if the consonant is allowed in final position.
func ChoseongToJongseong(l uint32) (uint32, bool) {
	compat, ok := ChoseongToCompat(l)
	if !ok {
		return 0, false
	}
	return CompatToJongseong(compat)
}

// IsFinalImpossible reports whether a compatibility-jamo consonant can never
// occupy the final (jongseong) position: ㄸ, ㅃ, ㅉ.
func IsFinalImpossible(ch rune) bool {
	switch ch {
	case 0x3138, 0x3143, 0x3149:
		return true
	default:
		return false
	}
}

// ── cluster split tables ──

type jongseongSplit struct {
	cluster uint32
	first   uint32
	second  rune
}

// doubleJongseongSplit splits a cluster final into its first jongseong
// index and a second compatibility-jamo consonant, which becomes the
// initial of the following syllable when the cluster itself splits (the
// "cluster-steal" rule).
var doubleJongseongSplit = []jongseongSplit{
	{3, 1, 0x3145},   // ㄳ → ㄱ + ㅅ
	{5, 4, 0x3148},   // ㄵ → ㄴ + ㅈ
	{6, 4, 0x314E},   // ㄶ → ㄴ + ㅎ
	{9, 8, 0x3131},   // ㄺ → ㄹ + ㄱ
	{10, 8, 0x3141},  // ㄻ → ㄹ + ㅁ
	{11, 8, 0x3142},  // ㄼ → ㄹ + ㅂ
	{12, 8, 0x3145},  // ㄽ → ㄹ + ㅅ
	{13, 8, 0x314C},  // ㄾ → ㄹ + ㅌ
	{14, 8, 0x314D},  // ㄿ → ㄹ + ㅍ
	{15, 8, 0x314E},  // ㅀ → ㄹ + ㅎ
	{18, 17, 0x3145}, // ㅄ → ㅂ + ㅅ
}

// SplitFinal splits a cluster jongseong index into (first, secondCompat).
func SplitFinal(t uint32) (first uint32, second rune, ok bool) {
	for _, e := range doubleJongseongSplit {
		if e.cluster == t {
			return e.first, e.second, true
		}
	}
	return 0, 0, false
}

// IsClusterFinal reports whether a jongseong index names a cluster final.
func IsClusterFinal(t uint32) bool {
	_, _, ok := SplitFinal(t)
	return ok
}

type jungseongSplit struct {
	cluster uint32
	first   uint32
	second  uint32
}

// doubleJungseongSplit splits a cluster vowel into its two component
// jungseong indices.
var doubleJungseongSplit = []jungseongSplit{
	{9, 8, 0},   // ㅘ → ㅗ + ㅏ
	{10, 8, 1},  // ㅙ → ㅗ + ㅐ
	{11, 8, 20}, // ㅚ → ㅗ + ㅣ
	{14, 13, 4}, // ㅝ → ㅜ + ㅓ
	{15, 13, 5}, // ㅞ → ㅜ + ㅔ
	{16, 13, 20}, // ㅟ → ㅜ + ㅣ
	{19, 18, 20}, // ㅢ → ㅡ + ㅣ
}

// SplitVowel splits a cluster jungseong index into its two components.
func SplitVowel(v uint32) (first, second uint32, ok bool) {
	for _, e := range doubleJungseongSplit {
		if e.cluster == v {
			return e.first, e.second, true
		}
	}
	return 0, 0, false
}

// IsClusterVowel reports whether a jungseong index names a cluster vowel.
func IsClusterVowel(v uint32) bool {
	_, _, ok := SplitVowel(v)
	return ok
}

// ── positional jamo (used by the ThreeSet/jaso dialect) ──

// IsChoseong reports whether ch is a positional choseong (U+1100-U+1112).
func IsChoseong(ch rune) bool {
	c := uint32(ch)
	return c >= LBase && c < LBase+LCount
}

// IsJungseong reports whether ch is a positional jungseong (U+1161-U+1175).
func IsJungseong(ch rune) bool {
	c := uint32(ch)
	return c >= VBase && c < VBase+VCount
}

// IsJongseong reports whether ch is a positional jongseong (U+11A8-U+11C2).
// T index 0 (TBase itself) is not a valid jongseong rune.
func IsJongseong(ch rune) bool {
	c := uint32(ch)
	return c > TBase && c < TBase+TCount
}

// IsKoreanJamo reports whether ch is any Hangul jamo, positional or
// compatibility.
func IsKoreanJamo(ch rune) bool {
	return IsChoseong(ch) || IsJungseong(ch) || IsJongseong(ch) ||
		IsCompatConsonant(ch) || IsCompatVowel(ch)
}

// ChoseongToIndex converts a positional choseong rune to its index.
func ChoseongToIndex(ch rune) (uint32, bool) {
	if !IsChoseong(ch) {
		return 0, false
	}
	return uint32(ch) - LBase, true
}

// JungseongToIndex converts a positional jungseong rune to its index.
func JungseongToIndex(ch rune) (uint32, bool) {
	if !IsJungseong(ch) {
		return 0, false
	}
	return uint32(ch) - VBase, true
}

// JongseongToIndex converts a positional jongseong rune to its index.
func JongseongToIndex(ch rune) (uint32, bool) {
	if !IsJongseong(ch) {
		return 0, false
	}
	return uint32(ch) - TBase, true
}

// ChoseongRune returns the positional choseong rune for an index.
func ChoseongRune(idx uint32) rune { return rune(LBase + idx) }

// JungseongRune returns the positional jungseong rune for an index.
func JungseongRune(idx uint32) rune { return rune(VBase + idx) }

// JongseongRune returns the positional jongseong rune for an index.
func JongseongRune(idx uint32) rune { return rune(TBase + idx) }

// Join composes compatibility-jamo lead/medial/tail runes directly into a
// syllable, delegating the final assembly to go_hangul. It is a thin
// convenience wrapper for callers that already hold compatibility-jamo
// runes rather than indices; nothing in this repository calls it.
func Join(lead, medial, tail rune) rune {
	return hg.Join(lead, medial, tail)
}
