// Package arabic provides orthographic normalization for Quranic Arabic
// surface forms, and spelling-variant expansion used by the lexical matchers.
//
// Normalization folds the hamza seats and dotless yāʾ onto their bare
// letters, strips the vocalization layer, and keeps shadda, so that two
// spellings of the same word compare equal while gemination survives.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Arabic code points handled by the normalizer.
const (
	Alef            = 'ا' // ا bare alif
	AlefMadda       = 'آ' // آ alif with madda
	AlefHamzaAbove  = 'أ' // أ alif with hamza above
	AlefHamzaBelow  = 'إ' // إ alif with hamza below
	AlefWasla       = 'ٱ' // ٱ alif waṣla
	Waw             = 'و' // و
	WawHamzaAbove   = 'ؤ' // ؤ
	Yeh             = 'ي' // ي
	YehHamzaAbove   = 'ئ' // ئ
	DotlessYeh      = 'ى' // ى alif maqṣūra
	TehMarbuta      = 'ة' // ة
	Heh             = 'ه' // ه
	Tatweel         = 'ـ' // ـ kashida
	Shadda          = 'ّ' // ّ gemination mark
	SuperscriptAlef = 'ٰ' // ٰ dagger alif
	HamzaAbove      = 'ٔ' // ٔ combining hamza, NFD residue of أ ؤ ئ
	Fathatan        = 'ً' // ً
	Dammatan        = 'ٌ' // ٌ
	Kasratan        = 'ٍ' // ٍ
)

// Normalize returns the canonical orthographic form of text.
//
// The input is decomposed with NFD, every combining mark except shadda is
// dropped, the dagger alif is promoted to a full alif, alif waṣla and the
// hamza-seated letters collapse onto their bare letters, and tatwīl is
// removed. A hamzat al-qatʿ on the very first letter is kept, so that أمر
// and امر stay distinct while mid-word seats unify.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	decomposed := norm.NFD.String(text)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		switch {
		case r == Shadda:
			out = append(out, Shadda)
		case r == SuperscriptAlef:
			out = append(out, Alef)
		case r == HamzaAbove && len(out) == 1 && out[0] == Alef:
			// NFD turns a leading أ into ا plus a combining hamza.
			// Restore the seat only at position zero.
			out[0] = AlefHamzaAbove
		case unicode.Is(unicode.Mn, r):
			// fatha, damma, kasra, tanwīn, sukūn, madda, stray hamza marks
		case r == AlefWasla:
			out = append(out, Alef)
		case r == DotlessYeh:
			out = append(out, Yeh)
		case r == Tatweel:
			// kashida is purely typographic
		default:
			out = append(out, r)
		}
	}
	return strings.TrimSpace(string(out))
}

// NormalizeRoot canonicalizes a root string for lexicon lookups. On top of
// Normalize it folds tāʾ marbūṭa onto hāʾ, matching the loose spelling of
// roots found in classical dictionaries.
func NormalizeRoot(root string) string {
	return strings.Map(func(r rune) rune {
		if r == TehMarbuta {
			return Heh
		}
		return r
	}, Normalize(root))
}

// StripShadda removes every gemination mark from s.
func StripShadda(s string) string {
	return strings.ReplaceAll(s, string(Shadda), "")
}

// FirstLetter returns the first rune of s, or zero when s is empty.
func FirstLetter(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
