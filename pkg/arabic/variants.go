package arabic

import "strings"

// Single-letter proclitics that attach directly to a following word.
var proclitics = map[rune]bool{
	'ك': true, // preposition "like"
	'ف': true, // conjunction "so"
	'ب': true, // preposition "with"
	'ل': true, // preposition "for"
	'س': true, // future marker
	'و': true, // conjunction "and"
}

// Letters that may follow the future marker س on an imperfect verb.
var imperfectPrefixes = map[rune]bool{
	AlefHamzaAbove: true,
	AlefHamzaBelow: true,
	AlefMadda:      true,
	'ي':            true,
	'ت':            true,
	'ن':            true,
}

var tanwinReplacer = strings.NewReplacer(
	string(Fathatan), "",
	string(Dammatan), "",
	string(Kasratan), "",
)

// VariantSet is a small ordered set of spelling variants. The input word is
// always the first member; expansion rules append in a fixed order, so two
// calls with the same arguments produce the same sequence.
type VariantSet struct {
	members []string
	index   map[string]struct{}
}

func newVariantSet() *VariantSet {
	return &VariantSet{index: make(map[string]struct{}, 8)}
}

func (s *VariantSet) add(w string) {
	if w == "" {
		return
	}
	if _, ok := s.index[w]; ok {
		return
	}
	s.index[w] = struct{}{}
	s.members = append(s.members, w)
}

// Members returns the variants in insertion order. Callers must not mutate
// the returned slice.
func (s *VariantSet) Members() []string { return s.members }

// Len returns the number of variants.
func (s *VariantSet) Len() int { return len(s.members) }

// Contains reports whether w is a member.
func (s *VariantSet) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

// Intersects reports whether the two sets share at least one member. The
// smaller set is probed against the larger one.
func (s *VariantSet) Intersects(other *VariantSet) bool {
	if s == nil || other == nil {
		return false
	}
	small, large := s, other
	if len(large.members) < len(small.members) {
		small, large = large, small
	}
	for _, w := range small.members {
		if _, ok := large.index[w]; ok {
			return true
		}
	}
	return false
}

// WithShaddaFree returns a copy of the set where every member is joined by
// its shadda-stripped twin, enabling gemination-insensitive intersection.
func (s *VariantSet) WithShaddaFree() *VariantSet {
	out := newVariantSet()
	for _, w := range s.members {
		out.add(w)
		out.add(StripShadda(w))
	}
	return out
}

// Variants expands a normalized word into the plausible surface spellings a
// corpus token could take: the word itself, the word with a detachable
// proclitic removed, with the definite article removed, with tanwīn removed,
// and with a trailing alif removed. rootInitial guards the proclitic rule:
// when the word's first letter is the first radical of its root, that letter
// is part of the word, not a prefix. Pass zero when the root is unknown.
//
// The result is small, at most eight members, and always contains word.
func Variants(word string, rootInitial rune) *VariantSet {
	set := newVariantSet()
	set.add(word)

	runes := []rune(word)

	// Detachable proclitic. The future marker س only detaches in front of
	// an imperfect prefix letter.
	if len(runes) > 3 && proclitics[runes[0]] && runes[0] != rootInitial {
		if runes[0] != 'س' || imperfectPrefixes[runes[1]] {
			set.add(string(runes[1:]))
		}
	}

	// Definite article, applied to everything gathered so far.
	for _, w := range snapshot(set) {
		r := []rune(w)
		if len(r) > 3 && r[0] == Alef && r[1] == 'ل' {
			set.add(string(r[2:]))
		}
	}

	// Tanwīn endings.
	for _, w := range snapshot(set) {
		if bare := tanwinReplacer.Replace(w); bare != w {
			set.add(bare)
		}
	}

	// Indefinite accusative alif.
	for _, w := range snapshot(set) {
		r := []rune(w)
		if len(r) > 3 && r[len(r)-1] == Alef {
			set.add(string(r[:len(r)-1]))
		}
	}

	return set
}

// snapshot copies the member list so expansion rules can append while
// ranging over the forms produced by earlier rules only.
func snapshot(s *VariantSet) []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}
