// Package ayah extracts the complete set of verses containing a queried
// word, lemma or root.
//
// Unlike the first-match scanner in pkg/matcher, extraction always walks
// the whole corpus: every verse with at least one matching word is
// reported, deduplicated and ordered by surah then ayah. Matching here is
// shadda-insensitive, because queries for roots and lemmas routinely omit
// the gemination the corpus spells out.
package ayah

import (
	"sort"

	"github.com/Tameem1/quranlex/pkg/arabic"
	"github.com/Tameem1/quranlex/pkg/corpus"
)

// Verse is one extracted verse, its text rebuilt from the corpus tokens.
type Verse struct {
	Surah int    `json:"surah"`
	Ayah  int    `json:"ayah"`
	Text  string `json:"text"`
}

// Extractor scans an immutable corpus index. Safe for concurrent use.
type Extractor struct {
	idx *corpus.Index
}

// New returns an extractor over idx.
func New(idx *corpus.Index) *Extractor {
	return &Extractor{idx: idx}
}

// query folds the caller's raw text into the forms the match rules need,
// computed once per extraction.
type query struct {
	norm     string
	bare     string
	varsBare *arabic.VariantSet
}

func newQuery(raw string) query {
	n := arabic.Normalize(raw)
	return query{
		norm:     n,
		bare:     arabic.StripShadda(n),
		varsBare: arabic.Variants(n, 0).WithShaddaFree(),
	}
}

// Extract returns every verse in which some word matches the query,
// ordered by (surah, ayah) with no duplicates. surahFilter restricts the
// scan to one surah; pass zero to search the whole corpus. The result is
// nil when nothing matches.
func (e *Extractor) Extract(raw string, surahFilter int) []Verse {
	q := newQuery(raw)
	if q.norm == "" {
		return nil
	}

	seen := make(map[corpus.VerseKey]struct{})
	var keys []corpus.VerseKey
	for _, w := range e.idx.Words() {
		if surahFilter > 0 && w.Surah != surahFilter {
			continue
		}
		vk := corpus.VerseKey{Surah: w.Surah, Ayah: w.Ayah}
		if _, ok := seen[vk]; ok {
			continue
		}
		if !wordMatches(q, w) {
			continue
		}
		seen[vk] = struct{}{}
		keys = append(keys, vk)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Surah != keys[j].Surah {
			return keys[i].Surah < keys[j].Surah
		}
		return keys[i].Ayah < keys[j].Ayah
	})

	verses := make([]Verse, len(keys))
	for i, vk := range keys {
		verses[i] = Verse{
			Surah: vk.Surah,
			Ayah:  vk.Ayah,
			Text:  e.idx.VerseText(vk.Surah, vk.Ayah),
		}
	}
	return verses
}

// MatchingWords returns every verse word matching the query in corpus
// order, without verse deduplication. This is the basis for frequency
// counting, where two hits in one verse are two hits.
func (e *Extractor) MatchingWords(raw string, surahFilter int) []*corpus.VerseWord {
	q := newQuery(raw)
	if q.norm == "" {
		return nil
	}
	var out []*corpus.VerseWord
	for _, w := range e.idx.Words() {
		if surahFilter > 0 && w.Surah != surahFilter {
			continue
		}
		if wordMatches(q, w) {
			out = append(out, w)
		}
	}
	return out
}

// wordMatches applies the three match rules: lemma equality, variant
// intersection, root equality, each ignoring shadda.
func wordMatches(q query, w *corpus.VerseWord) bool {
	a := &w.Analysis

	for i, lem := range a.LemmaNorms {
		if lem == q.norm || a.LemmaBares[i] == q.bare {
			return true
		}
	}
	if q.varsBare.Intersects(a.VariantsBare) {
		return true
	}
	for i, r := range a.RootNorms {
		if r == q.norm || a.RootBares[i] == q.bare {
			return true
		}
	}
	return false
}
