// Package corpus loads the Quranic morphology corpus, the classical root
// glossary and the Arabic dictionary from JSONL files into immutable
// in-memory indices.
//
// All indices are built once at load time and never mutated afterwards, so
// they are safe for unsynchronized concurrent reads.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Tameem1/quranlex/pkg/arabic"
)

// maxLineSize bounds a single JSONL record; glossary entries carry long
// dictionary excerpts.
const maxLineSize = 1 << 20

// Token is one morphological segment of a Quranic word, as emitted by the
// corpus pipeline. A word at (surah, ayah, word_index) may consist of
// several tokens (proclitics, stem, enclitics) distinguished by token_index.
type Token struct {
	Surah      int    `json:"surah"`
	Ayah       int    `json:"ayah"`
	WordIndex  int    `json:"word_index"`
	TokenIndex int    `json:"token_index"`
	Surface    string `json:"token"`
	POS        string `json:"pos"`
	Features   string `json:"features"`
	Root       string `json:"root,omitempty"`
	Lemma      string `json:"lemma,omitempty"`
}

// WordKey identifies a verse word.
type WordKey struct {
	Surah     int
	Ayah      int
	WordIndex int
}

// VerseKey identifies a verse.
type VerseKey struct {
	Surah int
	Ayah  int
}

// Analysis holds the precomputed normalized forms of a verse word. It is
// filled once when the index is built and is read-only afterwards.
type Analysis struct {
	// Surface is the concatenation of the token surfaces in token order.
	Surface string
	// SurfaceNorm is Surface normalized.
	SurfaceNorm string
	// Root is the first non-empty root among the tokens, raw as found in
	// the corpus. Empty when no token carries a root.
	Root string
	// RootNorm is Root normalized.
	RootNorm string
	// RootInitial is the first letter of Root, zero when rootless.
	RootInitial rune
	// Variants expands SurfaceNorm with RootInitial guarding the
	// proclitic rule.
	Variants *arabic.VariantSet
	// VariantsBare is Variants augmented with shadda-stripped twins.
	VariantsBare *arabic.VariantSet
	// FirstLemmaNorm is the normalized lemma of the first token, empty
	// when the first token has no lemma.
	FirstLemmaNorm string
	// LemmaNorms and LemmaBares hold the deduplicated normalized lemmas
	// of all tokens and their shadda-stripped twins.
	LemmaNorms []string
	LemmaBares []string
	// RootNorms and RootBares do the same for the token roots.
	RootNorms []string
	RootBares []string
}

// VerseWord is one space-delimited word of the Quranic text together with
// its morphological tokens, ordered by token_index.
type VerseWord struct {
	Surah     int
	Ayah      int
	WordIndex int
	Tokens    []Token

	Analysis Analysis
}

// Key returns the word's identity triple.
func (w *VerseWord) Key() WordKey {
	return WordKey{Surah: w.Surah, Ayah: w.Ayah, WordIndex: w.WordIndex}
}

func (w *VerseWord) finalize() {
	sort.Slice(w.Tokens, func(i, j int) bool {
		return w.Tokens[i].TokenIndex < w.Tokens[j].TokenIndex
	})

	a := &w.Analysis

	var surface strings.Builder
	for _, t := range w.Tokens {
		surface.WriteString(t.Surface)
	}
	a.Surface = surface.String()
	a.SurfaceNorm = arabic.Normalize(a.Surface)

	for _, t := range w.Tokens {
		if t.Root != "" {
			a.Root = t.Root
			break
		}
	}
	a.RootNorm = arabic.Normalize(a.Root)
	a.RootInitial = arabic.FirstLetter(a.Root)

	a.Variants = arabic.Variants(a.SurfaceNorm, a.RootInitial)
	a.VariantsBare = a.Variants.WithShaddaFree()

	if lem := w.Tokens[0].Lemma; lem != "" {
		a.FirstLemmaNorm = arabic.Normalize(lem)
	}

	seenLemmas := make(map[string]struct{}, len(w.Tokens))
	seenRoots := make(map[string]struct{}, len(w.Tokens))
	for _, t := range w.Tokens {
		if t.Lemma != "" {
			n := arabic.Normalize(t.Lemma)
			if _, ok := seenLemmas[n]; !ok {
				seenLemmas[n] = struct{}{}
				a.LemmaNorms = append(a.LemmaNorms, n)
				a.LemmaBares = append(a.LemmaBares, arabic.StripShadda(n))
			}
		}
		if t.Root != "" {
			n := arabic.Normalize(t.Root)
			if _, ok := seenRoots[n]; !ok {
				seenRoots[n] = struct{}{}
				a.RootNorms = append(a.RootNorms, n)
				a.RootBares = append(a.RootBares, arabic.StripShadda(n))
			}
		}
	}
}

// Index is the in-memory morphology corpus. Verse words keep the order of
// their first appearance in the source file, which for the canonical corpus
// is mushaf order; the lexical matchers rely on that order for their
// first-match semantics.
type Index struct {
	words      []*VerseWord
	byKey      map[WordKey]*VerseWord
	byVerse    map[VerseKey][]*VerseWord
	tokenCount int
}

// New builds an index from already-decoded tokens.
func New(tokens []Token) *Index {
	ix := &Index{
		byKey:   make(map[WordKey]*VerseWord),
		byVerse: make(map[VerseKey][]*VerseWord),
	}
	for _, t := range tokens {
		key := WordKey{Surah: t.Surah, Ayah: t.Ayah, WordIndex: t.WordIndex}
		w, ok := ix.byKey[key]
		if !ok {
			w = &VerseWord{Surah: t.Surah, Ayah: t.Ayah, WordIndex: t.WordIndex}
			ix.byKey[key] = w
			ix.words = append(ix.words, w)
		}
		w.Tokens = append(w.Tokens, t)
		ix.tokenCount++
	}
	for _, w := range ix.words {
		w.finalize()
		vk := VerseKey{Surah: w.Surah, Ayah: w.Ayah}
		ix.byVerse[vk] = append(ix.byVerse[vk], w)
	}
	for _, words := range ix.byVerse {
		sort.Slice(words, func(i, j int) bool {
			return words[i].WordIndex < words[j].WordIndex
		})
	}
	return ix
}

// Load reads a morphology JSONL file and builds the index.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return LoadReader(f, path)
}

// LoadReader builds the index from JSONL content. name is used in error
// reporting only.
func LoadReader(r io.Reader, name string) (*Index, error) {
	tokens, err := ReadTokens(r, name)
	if err != nil {
		return nil, err
	}
	return New(tokens), nil
}

// ReadTokens decodes morphology JSONL into raw tokens, preserving file
// order.
func ReadTokens(r io.Reader, name string) ([]Token, error) {
	var tokens []Token
	err := forEachLine(r, name, func(line []byte) error {
		var t Token
		if err := json.Unmarshal(line, &t); err != nil {
			return err
		}
		tokens = append(tokens, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Words returns every verse word in corpus order. Callers must not mutate
// the returned slice or the words it points to.
func (ix *Index) Words() []*VerseWord { return ix.words }

// Word returns the verse word at the given key, or nil.
func (ix *Index) Word(key WordKey) *VerseWord { return ix.byKey[key] }

// Verse returns the words of one verse ordered by word_index. The result
// is nil for an unknown verse.
func (ix *Index) Verse(surah, ayah int) []*VerseWord {
	return ix.byVerse[VerseKey{Surah: surah, Ayah: ayah}]
}

// VerseText reconstructs the verse as the token-order concatenation of each
// word joined by single spaces.
func (ix *Index) VerseText(surah, ayah int) string {
	words := ix.byVerse[VerseKey{Surah: surah, Ayah: ayah}]
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Analysis.Surface
	}
	return strings.Join(parts, " ")
}

// WordCount returns the number of verse words.
func (ix *Index) WordCount() int { return len(ix.words) }

// VerseCount returns the number of distinct verses.
func (ix *Index) VerseCount() int { return len(ix.byVerse) }

// TokenCount returns the number of tokens.
func (ix *Index) TokenCount() int { return ix.tokenCount }

// LoadError reports a corpus file that could not be loaded. Line is
// 1-based and zero when the file itself was unreadable.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// forEachLine feeds every non-blank line of r to fn. It returns a LoadError
// carrying name and the 1-based line number on the first failure.
func forEachLine(r io.Reader, name string, fn func(line []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn([]byte(line)); err != nil {
			return &LoadError{Path: name, Line: lineNo, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return &LoadError{Path: name, Line: lineNo + 1, Err: err}
	}
	return nil
}
