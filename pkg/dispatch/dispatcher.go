// Package dispatch routes classified questions through data-driven
// retrieval plans and assembles the answer context.
//
// Each question type slug owns an ordered list of steps. Steps either
// contribute entries to the bundle or feed later steps privately; a
// mandatory step that comes up empty halts the plan with its configured
// error message.
package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tameem1/quranlex/internal/metrics"
	"github.com/Tameem1/quranlex/pkg/arabic"
	"github.com/Tameem1/quranlex/pkg/ayah"
	"github.com/Tameem1/quranlex/pkg/corpus"
	"github.com/Tameem1/quranlex/pkg/matcher"
)

// WordMatcher finds the first verse word matching a query. Both
// *matcher.Matcher and *matcher.Cache satisfy it.
type WordMatcher interface {
	Match(query string) (*matcher.Result, string)
}

// DefaultSampleLimit caps the verses attached by StepAttachSamples.
const DefaultSampleLimit = 5

// Dispatcher executes retrieval plans against the loaded indices. It holds
// no per-call state and is safe for concurrent use.
type Dispatcher struct {
	idx         *corpus.Index
	match       WordMatcher
	extractor   *ayah.Extractor
	glossary    *corpus.Glossary
	dictionary  *corpus.Dictionary
	log         *zap.Logger
	sampleLimit int
}

// New wires a dispatcher. log may be nil.
func New(idx *corpus.Index, m WordMatcher, ex *ayah.Extractor, gl *corpus.Glossary, dict *corpus.Dictionary, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		idx:         idx,
		match:       m,
		extractor:   ex,
		glossary:    gl,
		dictionary:  dict,
		log:         log,
		sampleLimit: DefaultSampleLimit,
	}
}

// SetSampleLimit overrides the sample verse cap. Values below one are
// ignored.
func (d *Dispatcher) SetSampleLimit(n int) {
	if n > 0 {
		d.sampleLimit = n
	}
}

// state carries the private inter-step data of a single dispatch call.
// Lemma and root retrievals land here, not in the bundle.
type state struct {
	target      string
	surahFilter int
	tokens      []corpus.Token
	words       []*corpus.VerseWord
	derivedRoot string
}

// Dispatch runs the plan for questionType against target. surahFilter
// restricts corpus scans to one surah, zero means unrestricted. The
// returned bundle always exists; ErrorMessage reports a halt or an unknown
// slug.
func (d *Dispatcher) Dispatch(questionType, target string, surahFilter int) *Bundle {
	b := NewBundle()

	steps, ok := Plan(questionType)
	if !ok {
		b.Set(KeyErrorMessage, fmt.Sprintf("❗ Unknown question_type slug: %s", questionType))
		metrics.DispatchTotal.WithLabelValues("unknown").Inc()
		metrics.DispatchFailures.WithLabelValues("unknown").Inc()
		return b
	}
	metrics.DispatchTotal.WithLabelValues(questionType).Inc()

	d.log.Debug("dispatching question",
		zap.String("question_type", questionType),
		zap.String("target", target),
		zap.Int("surah_filter", surahFilter))

	st := &state{target: target, surahFilter: surahFilter}
	for i, step := range steps {
		if halted := d.run(i, step, st, b); halted {
			metrics.DispatchFailures.WithLabelValues(questionType).Inc()
			d.log.Warn("dispatch halted",
				zap.String("question_type", questionType),
				zap.Stringer("step", step.Kind),
				zap.String("error", b.ErrorMessage()))
			return b
		}
	}
	return b
}

// fail applies a step's failure policy: a mandatory step halts the plan,
// an optional one is skipped.
func fail(step Step, b *Bundle) bool {
	if step.OnFail != "" {
		b.Set(KeyErrorMessage, step.OnFail)
		return true
	}
	return false
}

// run executes one step. The switch is exhaustive over StepKind; the
// boolean reports whether the plan must halt.
func (d *Dispatcher) run(i int, step Step, st *state, b *Bundle) bool {
	switch step.Kind {

	case StepLemma:
		res, _ := d.match.Match(st.target)
		if res == nil {
			return fail(step, b)
		}
		// Kept out of the bundle: later steps read the tokens, the
		// consumer does not.
		st.words = []*corpus.VerseWord{res.Word}
		st.tokens = res.Word.Tokens
		return false

	case StepLemmaSurah:
		words := d.extractor.MatchingWords(st.target, st.surahFilter)
		if len(words) == 0 {
			return fail(step, b)
		}
		st.words = words
		var toks []corpus.Token
		for _, w := range words {
			toks = append(toks, w.Tokens...)
		}
		st.tokens = toks
		return false

	case StepRoot:
		root := d.deriveRoot(st.target)
		var matches []corpus.Token
		for _, w := range d.idx.Words() {
			for _, t := range w.Tokens {
				if t.Root == root {
					matches = append(matches, t)
				}
			}
		}
		if len(matches) == 0 {
			b.Set("root_match_note", fmt.Sprintf("Root «%s» not found in morphology DB.", root))
			return fail(step, b)
		}
		b.Set("root_match_note", fmt.Sprintf("✅ Found %d tokens with root «%s»", len(matches), root))
		b.Set("root_match", matches)
		st.tokens = matches
		return false

	case StepRootGlossary:
		rootArg := firstRoot(st.tokens)
		if rootArg == "" {
			rootArg = st.target
		}
		entry, note := d.glossary.Lookup(rootArg)
		b.Set("root_lookup_combined_note", note)
		if entry == nil {
			return fail(step, b)
		}
		b.Set("root_lookup_combined", entry)
		return false

	case StepDictionary:
		entry, note := d.dictionary.Lookup(st.target)
		b.Set("dictionary_lookup_note", note)
		if entry == nil {
			return fail(step, b)
		}
		b.Set("dictionary_lookup", entry)
		return false

	case StepAyahs:
		verses := d.extractor.Extract(st.target, st.surahFilter)
		if len(verses) == 0 {
			b.Set("ayah_extraction_note", fmt.Sprintf("No verses containing «%s» were found.", st.target))
			return fail(step, b)
		}
		b.Set("ayah_extraction_note", fmt.Sprintf("✅ Found %d verses containing «%s»", len(verses), st.target))
		b.Set("ayah_extraction", verses)
		return false

	case StepPattern:
		if len(st.tokens) == 0 {
			return fail(step, b)
		}
		rows := make([]TokenBreakdown, len(st.tokens))
		for j, t := range st.tokens {
			rows[j] = TokenBreakdown{
				Surface:  t.Surface,
				POS:      t.POS,
				Features: t.Features,
				Root:     t.Root,
				Lemma:    t.Lemma,
			}
		}
		b.Set("pattern_lookup_note", fmt.Sprintf("✅ Morphological breakdown of %d tokens", len(rows)))
		b.Set("pattern_lookup", rows)
		return false

	case StepCount:
		if len(st.tokens) == 0 {
			return false
		}
		// Multi-token words count once.
		seen := make(map[corpus.WordKey]struct{})
		for _, t := range st.tokens {
			seen[corpus.WordKey{Surah: t.Surah, Ayah: t.Ayah, WordIndex: t.WordIndex}] = struct{}{}
		}
		b.Set("occurrence_count", len(seen))
		return false

	case StepDeriveRoot:
		root := firstRoot(st.tokens)
		if root == "" {
			root = d.deriveRoot(st.target)
		}
		st.derivedRoot = root
		b.Set("derived_root", root)
		return false

	case StepAttachSamples:
		q := st.derivedRoot
		if q == "" {
			q = st.target
		}
		verses := d.extractor.Extract(q, st.surahFilter)
		if len(verses) == 0 {
			b.Set("sample_verses_note", fmt.Sprintf("No sample verses found for «%s».", q))
			return fail(step, b)
		}
		if len(verses) > d.sampleLimit {
			verses = verses[:d.sampleLimit]
		}
		b.Set("sample_verses_note", fmt.Sprintf("✅ Attached %d sample verses for «%s»", len(verses), q))
		b.Set("sample_verses", verses)
		return false

	case StepAdvisory:
		b.Set(step.Label+"_note", step.Note)
		return false

	default:
		b.Set(fmt.Sprintf("step_%d_note", i+1), fmt.Sprintf("⚠️  Method «%s» not implemented.", step.Kind))
		return false
	}
}

// deriveRoot resolves a word or bare root to a corpus root: the first
// rooted token of the matched word when the target matches, otherwise the
// normalized target itself.
func (d *Dispatcher) deriveRoot(target string) string {
	res, _ := d.match.Match(target)
	if res != nil {
		if r := firstRoot(res.Word.Tokens); r != "" {
			return r
		}
	}
	return arabic.Normalize(target)
}

func firstRoot(tokens []corpus.Token) string {
	for _, t := range tokens {
		if t.Root != "" {
			return t.Root
		}
	}
	return ""
}
