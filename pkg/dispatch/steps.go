package dispatch

import "fmt"

// StepKind enumerates every retrieval step the dispatcher knows how to run.
// The set is closed: the table in table.go may only combine these.
type StepKind int

const (
	// StepLemma finds the word via the three-tier matcher. Its result
	// feeds later steps privately and never appears in the bundle.
	StepLemma StepKind = iota
	// StepLemmaSurah is StepLemma over all matching words, restricted to
	// the question's surah when one was given.
	StepLemmaSurah
	// StepRoot derives the root of the target and collects every corpus
	// token carrying it.
	StepRoot
	// StepRootGlossary looks the derived root up in the root glossary.
	StepRootGlossary
	// StepDictionary looks the target up in the Arabic dictionary.
	StepDictionary
	// StepAyahs extracts every verse containing the target.
	StepAyahs
	// StepPattern emits the morphological breakdown of the matched
	// word's tokens.
	StepPattern
	// StepCount counts the distinct verse words retrieved so far.
	StepCount
	// StepDeriveRoot records the derived root in the bundle.
	StepDeriveRoot
	// StepAttachSamples attaches a few sample verses for the derived
	// root.
	StepAttachSamples
	// StepAdvisory adds a fixed guidance note for the consumer.
	StepAdvisory
)

func (k StepKind) String() string {
	switch k {
	case StepLemma:
		return "lemma_match"
	case StepLemmaSurah:
		return "lemma_match_surah_filter"
	case StepRoot:
		return "root_match"
	case StepRootGlossary:
		return "root_lookup_combined"
	case StepDictionary:
		return "dictionary_lookup"
	case StepAyahs:
		return "ayah_extraction"
	case StepPattern:
		return "pattern_lookup"
	case StepCount:
		return "count"
	case StepDeriveRoot:
		return "derive_root"
	case StepAttachSamples:
		return "attach_samples"
	case StepAdvisory:
		return "advisory"
	default:
		return fmt.Sprintf("step_kind(%d)", int(k))
	}
}

// Step is one entry of a question type's retrieval plan. A non-empty
// OnFail makes the step mandatory: when it produces nothing the dispatch
// halts with that message. Label and Note apply to advisory steps only.
type Step struct {
	Kind   StepKind
	OnFail string
	Label  string
	Note   string
}

// TokenBreakdown is one row of the morphological analysis produced by
// StepPattern.
type TokenBreakdown struct {
	Surface  string `json:"token"`
	POS      string `json:"pos"`
	Features string `json:"features"`
	Root     string `json:"root,omitempty"`
	Lemma    string `json:"lemma,omitempty"`
}
