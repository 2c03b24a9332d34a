package dispatch

// slugOrder lists the question type slugs in their canonical classifier
// order.
var slugOrder = []string{
	"meaning_word",
	"semantic_context_word",
	"multiple_contexts_word",
	"difference_two_words",
	"synonyms_antonyms",
	"comparison_near_synonyms",
	"root_conjugations_usage",
	"morphological_weight_analysis",
	"linguistic_origin_root",
	"frequency_word_root",
	"thematic_classification_roots",
	"semantic_domain_root",
}

// table maps each question type to its ordered retrieval plan.
var table = map[string][]Step{
	// 0
	"meaning_word": {
		{Kind: StepLemma, OnFail: "The word you provided does not exist in the Qur'anic database."},
		{Kind: StepRootGlossary},
		{Kind: StepDictionary},
	},
	// 1
	"semantic_context_word": {
		{Kind: StepLemma, OnFail: "The word or lemma could not be found in the Qur'anic corpus."},
		{Kind: StepRootGlossary},
		{Kind: StepAyahs},
	},
	// 2
	"multiple_contexts_word": {
		{Kind: StepRoot, OnFail: "The root could not be located in the Qur'anic corpus."},
		{Kind: StepRootGlossary},
		{Kind: StepAyahs},
	},
	// 3
	"difference_two_words": {
		{Kind: StepLemma, OnFail: "One or both of the words are not found in the Qur'an."},
		{Kind: StepRootGlossary},
	},
	// 4
	"synonyms_antonyms": {
		{Kind: StepLemma, OnFail: "The word is not present in the Qur'anic corpus."},
		{Kind: StepRootGlossary},
	},
	// 5
	"comparison_near_synonyms": {
		{Kind: StepLemma, OnFail: "One or more of the provided words are not found in the Qur'an."},
		{Kind: StepRootGlossary},
	},
	// 6
	"root_conjugations_usage": {
		{Kind: StepRoot, OnFail: "The root was not found in the Qur'anic corpus."},
	},
	// 7
	"morphological_weight_analysis": {
		{Kind: StepLemma, OnFail: "The word is not found in the Qur'anic morphology database."},
		{Kind: StepPattern},
	},
	// 8
	"linguistic_origin_root": {
		{Kind: StepRootGlossary, OnFail: "The root is not documented in our classical root database."},
		{Kind: StepAdvisory, Label: "etymology_lookup", Note: "ℹ️  Etymology commentary should be drawn from the classical glossary excerpt."},
	},
	// 9
	"frequency_word_root": {
		{Kind: StepLemmaSurah, OnFail: "The word was not found in the specified surah."},
		{Kind: StepCount},
	},
	// 10
	"thematic_classification_roots": {
		{Kind: StepRootGlossary},
		{Kind: StepDeriveRoot},
		{Kind: StepAttachSamples},
		{Kind: StepAdvisory, Label: "topic_expansion", Note: "ℹ️  Related roots may be inferred from the glossary synonyms column."},
	},
	// 11
	"semantic_domain_root": {
		{Kind: StepRoot, OnFail: "The root could not be found in the Qur'anic text."},
		{Kind: StepRootGlossary},
		{Kind: StepAdvisory, Label: "domain_classification", Note: "ℹ️  The semantic domain follows from the glossary entry and the sample verses."},
	},
}

// Slugs returns the supported question type slugs in canonical order.
// Callers must not mutate the result.
func Slugs() []string { return slugOrder }

// Plan returns the retrieval plan for a slug.
func Plan(slug string) ([]Step, bool) {
	steps, ok := table[slug]
	return steps, ok
}
