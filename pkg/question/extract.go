// Package question parses free-form Arabic questions: it pulls out the
// Quranic word (or word pair) being asked about and detects an explicit
// surah reference.
package question

import (
	"regexp"
	"strings"

	"github.com/orsinium-labs/stopwords"
)

// Phrasings that introduce a single queried word. Ordered from most to
// least specific; the first capture wins.
var targetPatterns = []*regexp.Regexp{
	// ما معنى / ما تفسير … كلمة X
	regexp.MustCompile(`(?:(?:ما\s+)?(?:معنى|تفسير|مدلول|مغزى|المغزى|مقصود|دلالة|تفيد)\s+(?:من\s+|ب)?(?:تعبير|كلمة|لفظة|لفظ|مفردة|عبارة)\s+)([^\s?.،؟]+)`),
	// ماذا يعني لفظ X
	regexp.MustCompile(`(?:(?:ماذا\s+)?يعني(?:\s+اصطلاحًا)?\s+(?:لفظة?|كلمة|لفظ|مفردة|عبارة)\s+)([^\s?.،؟]+)`),
	// فسر / اشرح … كلمة X
	regexp.MustCompile(`(?:(?:فسر(?:وا)?|فسِّر|فسّر|اشرح|بيّن|وضح|وضّح|دلّني|دلني|أريد|أحتاج|رجاءً?|من\s+فضلك|هل\s+يمكنك)\s+(?:على\s+|إلى\s+)?(?:لي\s+)?(?:بيان\s+|شرحًا?\s+)?(?:معنى\s+)?(?:جذر\s+|اشتقاق\s+|أصل\s+)?(?:ال)?(?:كلمة|لفظة|لفظ|مفردة|عبارة|تعبير|فعل)\s+)([^\s?.،؟]+)`),
	// جذر كلمة X
	regexp.MustCompile(`(?:جذر|اشتقاق|أصل)\s+(?:ال)?(?:كلمة|لفظة|لفظ|فعل)\s+([^\s?.،؟]+)`),
	// تصريفات جذر X, or bare جذر X
	regexp.MustCompile(`(?:تصريفات|تصاريف)?\s*(?:جذر)\s+([^\s?.،؟]+)`),
	// كلمة X where X starts with a hamza seat
	regexp.MustCompile(`(?:كلمة|لفظة|لفظ|مفردة|عبارة)\s+([أإآ][^\s?.،؟]+)`),
	// generic كلمة X, last so the specific phrasings get first pick
	regexp.MustCompile(`(?:كلمة|لفظة|لفظ|مفردة|عبارة)\s+([^\s?.،؟]+)`),
}

// Phrasings asking for the difference between two words. The trailing
// \s*و variants let the conjunction sit attached to the second word.
var pairPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:ما\s+الفرق\s+بين\s+)([^\s?.،؟]+)\s+و\s*([^\s?.،؟]+)`),
	regexp.MustCompile(`(?:هل\s+هناك\s+فرق\s+بين\s+)([^\s?.،؟]+)\s+و\s*([^\s?.،؟]+)`),
	regexp.MustCompile(`(?:الفرق\s+بين\s+)([^\s?.،؟]+)\s+و\s*([^\s?.،؟]+)`),
	regexp.MustCompile(`(?:ما\s+الفرق\s+في\s+معنى\s+)([^\s?.،؟]+)\s+و\s*([^\s?.،؟]+)`),
	regexp.MustCompile(`(?:.*?فرق.*?بين\s+)([^\s?.،؟]+)\s+و\s*([^\s?.،؟]+)`),
	regexp.MustCompile(`(?:.*?فرق.*?بين\s+)([^\s?.،؟]+)\s+و([^\s?.،؟]+)`),
}

// Relative pronouns the capture groups keep tripping over.
var rejectWords = map[string]bool{
	"ذي":     true,
	"الذي":   true,
	"التي":   true,
	"الذين":  true,
	"اللذان": true,
	"اللذين": true,
	"اللتان": true,
	"اللاتي": true,
	"اللائي": true,
}

var arabicStopwords = stopwords.MustGet("ar")

const trimPunct = "؟?.,،!:؛\"'()«»"

// Target extracts the single Quranic word a question asks about. When no
// phrasing pattern applies, a bare one- or two-word question falls back to
// its first content word, with relative pronouns and Arabic stopwords
// filtered out.
func Target(question string) (string, bool) {
	for _, p := range targetPatterns {
		m := p.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		word := m[1]
		if rejectWords[word] {
			// keep trying the remaining patterns
			continue
		}
		return word, true
	}

	fields := strings.Fields(question)
	if len(fields) > 2 {
		return "", false
	}
	for _, f := range fields {
		f = strings.Trim(f, trimPunct)
		if f == "" || rejectWords[f] || arabicStopwords.Contains(f) {
			continue
		}
		return f, true
	}
	return "", false
}

// TargetPair extracts the two words of a difference question.
func TargetPair(question string) (string, string, bool) {
	for _, p := range pairPatterns {
		m := p.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		return m[1], m[2], true
	}
	return "", "", false
}
