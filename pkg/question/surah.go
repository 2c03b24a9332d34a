package question

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/Tameem1/quranlex/pkg/arabic"
)

// surahNames lists the 114 chapter names in canonical orthography, index
// zero holding surah 1.
var surahNames = []string{
	"الفاتحة", "البقرة", "آل عمران", "النساء", "المائدة", "الأنعام", "الأعراف",
	"الأنفال", "التوبة", "يونس", "هود", "يوسف", "الرعد", "إبراهيم", "الحجر",
	"النحل", "الإسراء", "الكهف", "مريم", "طه", "الأنبياء", "الحج", "المؤمنون",
	"النور", "الفرقان", "الشعراء", "النمل", "القصص", "العنكبوت", "الروم",
	"لقمان", "السجدة", "الأحزاب", "سبإ", "فاطر", "يس", "الصافات", "ص", "الزمر",
	"غافر", "فصلت", "الشورى", "الزخرف", "الدخان", "الجاثية", "الأحقاف", "محمد",
	"الفتح", "الحجرات", "ق", "الذاريات", "الطور", "النجم", "القمر", "الرحمن",
	"الواقعة", "الحديد", "المجادلة", "الحشر", "الممتحنة", "الصف", "الجمعة",
	"المنافقون", "التغابن", "الطلاق", "التحريم", "الملك", "القلم", "الحاقة",
	"المعارج", "نوح", "الجن", "المزمل", "المدثر", "القيامة", "الإنسان",
	"المرسلات", "النبأ", "النازعات", "عبس", "التكوير", "الانفطار", "المطففين",
	"الانشقاق", "البروج", "الطارق", "الأعلى", "الغاشية", "الفجر", "البلد",
	"الشمس", "الليل", "الضحى", "الشرح", "التين", "العلق", "القدر", "البينة",
	"الزلزلة", "العاديات", "القارعة", "التكاثر", "العصر", "الهمزة", "الفيل",
	"قريش", "الماعون", "الكوثر", "الكافرون", "النصر", "المسد", "الإخلاص",
	"الفلق", "الناس",
}

// سورة 55 style references; the name path goes through the automaton.
var surahNumberPattern = regexp.MustCompile(`(?:سورة|سوره)\s+([^\s.,،؟?]+)`)

var allDigits = regexp.MustCompile(`^[0-9\x{0660}-\x{0669}]+$`)

var arabicIndicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// SurahIndex detects explicit surah references in questions. The name
// automaton holds every keyword-plus-name combination in normalized form,
// so multiword names like آل عمران and article-less spellings like
// "سورة بقرة" are both found in a single scan.
type SurahIndex struct {
	ac     *ahocorasick.Automaton
	bySlot []int // pattern slot → surah number
}

// NewSurahIndex compiles the detection automaton.
func NewSurahIndex() (*SurahIndex, error) {
	var patterns []string
	var nums []int
	seen := make(map[string]struct{})
	add := func(p string, num int) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		patterns = append(patterns, p)
		nums = append(nums, num)
	}

	for i, name := range surahNames {
		num := i + 1
		forms := []string{arabic.Normalize(name)}
		if strings.HasPrefix(name, "ال") {
			bare := string([]rune(name)[2:])
			forms = append(forms, arabic.Normalize(bare))
		}
		for _, kw := range []string{"سورة", "سوره"} {
			for _, f := range forms {
				add(kw+" "+f, num)
			}
		}
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	return &SurahIndex{ac: ac, bySlot: nums}, nil
}

// Detect returns the surah number a question explicitly names, trying a
// numeric reference first and the name automaton second. ok is false when
// no reference in the range 1..114 is present.
func (ix *SurahIndex) Detect(question string) (num int, ok bool) {
	if m := surahNumberPattern.FindStringSubmatch(question); m != nil {
		token := strings.Trim(m[1], " ‏‎")
		if allDigits.MatchString(token) {
			n := 0
			for _, r := range arabicIndicDigits.Replace(token) {
				n = n*10 + int(r-'0')
				if n > 114 {
					break
				}
			}
			if n >= 1 && n <= 114 {
				return n, true
			}
		}
	}

	normalized := arabic.Normalize(question)
	haystack := []byte(normalized)
	matches := ix.ac.FindAllOverlapping(haystack)

	// Earliest match wins; on shared starts the longest name does, so
	// الحجرات is never mistaken for الحج.
	best := -1
	for i, m := range matches {
		if !wordBoundary(normalized, m.End) {
			continue
		}
		if best == -1 ||
			m.Start < matches[best].Start ||
			(m.Start == matches[best].Start && m.End > matches[best].End) {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return ix.bySlot[matches[best].PatternID], true
}

// wordBoundary reports whether the byte offset end sits at the edge of an
// Arabic word, so a name never matches inside a longer word.
func wordBoundary(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !unicode.Is(unicode.Arabic, r)
}

var (
	defaultSurahIndex     *SurahIndex
	defaultSurahIndexErr  error
	defaultSurahIndexOnce sync.Once
)

// Surah is the package-level convenience around a lazily built shared
// index.
func Surah(question string) (int, bool) {
	defaultSurahIndexOnce.Do(func() {
		defaultSurahIndex, defaultSurahIndexErr = NewSurahIndex()
	})
	if defaultSurahIndexErr != nil {
		return 0, false
	}
	return defaultSurahIndex.Detect(question)
}
