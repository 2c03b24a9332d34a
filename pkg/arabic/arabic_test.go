package arabic

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t ", ""},
		{"plain word untouched", "كتاب", "كتاب"},
		{"vocalization stripped", "كَتَبَ", "كتب"},
		{"sukun stripped", "يَكْتُبْ", "يكتب"},
		{"shadda kept", "ربّ", "ربّ"},
		{"shadda kept among harakat", "رَبِّ", "ربّ"},
		{"dagger alif promoted", "رحمٰن", "رحمان"},
		{"alif madda folded", "القرآن", "القران"},
		{"hamza below folded", "إيمان", "ايمان"},
		{"alif wasla folded", "ٱلكتاب", "الكتاب"},
		{"waw hamza folded", "مؤمن", "مومن"},
		{"yeh hamza folded", "بئر", "بير"},
		{"dotless yeh folded", "موسى", "موسي"},
		{"tatweel removed", "كتـــاب", "كتاب"},
		{"leading qat hamza kept", "أمر", "أمر"},
		{"leading qat hamza kept with harakat", "أَبَانَا", "أبانا"},
		{"interior qat hamza folded", "سأل", "سال"},
		{"bare alif start unchanged", "ابانا", "ابانا"},
		{"surrounding space trimmed", " الصبر ", "الصبر"},
		{"phrase keeps interior space", "بسم الله", "بسم الله"},
	}
	for _, tc := range cases {
		got := Normalize(tc.in)
		if got != tc.want {
			t.Errorf("%s: Normalize(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLeadingHamzaDistinct(t *testing.T) {
	// The seat on the first letter is meaningful and must survive.
	if Normalize("أبانا") == Normalize("ابانا") {
		t.Fatal("leading hamzat al-qat' was folded away")
	}
	if Normalize("أَبَانَا") != Normalize("أبانا") {
		t.Fatal("vocalized and bare spellings of the same word diverged")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"أَبَانَا", "القرآن", "رَبِّ", "رحمٰن", "ٱلَّذِينَ",
		"مؤمن", "موسى", "كتـــاب", "سأل", "بسم الله الرحمٰن الرحيم",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	f.Add("أَبَانَا")
	f.Add("ٱلرَّحْمَٰنِ")
	f.Add("يَـٰٓأَيُّهَا")
	f.Add("xyz")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize(%q): first pass %q, second pass %q", s, once, twice)
		}
	})
}

func TestNormalizeRoot(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"غفر", "غفر"},
		{"رحمة", "رحمه"},
		{"هَدَى", "هدي"},
		{"صلّة", "صلّه"},
	}
	for _, tc := range cases {
		if got := NormalizeRoot(tc.in); got != tc.want {
			t.Errorf("NormalizeRoot(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripShadda(t *testing.T) {
	if got := StripShadda("ربّ"); got != "رب" {
		t.Errorf("StripShadda(ربّ) = %q", got)
	}
	if got := StripShadda("رب"); got != "رب" {
		t.Errorf("StripShadda left a mark-free word changed: %q", got)
	}
}

func TestFirstLetter(t *testing.T) {
	if r := FirstLetter("سجد"); r != 'س' {
		t.Errorf("FirstLetter(سجد) = %q", r)
	}
	if r := FirstLetter(""); r != 0 {
		t.Errorf("FirstLetter of empty string = %q, want 0", r)
	}
}
