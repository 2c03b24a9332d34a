package corpus

import (
	"errors"
	"strings"
	"testing"
)

// Two verses; word 1:1:1 arrives with its tokens out of order and a null
// root on the proclitic.
const morphologyFixture = `
{"surah":1,"ayah":1,"word_index":1,"token_index":2,"token":"سْمِ","pos":"N","features":"STEM|ROOT:سمو","root":"سمو","lemma":"اسم"}
{"surah":1,"ayah":1,"word_index":1,"token_index":1,"token":"بِ","pos":"P","features":"PREFIX","root":null,"lemma":null}
{"surah":1,"ayah":1,"word_index":2,"token_index":1,"token":"اللَّهِ","pos":"PN","features":"STEM|ROOT:اله","root":"اله","lemma":"الله"}
{"surah":1,"ayah":2,"word_index":1,"token_index":1,"token":"الْحَمْدُ","pos":"N","features":"STEM|ROOT:حمد|LEM:حَمْد","root":"حمد","lemma":"حَمْد"}
`

func loadFixture(t *testing.T) *Index {
	t.Helper()
	ix, err := LoadReader(strings.NewReader(morphologyFixture), "fixture.jsonl")
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	return ix
}

func TestIndexGrouping(t *testing.T) {
	ix := loadFixture(t)

	if got := ix.WordCount(); got != 3 {
		t.Fatalf("WordCount = %d, want 3", got)
	}
	if got := ix.TokenCount(); got != 4 {
		t.Errorf("TokenCount = %d, want 4", got)
	}
	if got := ix.VerseCount(); got != 2 {
		t.Errorf("VerseCount = %d, want 2", got)
	}

	wantOrder := []WordKey{
		{Surah: 1, Ayah: 1, WordIndex: 1},
		{Surah: 1, Ayah: 1, WordIndex: 2},
		{Surah: 1, Ayah: 2, WordIndex: 1},
	}
	for i, w := range ix.Words() {
		if w.Key() != wantOrder[i] {
			t.Errorf("Words()[%d].Key() = %+v, want %+v", i, w.Key(), wantOrder[i])
		}
	}
}

func TestIndexTokenOrderAndAnalysis(t *testing.T) {
	ix := loadFixture(t)

	w := ix.Word(WordKey{Surah: 1, Ayah: 1, WordIndex: 1})
	if w == nil {
		t.Fatal("word 1:1:1 missing")
	}
	if len(w.Tokens) != 2 || w.Tokens[0].TokenIndex != 1 || w.Tokens[1].TokenIndex != 2 {
		t.Fatalf("tokens not sorted by token_index: %+v", w.Tokens)
	}

	a := w.Analysis
	if a.Surface != "بِسْمِ" {
		t.Errorf("Surface = %q", a.Surface)
	}
	if a.SurfaceNorm != "بسم" {
		t.Errorf("SurfaceNorm = %q", a.SurfaceNorm)
	}
	if a.Root != "سمو" {
		t.Errorf("Root = %q, want the first non-empty token root", a.Root)
	}
	if a.RootInitial != 'س' {
		t.Errorf("RootInitial = %q", a.RootInitial)
	}
	// The first token carries no lemma, so the exact-lemma tier has
	// nothing to compare against.
	if a.FirstLemmaNorm != "" {
		t.Errorf("FirstLemmaNorm = %q, want empty", a.FirstLemmaNorm)
	}
	if len(a.LemmaNorms) != 1 || a.LemmaNorms[0] != "اسم" {
		t.Errorf("LemmaNorms = %v", a.LemmaNorms)
	}
	if !a.Variants.Contains("بسم") {
		t.Error("variants must contain the normalized surface")
	}
}

func TestVerseText(t *testing.T) {
	ix := loadFixture(t)
	if got := ix.VerseText(1, 1); got != "بِسْمِ اللَّهِ" {
		t.Errorf("VerseText(1,1) = %q", got)
	}
	if got := ix.VerseText(9, 9); got != "" {
		t.Errorf("VerseText of unknown verse = %q, want empty", got)
	}
}

func TestLoadReaderMalformedLine(t *testing.T) {
	content := `{"surah":1,"ayah":1,"word_index":1,"token_index":1,"token":"قل","pos":"V","features":""}
{"surah":1,"ayah":1,"word_index":2
`
	_, err := LoadReader(strings.NewReader(content), "bad.jsonl")
	if err == nil {
		t.Fatal("want error for malformed line")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error type %T, want *LoadError", err)
	}
	if le.Path != "bad.jsonl" || le.Line != 2 {
		t.Errorf("LoadError location = %s:%d, want bad.jsonl:2", le.Path, le.Line)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/morphology.jsonl")
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error type %T, want *LoadError", err)
	}
	if le.Line != 0 {
		t.Errorf("Line = %d, want 0 for unreadable file", le.Line)
	}
}
