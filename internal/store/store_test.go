package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Tameem1/quranlex/pkg/corpus"
)

func testTokens() []corpus.Token {
	// Deliberately not in mushaf order; the store must give back exactly
	// this sequence.
	return []corpus.Token{
		{Surah: 103, Ayah: 2, WordIndex: 1, TokenIndex: 1, Surface: "إِنَّ", POS: "ACC", Features: "STEM|POS:ACC"},
		{Surah: 1, Ayah: 2, WordIndex: 1, TokenIndex: 1, Surface: "الْحَمْدُ", POS: "N",
			Features: "STEM|POS:N|LEM:حَمْد|ROOT:حمد", Root: "حمد", Lemma: "حَمْد"},
		{Surah: 1, Ayah: 2, WordIndex: 2, TokenIndex: 1, Surface: "لِ", POS: "P", Features: "PREFIX|l:P+"},
	}
}

func TestSaveLoadTokens(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	want := testTokens()
	if err := s.SaveTokens(want); err != nil {
		t.Fatalf("SaveTokens: %v", err)
	}
	got, err := s.LoadTokens()
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.SaveTokens(testTokens()); err != nil {
		t.Fatalf("SaveTokens: %v", err)
	}
	replacement := testTokens()[:1]
	if err := s.SaveTokens(replacement); err != nil {
		t.Fatalf("SaveTokens (replace): %v", err)
	}
	got, err := s.LoadTokens()
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if len(got) != 1 || got[0].Surah != 103 {
		t.Errorf("got %d tokens, want the single replacement row", len(got))
	}
}

func TestGlossaryAndDictionaryRoundTrip(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	roots := []corpus.RootEntry{
		{Seq: 1, Root: "حَمد", RootStripped: "حمد", Gloss: "الثناء بالجميل", Synonyms: "شكر", Antonyms: "ذم"},
		{Seq: 2, Root: "سجد", RootStripped: "سجد", Gloss: "وضع الجبهة على الأرض"},
	}
	if err := s.SaveRootEntries(roots); err != nil {
		t.Fatalf("SaveRootEntries: %v", err)
	}
	gotRoots, err := s.LoadRootEntries()
	if err != nil {
		t.Fatalf("LoadRootEntries: %v", err)
	}
	if diff := cmp.Diff(roots, gotRoots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}

	words := []corpus.DictionaryEntry{
		{Word: "عهن", Definition: "الصوف المصبوغ"},
	}
	if err := s.SaveDictionary(words); err != nil {
		t.Fatalf("SaveDictionary: %v", err)
	}
	gotWords, err := s.LoadDictionary()
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if diff := cmp.Diff(words, gotWords); diff != "" {
		t.Errorf("dictionary mismatch (-want +got):\n%s", diff)
	}
}

func TestCounts(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	c, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if c != (Counts{}) {
		t.Errorf("fresh store counts = %+v, want zeros", c)
	}

	if err := s.SaveTokens(testTokens()); err != nil {
		t.Fatalf("SaveTokens: %v", err)
	}
	if err := s.SaveDictionary([]corpus.DictionaryEntry{{Word: "عهن", Definition: "صوف"}}); err != nil {
		t.Fatalf("SaveDictionary: %v", err)
	}
	c, err = s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if c.Tokens != 3 || c.Roots != 0 || c.Dictionary != 1 {
		t.Errorf("counts = %+v, want 3 tokens, 0 roots, 1 dictionary", c)
	}
}

func TestExportImport(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.SaveTokens(testTokens()); err != nil {
		t.Fatalf("SaveTokens: %v", err)
	}
	if err := s.SaveRootEntries([]corpus.RootEntry{{Seq: 1, Root: "حمد", RootStripped: "حمد"}}); err != nil {
		t.Fatalf("SaveRootEntries: %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Exported data is empty")
	}

	s2, err := New()
	if err != nil {
		t.Fatalf("Failed to create second store: %v", err)
	}
	defer s2.Close()

	if err := s2.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	c, err := s2.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if c.Tokens != 3 || c.Roots != 1 {
		t.Errorf("imported counts = %+v, want 3 tokens, 1 root", c)
	}
	got, err := s2.LoadTokens()
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if diff := cmp.Diff(testTokens(), got); diff != "" {
		t.Errorf("imported tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistentSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	s, err := NewWithDSN(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := s.SaveTokens(testTokens()); err != nil {
		t.Fatalf("SaveTokens: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewWithDSN(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadTokens()
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if diff := cmp.Diff(testTokens(), got); diff != "" {
		t.Errorf("reopened tokens mismatch (-want +got):\n%s", diff)
	}
}
