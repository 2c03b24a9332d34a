package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Tameem1/quranlex/internal/config"
	"github.com/Tameem1/quranlex/internal/store"
	"github.com/Tameem1/quranlex/pkg/corpus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const morphologyJSONL = `{"surah":1,"ayah":2,"word_index":1,"token_index":1,"token":"ٱلْحَمْدُ","pos":"N","features":"STEM|POS:N|LEM:حَمْد|ROOT:حمد","root":"حمد","lemma":"حَمْد"}
{"surah":1,"ayah":2,"word_index":2,"token_index":1,"token":"لِلَّهِ","pos":"P","features":"PREFIX|l:P+"}
{"surah":22,"ayah":77,"word_index":1,"token_index":1,"token":"ٱسْجُدُوا","pos":"V","features":"STEM|POS:V|LEM:سَجَدَ|ROOT:سجد","root":"سجد","lemma":"سَجَدَ"}
{"surah":96,"ayah":19,"word_index":1,"token_index":1,"token":"وَٱسْجُدْ","pos":"V","features":"STEM|POS:V|LEM:سَجَدَ|ROOT:سجد","root":"سجد","lemma":"سَجَدَ"}
{"surah":103,"ayah":2,"word_index":1,"token_index":1,"token":"كَٱلْعِهْنِ","pos":"N","features":"STEM|POS:N|LEM:عِهْن|ROOT:عهن","root":"عهن","lemma":"عِهْن"}
`

const rootsJSONL = `{"#":1,"root":"حَمد","root_stripped":"حمد","مفردات لسان العرب":"الثناء بالجميل","المرادفات":"شكر","الأضداد":"ذم"}
{"#":2,"root":"عهن","root_stripped":"عهن","مفردات لسان العرب":"الصوف المصبوغ ألوانا","المرادفات":"صوف"}
`

const dictionaryJSONL = `{"word":"الحمد","definition":"الثناء الكامل"}
{"word":"عهن","definition":"الصوف المصبوغ"}
`

// testConfig writes the three fixture corpora into a temp dir and returns a
// config pointing at them.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, doc := range map[string]string{
		"quran_morphology.jsonl":  morphologyJSONL,
		"root_analysis.jsonl":     rootsJSONL,
		"arabic_dictionary.jsonl": dictionaryJSONL,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Default()
	cfg.Corpus.MorphologyPath = filepath.Join(dir, "quran_morphology.jsonl")
	cfg.Corpus.RootsPath = filepath.Join(dir, "root_analysis.jsonl")
	cfg.Corpus.DictionaryPath = filepath.Join(dir, "arabic_dictionary.jsonl")
	cfg.Cache.Size = 8
	return cfg
}

func TestEngineEntryPoints(t *testing.T) {
	e, err := New(context.Background(), testConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := e.Normalize("ٱلْقُرْآن"); got != "القران" {
		t.Errorf("Normalize = %q, want القران", got)
	}

	res, note := e.MatchWord("الحمد")
	if res == nil {
		t.Fatalf("MatchWord missed: %s", note)
	}
	if res.Word.Surah != 1 || res.Word.Ayah != 2 || res.Word.WordIndex != 1 {
		t.Errorf("MatchWord located %d:%d w%d", res.Word.Surah, res.Word.Ayah, res.Word.WordIndex)
	}
	if note != "✅ Match: S1:A2, word_index=1" {
		t.Errorf("note = %q", note)
	}

	entry, _ := e.LookupRoot("عهن")
	if entry == nil || entry.Seq != 2 {
		t.Errorf("LookupRoot(عهن) = %+v", entry)
	}

	def, _ := e.LookupDictionary("عهن")
	if def == nil || def.Definition != "الصوف المصبوغ" {
		t.Errorf("LookupDictionary(عهن) = %+v", def)
	}

	verses := e.ExtractAyahs("سجد", 0)
	if len(verses) != 2 || verses[0].Surah != 22 || verses[1].Surah != 96 {
		t.Errorf("ExtractAyahs(سجد) = %+v", verses)
	}

	b := e.Dispatch("meaning_word", "عهن", 0)
	if msg := b.ErrorMessage(); msg != "" {
		t.Fatalf("Dispatch error: %s", msg)
	}
	wantKeys := []string{
		"root_lookup_combined_note",
		"root_lookup_combined",
		"dictionary_lookup_note",
		"dictionary_lookup",
	}
	if diff := cmp.Diff(wantKeys, b.Keys()); diff != "" {
		t.Errorf("bundle keys (-want +got):\n%s", diff)
	}
}

func TestEngineCacheCounts(t *testing.T) {
	e, err := New(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.MatchWord("الحمد")
	e.MatchWord("الحمد")
	hits, misses, _ := e.CacheStats()
	if hits != 1 || misses != 1 {
		t.Errorf("cache stats = %d hits, %d misses; want 1, 1", hits, misses)
	}
}

func TestEngineSnapshotSource(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "quranlex.db")

	s, err := store.NewWithDSN(snap)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	tokens, err := corpus.ReadTokens(strings.NewReader(morphologyJSONL), "fixture")
	if err != nil {
		t.Fatalf("ReadTokens: %v", err)
	}
	roots, err := corpus.ReadRootEntries(strings.NewReader(rootsJSONL), "fixture")
	if err != nil {
		t.Fatalf("ReadRootEntries: %v", err)
	}
	words, err := corpus.ReadDictionaryEntries(strings.NewReader(dictionaryJSONL), "fixture")
	if err != nil {
		t.Fatalf("ReadDictionaryEntries: %v", err)
	}
	if err := s.SaveTokens(tokens); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRootEntries(roots); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDictionary(words); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Corpus.Source = config.SourceSnapshot
	cfg.Corpus.SnapshotPath = snap

	e, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New from snapshot: %v", err)
	}
	if e.Index().TokenCount() != 5 {
		t.Errorf("TokenCount = %d, want 5", e.Index().TokenCount())
	}
	res, _ := e.MatchWord("كالعهن")
	if res == nil || res.Word.Surah != 103 {
		t.Errorf("MatchWord(كالعهن) = %+v", res)
	}
}

func TestEngineMissingCorpusFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Corpus.MorphologyPath = filepath.Join(t.TempDir(), "absent.jsonl")

	_, err := New(context.Background(), cfg, zap.NewNop())
	var le *corpus.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *corpus.LoadError", err)
	}
}

func TestEngineEmptySnapshotFails(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "empty.db")
	s, err := store.NewWithDSN(snap)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Corpus.Source = config.SourceSnapshot
	cfg.Corpus.SnapshotPath = snap

	if _, err := New(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("New accepted an empty snapshot")
	}
}

func TestEngineConcurrentReads(t *testing.T) {
	e, err := New(context.Background(), testConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				e.MatchWord("الحمد")
				e.ExtractAyahs("سجد", 0)
				e.Dispatch("frequency_word_root", "سجد", 0)
			}
		}()
	}
	wg.Wait()
}
