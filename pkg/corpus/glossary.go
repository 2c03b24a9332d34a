package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tameem1/quranlex/pkg/arabic"
)

// RootEntry is one record of the classical root glossary. The Arabic field
// names mirror the column headers of the source workbook.
type RootEntry struct {
	Seq          int    `json:"#"`
	Root         string `json:"root"`
	RootStripped string `json:"root_stripped"`
	Gloss        string `json:"مفردات لسان العرب"`
	Synonyms     string `json:"المرادفات"`
	Antonyms     string `json:"الأضداد"`
	Nuance       string `json:"الفرق الدلالي مع مرادف على الأقل"`
}

// lookupKey returns the canonical key an entry is indexed under. The
// diacritic-free root column is preferred over the raw one.
func (e *RootEntry) lookupKey() string {
	if e.RootStripped != "" {
		return arabic.NormalizeRoot(e.RootStripped)
	}
	return arabic.NormalizeRoot(e.Root)
}

// Glossary is the root glossary indexed by canonicalized root. When two
// entries canonicalize to the same root the earlier one wins.
type Glossary struct {
	entries []*RootEntry
	byRoot  map[string]*RootEntry
	source  string
}

// NewGlossary builds a glossary from already-decoded entries.
func NewGlossary(entries []RootEntry) *Glossary {
	return newGlossary(entries, "root_analysis.jsonl")
}

func newGlossary(entries []RootEntry, source string) *Glossary {
	g := &Glossary{
		byRoot: make(map[string]*RootEntry, len(entries)),
		source: source,
	}
	for i := range entries {
		e := &entries[i]
		g.entries = append(g.entries, e)
		key := e.lookupKey()
		if key == "" {
			continue
		}
		if _, ok := g.byRoot[key]; !ok {
			g.byRoot[key] = e
		}
	}
	return g
}

// LoadGlossary reads a root glossary JSONL file.
func LoadGlossary(path string) (*Glossary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	entries, err := ReadRootEntries(f, path)
	if err != nil {
		return nil, err
	}
	return newGlossary(entries, filepath.Base(path)), nil
}

// ReadRootEntries decodes glossary JSONL into raw entries, preserving file
// order.
func ReadRootEntries(r io.Reader, name string) ([]RootEntry, error) {
	var entries []RootEntry
	err := forEachLine(r, name, func(line []byte) error {
		var e RootEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Lookup finds the glossary entry for a root. Both the stored keys and the
// query pass through the same root canonicalization, so vocalized, hamza-
// seated and tāʾ marbūṭa spellings all resolve. A nil entry means the root
// is not documented; the note narrates the search either way.
func (g *Glossary) Lookup(root string) (*RootEntry, string) {
	key := arabic.NormalizeRoot(root)
	note := fmt.Sprintf("🔍 Searching for root '%s' in %s", key, g.source)
	entry, ok := g.byRoot[key]
	if !ok {
		return nil, note + fmt.Sprintf("\n❌ No matching root found for '%s' in %s", key, g.source)
	}
	seq := "?"
	if entry.Seq > 0 {
		seq = fmt.Sprintf("%d", entry.Seq)
	}
	return entry, note + fmt.Sprintf("\n✅ Found matching root '%s' in entry #%s", key, seq)
}

// Entries returns every entry in file order. Callers must not mutate the
// result.
func (g *Glossary) Entries() []*RootEntry { return g.entries }

// Len returns the number of entries.
func (g *Glossary) Len() int { return len(g.entries) }
