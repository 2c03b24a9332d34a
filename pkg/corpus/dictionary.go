package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Tameem1/quranlex/pkg/arabic"
)

// DictionaryEntry is one word/definition pair of the Arabic dictionary.
type DictionaryEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Dictionary maps normalized headwords to their definitions. Duplicate
// headwords keep the first definition.
type Dictionary struct {
	entries []*DictionaryEntry
	byWord  map[string]*DictionaryEntry
}

// NewDictionary builds a dictionary from already-decoded entries.
func NewDictionary(entries []DictionaryEntry) *Dictionary {
	d := &Dictionary{byWord: make(map[string]*DictionaryEntry, len(entries))}
	for i := range entries {
		e := &entries[i]
		d.entries = append(d.entries, e)
		key := arabic.Normalize(e.Word)
		if key == "" {
			continue
		}
		if _, ok := d.byWord[key]; !ok {
			d.byWord[key] = e
		}
	}
	return d
}

// LoadDictionary reads a dictionary JSONL file.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	entries, err := ReadDictionaryEntries(f, path)
	if err != nil {
		return nil, err
	}
	return NewDictionary(entries), nil
}

// ReadDictionaryEntries decodes dictionary JSONL into raw entries,
// preserving file order.
func ReadDictionaryEntries(r io.Reader, name string) ([]DictionaryEntry, error) {
	var entries []DictionaryEntry
	err := forEachLine(r, name, func(line []byte) error {
		var e DictionaryEntry
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

// Lookup finds the definition of a word, normalizing the query the same way
// the headwords were normalized. A nil entry means the word has no
// definition.
func (d *Dictionary) Lookup(word string) (*DictionaryEntry, string) {
	entry, ok := d.byWord[arabic.Normalize(word)]
	if !ok {
		return nil, fmt.Sprintf("Definition for '%s' not found.", word)
	}
	return entry, fmt.Sprintf("✅ Definition for '%s' found.", word)
}

// Entries returns every entry in file order. Callers must not mutate the
// result.
func (d *Dictionary) Entries() []*DictionaryEntry { return d.entries }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }
