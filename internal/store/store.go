// Package store persists the three corpora in a single SQLite snapshot.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/Tameem1/quranlex/pkg/corpus"
)

// Storer defines the interface for snapshot persistence.
type Storer interface {
	// Morphology corpus
	SaveTokens(tokens []corpus.Token) error
	LoadTokens() ([]corpus.Token, error)

	// Root glossary
	SaveRootEntries(entries []corpus.RootEntry) error
	LoadRootEntries() ([]corpus.RootEntry, error)

	// Dictionary
	SaveDictionary(entries []corpus.DictionaryEntry) error
	LoadDictionary() ([]corpus.DictionaryEntry, error)

	Counts() (Counts, error)
	Export() ([]byte, error)
	Import(data []byte) error
	Close() error
}

// Counts reports per-corpus row counts.
type Counts struct {
	Tokens     int `json:"tokens"`
	Roots      int `json:"roots"`
	Dictionary int `json:"dictionary"`
}

// SQLiteStore is the SQLite-backed snapshot store.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the snapshot tables. rowid preserves save order, and every
// reader selects ORDER BY rowid, so a loaded snapshot reproduces the JSONL
// file order the lexical matchers rely on.
const schema = `
-- Morphology tokens, one row per Buckwalter segment.
CREATE TABLE IF NOT EXISTS morphology_tokens (
    surah INTEGER NOT NULL,
    ayah INTEGER NOT NULL,
    word_index INTEGER NOT NULL,
    token_index INTEGER NOT NULL,
    surface TEXT NOT NULL,
    pos TEXT NOT NULL DEFAULT '',
    features TEXT NOT NULL DEFAULT '',
    root TEXT NOT NULL DEFAULT '',
    lemma TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tokens_word ON morphology_tokens(surah, ayah, word_index);
CREATE INDEX IF NOT EXISTS idx_tokens_root ON morphology_tokens(root) WHERE root <> '';

-- Root glossary rows. seq is the source spreadsheet row number.
CREATE TABLE IF NOT EXISTS root_entries (
    seq INTEGER NOT NULL DEFAULT 0,
    root TEXT NOT NULL DEFAULT '',
    root_stripped TEXT NOT NULL DEFAULT '',
    gloss TEXT NOT NULL DEFAULT '',
    synonyms TEXT NOT NULL DEFAULT '',
    antonyms TEXT NOT NULL DEFAULT '',
    nuance TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_root_entries_root ON root_entries(root_stripped);

-- Dictionary word/definition pairs.
CREATE TABLE IF NOT EXISTS dictionary_entries (
    word TEXT NOT NULL,
    definition TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_dictionary_word ON dictionary_entries(word);
`

// New creates an in-memory snapshot store.
func New() (*SQLiteStore, error) {
	return NewWithDSN(":memory:")
}

// NewWithDSN creates a store with a specific data source name. Use
// ":memory:" for in-memory or a file path for a persistent snapshot.
func NewWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database exists per connection; one connection keeps
	// one database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Morphology tokens
// =============================================================================

// SaveTokens replaces the stored morphology corpus.
func (s *SQLiteStore) SaveTokens(tokens []corpus.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceTokens(tokens)
}

func (s *SQLiteStore) replaceTokens(tokens []corpus.Token) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM morphology_tokens`); err != nil {
		return fmt.Errorf("clear morphology_tokens: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO morphology_tokens (surah, ayah, word_index, token_index, surface, pos, features, root, lemma)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, t := range tokens {
		if _, err := stmt.Exec(t.Surah, t.Ayah, t.WordIndex, t.TokenIndex,
			t.Surface, t.POS, t.Features, t.Root, t.Lemma); err != nil {
			return fmt.Errorf("insert token %d:%d:%d:%d: %w",
				t.Surah, t.Ayah, t.WordIndex, t.TokenIndex, err)
		}
	}
	return tx.Commit()
}

// LoadTokens returns the stored morphology corpus in save order.
func (s *SQLiteStore) LoadTokens() ([]corpus.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT surah, ayah, word_index, token_index, surface, pos, features, root, lemma
		FROM morphology_tokens ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	defer rows.Close()

	var tokens []corpus.Token
	for rows.Next() {
		var t corpus.Token
		if err := rows.Scan(&t.Surah, &t.Ayah, &t.WordIndex, &t.TokenIndex,
			&t.Surface, &t.POS, &t.Features, &t.Root, &t.Lemma); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// =============================================================================
// Root glossary
// =============================================================================

// SaveRootEntries replaces the stored root glossary.
func (s *SQLiteStore) SaveRootEntries(entries []corpus.RootEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceRootEntries(entries)
}

func (s *SQLiteStore) replaceRootEntries(entries []corpus.RootEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM root_entries`); err != nil {
		return fmt.Errorf("clear root_entries: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO root_entries (seq, root, root_stripped, gloss, synonyms, antonyms, nuance)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Seq, e.Root, e.RootStripped,
			e.Gloss, e.Synonyms, e.Antonyms, e.Nuance); err != nil {
			return fmt.Errorf("insert root entry %q: %w", e.Root, err)
		}
	}
	return tx.Commit()
}

// LoadRootEntries returns the stored glossary in save order.
func (s *SQLiteStore) LoadRootEntries() ([]corpus.RootEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT seq, root, root_stripped, gloss, synonyms, antonyms, nuance
		FROM root_entries ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("load root entries: %w", err)
	}
	defer rows.Close()

	var entries []corpus.RootEntry
	for rows.Next() {
		var e corpus.RootEntry
		if err := rows.Scan(&e.Seq, &e.Root, &e.RootStripped,
			&e.Gloss, &e.Synonyms, &e.Antonyms, &e.Nuance); err != nil {
			return nil, fmt.Errorf("scan root entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// Dictionary
// =============================================================================

// SaveDictionary replaces the stored dictionary.
func (s *SQLiteStore) SaveDictionary(entries []corpus.DictionaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceDictionary(entries)
}

func (s *SQLiteStore) replaceDictionary(entries []corpus.DictionaryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM dictionary_entries`); err != nil {
		return fmt.Errorf("clear dictionary_entries: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO dictionary_entries (word, definition) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Word, e.Definition); err != nil {
			return fmt.Errorf("insert dictionary entry %q: %w", e.Word, err)
		}
	}
	return tx.Commit()
}

// LoadDictionary returns the stored dictionary in save order.
func (s *SQLiteStore) LoadDictionary() ([]corpus.DictionaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT word, definition FROM dictionary_entries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	defer rows.Close()

	var entries []corpus.DictionaryEntry
	for rows.Next() {
		var e corpus.DictionaryEntry
		if err := rows.Scan(&e.Word, &e.Definition); err != nil {
			return nil, fmt.Errorf("scan dictionary entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// Counts / Export / Import
// =============================================================================

// Counts returns the number of rows stored per corpus.
func (s *SQLiteStore) Counts() (Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Counts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"morphology_tokens", &c.Tokens},
		{"root_entries", &c.Roots},
		{"dictionary_entries", &c.Dictionary},
	} {
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + q.table).Scan(q.dst); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return c, nil
}

type exportData struct {
	Tokens     []corpus.Token           `json:"tokens"`
	Roots      []corpus.RootEntry       `json:"roots"`
	Dictionary []corpus.DictionaryEntry `json:"dictionary"`
}

// Export serializes the whole snapshot as a single JSON document.
func (s *SQLiteStore) Export() ([]byte, error) {
	var data exportData
	var err error
	if data.Tokens, err = s.LoadTokens(); err != nil {
		return nil, fmt.Errorf("export tokens: %w", err)
	}
	if data.Roots, err = s.LoadRootEntries(); err != nil {
		return nil, fmt.Errorf("export roots: %w", err)
	}
	if data.Dictionary, err = s.LoadDictionary(); err != nil {
		return nil, fmt.Errorf("export dictionary: %w", err)
	}
	return json.Marshal(data)
}

// Import replaces the snapshot with a previously exported document.
func (s *SQLiteStore) Import(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var in exportData
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.replaceTokens(in.Tokens); err != nil {
		return fmt.Errorf("import tokens: %w", err)
	}
	if err := s.replaceRootEntries(in.Roots); err != nil {
		return fmt.Errorf("import roots: %w", err)
	}
	if err := s.replaceDictionary(in.Dictionary); err != nil {
		return fmt.Errorf("import dictionary: %w", err)
	}
	return nil
}

var _ Storer = (*SQLiteStore)(nil)
