// Package engine assembles the corpora and the retrieval components into
// one process-wide object. Build an Engine once at startup, then share it:
// the indices are immutable after load and every method is safe for
// concurrent use.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Tameem1/quranlex/internal/config"
	"github.com/Tameem1/quranlex/internal/metrics"
	"github.com/Tameem1/quranlex/internal/store"
	"github.com/Tameem1/quranlex/pkg/arabic"
	"github.com/Tameem1/quranlex/pkg/ayah"
	"github.com/Tameem1/quranlex/pkg/corpus"
	"github.com/Tameem1/quranlex/pkg/dispatch"
	"github.com/Tameem1/quranlex/pkg/matcher"
)

// Engine holds the three corpora and the retrieval components built on
// them.
type Engine struct {
	cfg *config.Config
	log *zap.Logger

	idx        *corpus.Index
	glossary   *corpus.Glossary
	dictionary *corpus.Dictionary

	cache      *matcher.Cache
	extractor  *ayah.Extractor
	dispatcher *dispatch.Dispatcher
}

// New loads the corpora selected by cfg and wires the retrieval
// components. The context bounds the load phase only.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{cfg: cfg, log: log}

	start := time.Now()
	var err error
	if cfg.Corpus.Source == config.SourceSnapshot {
		err = e.loadSnapshot()
	} else {
		err = e.loadJSONL(ctx)
	}
	if err != nil {
		return nil, err
	}
	if e.idx.TokenCount() == 0 {
		return nil, fmt.Errorf("morphology corpus at %q is empty", e.corpusLocation())
	}

	m := matcher.New(e.idx)
	e.cache, err = matcher.NewCache(m, cfg.Cache.Size, cfg.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("match cache: %w", err)
	}
	e.extractor = ayah.New(e.idx)
	e.dispatcher = dispatch.New(e.idx, e.cache, e.extractor, e.glossary, e.dictionary, log)
	e.dispatcher.SetSampleLimit(cfg.Dispatch.SampleLimit)

	metrics.CorpusTokens.Set(float64(e.idx.TokenCount()))
	metrics.CorpusWords.Set(float64(e.idx.WordCount()))
	metrics.GlossaryEntries.Set(float64(e.glossary.Len()))
	metrics.DictionaryEntries.Set(float64(e.dictionary.Len()))

	log.Info("engine ready",
		zap.String("source", cfg.Corpus.Source),
		zap.Int("tokens", e.idx.TokenCount()),
		zap.Int("words", e.idx.WordCount()),
		zap.Int("verses", e.idx.VerseCount()),
		zap.Int("glossary_entries", e.glossary.Len()),
		zap.Int("dictionary_entries", e.dictionary.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return e, nil
}

func (e *Engine) corpusLocation() string {
	if e.cfg.Corpus.Source == config.SourceSnapshot {
		return e.cfg.Corpus.SnapshotPath
	}
	return e.cfg.Corpus.MorphologyPath
}

// loadJSONL reads the three JSONL corpora concurrently.
func (e *Engine) loadJSONL(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		idx, err := corpus.Load(e.cfg.Corpus.MorphologyPath)
		if err != nil {
			return err
		}
		e.idx = idx
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		gl, err := corpus.LoadGlossary(e.cfg.Corpus.RootsPath)
		if err != nil {
			return err
		}
		e.glossary = gl
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		dict, err := corpus.LoadDictionary(e.cfg.Corpus.DictionaryPath)
		if err != nil {
			return err
		}
		e.dictionary = dict
		return nil
	})
	return g.Wait()
}

// loadSnapshot reads the three corpora from the SQLite snapshot.
func (e *Engine) loadSnapshot() error {
	s, err := store.NewWithDSN(e.cfg.Corpus.SnapshotPath)
	if err != nil {
		return err
	}
	defer s.Close()

	tokens, err := s.LoadTokens()
	if err != nil {
		return err
	}
	roots, err := s.LoadRootEntries()
	if err != nil {
		return err
	}
	words, err := s.LoadDictionary()
	if err != nil {
		return err
	}
	e.idx = corpus.New(tokens)
	e.glossary = corpus.NewGlossary(roots)
	e.dictionary = corpus.NewDictionary(words)
	return nil
}

// Normalize canonicalizes Arabic text the way every index key was
// canonicalized.
func (e *Engine) Normalize(text string) string { return arabic.Normalize(text) }

// MatchWord locates the verse word a query names, through the match cache.
func (e *Engine) MatchWord(query string) (*matcher.Result, string) {
	return e.cache.Match(query)
}

// LookupRoot fetches the glossary entry for a root.
func (e *Engine) LookupRoot(root string) (*corpus.RootEntry, string) {
	return e.glossary.Lookup(root)
}

// LookupDictionary fetches the dictionary definition of a word.
func (e *Engine) LookupDictionary(word string) (*corpus.DictionaryEntry, string) {
	return e.dictionary.Lookup(word)
}

// ExtractAyahs lists the verses containing a word, sorted by (surah, ayah).
// A surahFilter of zero scans the whole corpus.
func (e *Engine) ExtractAyahs(query string, surahFilter int) []ayah.Verse {
	return e.extractor.Extract(query, surahFilter)
}

// Dispatch runs the retrieval plan registered for a question type.
func (e *Engine) Dispatch(questionType, target string, surahFilter int) *dispatch.Bundle {
	return e.dispatcher.Dispatch(questionType, target, surahFilter)
}

// Index exposes the morphology index.
func (e *Engine) Index() *corpus.Index { return e.idx }

// Glossary exposes the root glossary.
func (e *Engine) Glossary() *corpus.Glossary { return e.glossary }

// Dictionary exposes the dictionary.
func (e *Engine) Dictionary() *corpus.Dictionary { return e.dictionary }

// CacheStats reports match-cache hits, misses and evictions.
func (e *Engine) CacheStats() (hits, misses, evictions uint64) {
	return e.cache.Stats()
}
