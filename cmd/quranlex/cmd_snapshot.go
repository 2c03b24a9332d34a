package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tameem1/quranlex/internal/store"
	"github.com/Tameem1/quranlex/pkg/corpus"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Pack the JSONL corpora into a single SQLite snapshot",
	Long: `Reads the three JSONL corpora named in the config and writes them into
one SQLite database. An engine configured with "source: snapshot" then loads
from that file instead of the JSONL trio.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "", "Snapshot path (default: the config snapshot_path)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	tokens, err := readCorpusFile(cfg.Corpus.MorphologyPath, corpus.ReadTokens)
	if err != nil {
		return err
	}
	roots, err := readCorpusFile(cfg.Corpus.RootsPath, corpus.ReadRootEntries)
	if err != nil {
		return err
	}
	words, err := readCorpusFile(cfg.Corpus.DictionaryPath, corpus.ReadDictionaryEntries)
	if err != nil {
		return err
	}

	out := snapshotOut
	if out == "" {
		out = cfg.Corpus.SnapshotPath
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	s, err := store.NewWithDSN(out)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveTokens(tokens); err != nil {
		return err
	}
	if err := s.SaveRootEntries(roots); err != nil {
		return err
	}
	if err := s.SaveDictionary(words); err != nil {
		return err
	}
	counts, err := s.Counts()
	if err != nil {
		return err
	}
	logger.Info("Snapshot written",
		zap.String("path", out),
		zap.Int("tokens", counts.Tokens),
		zap.Int("roots", counts.Roots),
		zap.Int("dictionary", counts.Dictionary))
	fmt.Printf("✅ Snapshot %s holds %d tokens, %d roots, %d dictionary entries\n",
		out, counts.Tokens, counts.Roots, counts.Dictionary)
	return nil
}

func readCorpusFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f, path)
}
