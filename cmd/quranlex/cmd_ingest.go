package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tameem1/quranlex/pkg/ingest"
)

var ingestOutDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Convert raw corpus sources into the JSONL files the engine loads",
}

var ingestMorphologyCmd = &cobra.Command{
	Use:   "morphology [corpus.txt]",
	Short: "Parse a morphology TSV dump into quran_morphology.jsonl",
	Long: `Parses the tab-separated Qur'anic morphology dump. Each line carries a
surah:ayah:word:token location, the token surface, its part of speech and a
feature string; ROOT: and LEM: features become dedicated fields.

Example:
  quranlex ingest morphology quranic-corpus-morphology-0.4.txt --out clean_data`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestMorphology,
}

var ingestLisanCmd = &cobra.Command{
	Use:   "lisan [files...]",
	Short: "Parse Lisan al-Arab text dumps into lisan_al_arab.jsonl",
	Long: `Parses one or more plain-text Lisan al-Arab volumes. A line holding a
short vocalized root followed by a colon opens a new entry; everything up to
the next header belongs to that entry. Root keys are stored diacritics-free.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngestLisan,
}

func init() {
	ingestCmd.PersistentFlags().StringVar(&ingestOutDir, "out", "clean_data", "Output directory for JSONL files")
	ingestCmd.AddCommand(ingestMorphologyCmd)
	ingestCmd.AddCommand(ingestLisanCmd)
}

func runIngestMorphology(cmd *cobra.Command, args []string) error {
	tokens, err := ingest.ParseMorphology(args[0])
	if err != nil {
		return err
	}
	out := filepath.Join(ingestOutDir, "quran_morphology.jsonl")
	if err := writeJSONL(out, func(w io.Writer) error {
		return ingest.WriteTokensJSONL(w, tokens)
	}); err != nil {
		return err
	}
	logger.Info("Morphology ingested",
		zap.String("input", args[0]),
		zap.Int("tokens", len(tokens)),
		zap.String("output", out))
	fmt.Printf("✅ Wrote %d tokens to %s\n", len(tokens), out)
	return nil
}

func runIngestLisan(cmd *cobra.Command, args []string) error {
	entries, err := ingest.ParseLisan(args...)
	if err != nil {
		return err
	}
	out := filepath.Join(ingestOutDir, "lisan_al_arab.jsonl")
	if err := writeJSONL(out, func(w io.Writer) error {
		return ingest.WriteLisanJSONL(w, entries)
	}); err != nil {
		return err
	}
	logger.Info("Lisan al-Arab ingested",
		zap.Int("files", len(args)),
		zap.Int("entries", len(entries)),
		zap.String("output", out))
	fmt.Printf("✅ Wrote %d entries to %s\n", len(entries), out)
	return nil
}

func writeJSONL(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
