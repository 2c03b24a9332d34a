// Package ingest converts the raw corpus sources into the JSONL files the
// indices load: the Buckwalter-style Quranic morphology TSV and the Lisan
// al-Arab plain-text dumps.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Tameem1/quranlex/pkg/corpus"
)

const maxLineSize = 1 << 20

// tsvHeader is the column banner some corpus downloads carry.
const tsvHeader = "LOCATION\tFORM\tTAG\tFEATURES"

var (
	rootFeature  = regexp.MustCompile(`ROOT:([^|]+)`)
	lemmaFeature = regexp.MustCompile(`LEM:([^|]+)`)

	// Short vowels, tanwin, shadda and sukun. Lisan root keys are fully
	// bare, one step further than the runtime normalizer goes.
	diacritics = regexp.MustCompile(`[\x{064B}-\x{0652}]`)

	// A Lisan entry opens with a line holding nothing but the root and a
	// trailing colon or Arabic semicolon. Section headings like
	// "فصل الهمزة" have no trailing colon and fall through.
	lisanHeader = regexp.MustCompile(`^([\x{0621}-\x{064A}\x{064B}-\x{0652}]{1,10})[:\x{061B}]$`)
)

// LisanEntry is one root article from a Lisan al-Arab dump.
type LisanEntry struct {
	Root       string `json:"root"`
	RootRaw    string `json:"root_raw"`
	Entry      string `json:"entry"`
	SourceFile string `json:"source_file"`
}

// ParseMorphology reads a morphology TSV file into corpus tokens, in file
// order.
func ParseMorphology(path string) ([]corpus.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &corpus.LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return ParseMorphologyReader(f, path)
}

// ParseMorphologyReader parses TSV content. Each data line is
// "s:a:w:t \t form \t tag \t features"; the location may be wrapped in
// parentheses. Blank lines, comment lines and the column banner are
// skipped. name is used in error reporting only.
func ParseMorphologyReader(r io.Reader, name string) ([]corpus.Token, error) {
	var tokens []corpus.Token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") || line == tsvHeader {
			continue
		}
		tok, err := parseTokenLine(line)
		if err != nil {
			return nil, &corpus.LoadError{Path: name, Line: lineNo, Err: err}
		}
		tokens = append(tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, &corpus.LoadError{Path: name, Line: lineNo + 1, Err: err}
	}
	return tokens, nil
}

func parseTokenLine(line string) (corpus.Token, error) {
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) < 4 {
		return corpus.Token{}, fmt.Errorf("want 4 tab-separated fields, got %d", len(fields))
	}
	ref := strings.Trim(fields[0], "()")
	parts := strings.Split(ref, ":")
	if len(parts) != 4 {
		return corpus.Token{}, fmt.Errorf("bad location %q", fields[0])
	}
	nums := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return corpus.Token{}, fmt.Errorf("bad location %q: %v", fields[0], err)
		}
		nums[i] = n
	}
	feats := fields[3]
	return corpus.Token{
		Surah:      nums[0],
		Ayah:       nums[1],
		WordIndex:  nums[2],
		TokenIndex: nums[3],
		Surface:    fields[1],
		POS:        fields[2],
		Features:   feats,
		Root:       firstGroup(rootFeature, feats),
		Lemma:      firstGroup(lemmaFeature, feats),
	}, nil
}

func firstGroup(p *regexp.Regexp, s string) string {
	if m := p.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// ParseLisan reads one or more Lisan al-Arab text dumps. Entries keep their
// file order; text before the first root header is discarded.
func ParseLisan(paths ...string) ([]LisanEntry, error) {
	var entries []LisanEntry
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, &corpus.LoadError{Path: path, Err: err}
		}
		chunk, err := ParseLisanReader(f, filepath.Base(path))
		f.Close()
		if err != nil {
			return nil, err
		}
		entries = append(entries, chunk...)
	}
	return entries, nil
}

// ParseLisanReader parses one dump. source names the file in the emitted
// entries and in errors.
func ParseLisanReader(r io.Reader, source string) ([]LisanEntry, error) {
	var entries []LisanEntry
	var root string
	var buf []string
	flush := func() {
		if root == "" || len(buf) == 0 {
			return
		}
		entries = append(entries, LisanEntry{
			Root:       stripDiacritics(root),
			RootRaw:    root,
			Entry:      strings.TrimSpace(strings.Join(buf, "\n")),
			SourceFile: source,
		})
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if m := lisanHeader.FindStringSubmatch(line); m != nil {
			flush()
			root = m[1]
			buf = buf[:0]
			continue
		}
		if root != "" {
			buf = append(buf, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &corpus.LoadError{Path: source, Line: lineNo + 1, Err: err}
	}
	flush()
	return entries, nil
}

func stripDiacritics(s string) string {
	return diacritics.ReplaceAllString(s, "")
}

// WriteTokensJSONL writes tokens one JSON object per line, preserving
// order.
func WriteTokensJSONL(w io.Writer, tokens []corpus.Token) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range tokens {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}

// WriteLisanJSONL writes Lisan entries one JSON object per line.
func WriteLisanJSONL(w io.Writer, entries []LisanEntry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
