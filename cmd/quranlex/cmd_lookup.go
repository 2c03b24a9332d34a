package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tameem1/quranlex/pkg/arabic"
	"github.com/Tameem1/quranlex/pkg/dispatch"
	"github.com/Tameem1/quranlex/pkg/question"
)

var (
	lookupSurah int
	askType     string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Run retrieval operations against the loaded engine",
}

var lookupNormalizeCmd = &cobra.Command{
	Use:   "normalize [text]",
	Short: "Print the canonical form of an Arabic word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(arabic.Normalize(args[0]))
		return nil
	},
}

var lookupMatchCmd = &cobra.Command{
	Use:   "match [word]",
	Short: "Locate a word in the morphology corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		res, note := e.MatchWord(args[0])
		fmt.Println(note)
		if res != nil {
			fmt.Printf("kind=%s surah=%d ayah=%d word_index=%d\n",
				res.Kind, res.Word.Surah, res.Word.Ayah, res.Word.WordIndex)
		}
		return nil
	},
}

var lookupRootCmd = &cobra.Command{
	Use:   "root [root]",
	Short: "Look up a triliteral root in the glossary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		entry, note := e.LookupRoot(args[0])
		fmt.Println(note)
		if entry != nil {
			out, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}
		return nil
	},
}

var lookupDefineCmd = &cobra.Command{
	Use:   "define [word]",
	Short: "Look up a word in the general Arabic dictionary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		entry, note := e.LookupDictionary(args[0])
		fmt.Println(note)
		if entry != nil {
			fmt.Println(entry.Definition)
		}
		return nil
	},
}

var lookupAyahsCmd = &cobra.Command{
	Use:   "ayahs [word]",
	Short: "List every ayah containing the word or its root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		verses := e.ExtractAyahs(args[0], lookupSurah)
		if len(verses) == 0 {
			fmt.Println("No ayahs found.")
			return nil
		}
		for _, v := range verses {
			fmt.Printf("%d:%d  %s\n", v.Surah, v.Ayah, v.Text)
		}
		return nil
	},
}

var lookupDispatchCmd = &cobra.Command{
	Use:   "dispatch [question_type] [target]",
	Short: "Run a question-type pipeline and print the retrieval bundle",
	Long: "Runs the named step pipeline against the target word and prints the\n" +
		"assembled bundle as JSON, keys in retrieval order.\n\nQuestion types:\n  " +
		strings.Join(dispatch.Slugs(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		return printBundleJSON(e.Dispatch(args[0], args[1], lookupSurah))
	},
}

var lookupAskCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a free-form Arabic question",
	Long: `Extracts the target word and any surah reference from the question text,
then runs the question-type pipeline against them.

Example:
  quranlex lookup ask "ما معنى كلمة العهن في القرآن؟"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, ok := question.Target(args[0])
		if !ok {
			return fmt.Errorf("no target word found in question")
		}
		surah, _ := question.Surah(args[0])
		e, err := newEngine(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("target=%s surah=%d type=%s\n", target, surah, askType)
		return printBundleJSON(e.Dispatch(askType, target, surah))
	},
}

func printBundleJSON(b *dispatch.Bundle) error {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	lookupAyahsCmd.Flags().IntVar(&lookupSurah, "surah", 0, "Restrict to one surah (1-114, 0 = all)")
	lookupDispatchCmd.Flags().IntVar(&lookupSurah, "surah", 0, "Restrict to one surah (1-114, 0 = all)")
	lookupAskCmd.Flags().StringVar(&askType, "type", "meaning_word", "Question type slug")

	lookupCmd.AddCommand(lookupNormalizeCmd)
	lookupCmd.AddCommand(lookupMatchCmd)
	lookupCmd.AddCommand(lookupRootCmd)
	lookupCmd.AddCommand(lookupDefineCmd)
	lookupCmd.AddCommand(lookupAyahsCmd)
	lookupCmd.AddCommand(lookupDispatchCmd)
	lookupCmd.AddCommand(lookupAskCmd)
}
