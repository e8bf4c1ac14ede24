package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darkclainer/bilex"
	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/translator"
)

// withTranslator opens translator described by configuration and closes it
// after fn returns.
func withTranslator(cmd *cobra.Command, v *viper.Viper, fn func(tr *translator.Translator) error) error {
	logger, err := newLogger(v)
	if err != nil {
		return err
	}
	defer logger.Sync() // nolint:errcheck // stderr can not be synced on some systems

	var conf bilex.Config
	if err := v.Unmarshal(&conf); err != nil {
		return fmt.Errorf("error while unmarshaling config: %w", err)
	}
	tr, err := bilex.Open(cmd.Context(), &conf, logger)
	if err != nil {
		return err
	}
	defer tr.Close(cmd.Context())
	return fn(tr)
}

func newTranslateCommand(v *viper.Viper) *cobra.Command {
	var (
		language string
		sentence bool
	)
	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate word or sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withTranslator(cmd, v, func(tr *translator.Translator) error {
				direction, err := tr.Direction(language)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if sentence || len(args) > 1 {
					fmt.Fprintln(out, tr.TranslateSentence(cmd.Context(), text, direction).Translation)
					return nil
				}
				word := tr.Lookup(text, direction)
				if word.NotFound {
					fmt.Fprintf(out, "%q not found in dictionary\n", text)
					if len(word.Suggestions) != 0 {
						fmt.Fprintf(out, "did you mean: %s\n", strings.Join(word.Suggestions, ", "))
					}
					return nil
				}
				for _, sense := range word.Senses {
					fmt.Fprintf(out, "%s (%s)\n", direction.Translated(sense), sense.PartOfSpeech)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&language, "lang", "l", "", "language of the text, source language if empty")
	cmd.Flags().BoolVarP(&sentence, "sentence", "s", false, "translate text as a sentence")
	return cmd
}

func newSuggestCommand(v *viper.Viper) *cobra.Command {
	var (
		language string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Suggest dictionary words for prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTranslator(cmd, v, func(tr *translator.Translator) error {
				direction, err := tr.Direction(language)
				if err != nil {
					return err
				}
				for _, suggestion := range tr.Suggest(args[0], direction, limit) {
					fmt.Fprintln(cmd.OutOrStdout(), suggestion)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&language, "lang", "l", "", "language of the prefix, source language if empty")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of suggestions, configured limit if zero")
	return cmd
}

func newStatsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dictionary statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTranslator(cmd, v, func(tr *translator.Translator) error {
				stats := tr.Statistics()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "source words:  %d\n", stats.SourceWords)
				fmt.Fprintf(out, "target words:  %d\n", stats.TargetWords)
				fmt.Fprintf(out, "total entries: %d\n", stats.TotalEntries)
				return nil
			})
		},
	}
}

func newParseCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse lexicon and print entries as JSON lines",
		Long: `Parse lexicon file, or standard input if file is omitted or '-', and print one JSON entry per line.
Format is taken from --format, otherwise detected by file extension. Standard input defaults to text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := lexicon.Format(v.GetString("lexicon.format"))
			var input io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("can not open file %s: %w", args[0], err)
				}
				defer file.Close()
				input = file
				if format == lexicon.FormatAuto {
					format = lexicon.DetectFormat(args[0])
				}
			}
			entries, err := lexicon.ParseFormat(input, format)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			for i := range entries {
				if err := encoder.Encode(&entries[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
