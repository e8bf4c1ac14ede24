package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/darkclainer/bilex"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "bilex",
		Short: "Bilingual dictionary translator",
		Long: `bilex translates words and sentences between two languages using
a curated bilingual lexicon, with fuzzy fallback for unknown words.

Examples:
  bilex translate water                 # senses of a single word
  bilex translate --sentence "hello water"
  bilex translate --lang borana akkam   # translate from the target language
  bilex suggest wa                      # words starting with "wa"
  bilex parse lexicon.txt               # print parsed entries as JSON`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file")
	flags.String("lexicon", "", "path to lexicon file, embedded lexicon is used if empty")
	flags.String("format", "", "lexicon format: text or html, detected by extension if empty")
	flags.String("log-level", "error", "log level")
	flags.Bool("neural", false, "use neural translator for sentences")
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("lexicon.path", flags.Lookup("lexicon"))
	_ = v.BindPFlag("lexicon.format", flags.Lookup("format"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("neural.enabled", flags.Lookup("neural"))

	rootCmd.AddCommand(
		newTranslateCommand(v),
		newSuggestCommand(v),
		newStatsCommand(v),
		newParseCommand(v),
	)
	return rootCmd
}

func initConfig(v *viper.Viper) error {
	bilex.SetDefaults(v)
	v.SetEnvPrefix("BILEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configPath := v.GetString("config"); configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("can not read config: %w", err)
		}
	}
	return nil
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	zapConf := zap.NewDevelopmentConfig()
	level, err := zap.ParseAtomicLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	zapConf.Level = level
	zapConf.OutputPaths = []string{"stderr"}
	return zapConf.Build()
}
