package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/harmonet/config"
	"github.com/jsphweid/harmonet/constants"
	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/roman"
	"github.com/jsphweid/harmonet/texture"
	"github.com/jsphweid/harmonet/vocabulary"
	"github.com/spf13/cobra"
)

var (
	configPath string
	vocabPath  string
	verbose    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "harmonet",
	Short: "Roman numeral resolution and harmonic data augmentation",
	Long: `harmonet turns predicted SATB voices, keys and pitch-class sets into figured
Roman numerals and chord labels, and expands annotated chords into synthetic
textures and key-preserving transpositions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(os.Stderr)
		if verbose {
			log.SetLevel(logging.DebugLevel)
		}
		logging.SetDefault(log)

		required := cmd.Flags().Changed("config")
		loaded, err := config.Load(configPath, required)
		if err != nil {
			return err
		}
		if vocabPath != "" {
			loaded.Vocab = vocabPath
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.DefaultConfigFile, "TOML config file")
	rootCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "", "chord vocabulary file (.json or .gob)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// Run executes one command line against the given streams. Flag values
// persist between calls, so callers should pass every flag they rely on.
func Run(args []string, in io.Reader, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func loadVocabulary(c config.Config) (*vocabulary.Table, error) {
	if c.Vocab != "" {
		return vocabulary.Load(c.Vocab)
	}
	keys, err := c.TranspositionKeys()
	if err != nil {
		return nil, err
	}
	return vocabulary.Diatonic(keys), nil
}

func newResolver(vocab vocabulary.ChordVocabulary) *roman.Resolver {
	return roman.NewResolver(vocab, roman.WithLogger(logging.Default()))
}

// newEngine seeds the engine from the flag when given, otherwise from the
// config.
func newEngine(cmd *cobra.Command, seed uint64) *texture.Engine {
	if cmd.Flags().Changed("seed") {
		return texture.NewEngine(texture.WithRand(texture.NewSeeded(seed)))
	}
	if cfg.Seed != nil {
		return texture.NewEngine(texture.WithRand(texture.NewSeeded(*cfg.Seed)))
	}
	return texture.NewEngine()
}

// openInput opens the single optional file argument, or stdin.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("could not open input: %w", err)
	}
	return f, nil
}

func parseKeyFlag(token string) (pitch.Key, error) {
	if token == "" {
		return pitch.Key{}, fmt.Errorf("--key is required")
	}
	return pitch.ParseKey(token)
}
