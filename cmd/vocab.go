package cmd

import (
	"os"

	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/vocabulary"
	"github.com/spf13/cobra"
)

var asGob bool

func init() {
	exportCmd.Flags().BoolVar(&asGob, "gob", false, "write the binary cache format")
	vocabCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(vocabCmd)
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Chord vocabulary tools",
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Writes the active chord vocabulary (diatonic unless --vocab is set)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadVocabulary(cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
			logging.Default().Info("exporting vocabulary", logging.Fields{"path": args[0], "sets": t.Len()})
		}
		if asGob {
			return vocabulary.SaveGob(w, t)
		}
		return vocabulary.SaveJSON(w, t)
	},
}
