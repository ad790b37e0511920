package cmd

import (
	"github.com/jsphweid/harmonet/annotation"
	"github.com/spf13/cobra"
)

var header annotation.Header

func init() {
	annotateCmd.Flags().StringVar(&header.Title, "title", "", "piece title")
	annotateCmd.Flags().StringVar(&header.Composer, "composer", "", "composer")
	annotateCmd.Flags().StringVar(&header.Analyst, "analyst", "", "analyst credit")
	rootCmd.AddCommand(annotateCmd)
}

var annotateCmd = &cobra.Command{
	Use:   "annotate [file]",
	Short: "Writes predicted frames as a RomanText analysis",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, err := readFrames(cmd, args)
		if err != nil {
			return err
		}
		vocab, err := loadVocabulary(cfg)
		if err != nil {
			return err
		}
		anns, failed := annotation.Annotate(newResolver(vocab), frames.items)
		if err := frames.report("frame", failed); err != nil {
			return err
		}
		return annotation.WriteRomanText(cmd.OutOrStdout(), header, anns)
	},
}
