package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jsphweid/harmonet/annotation"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/roman"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolves predicted frames into Roman numerals and chord labels",
	Long: `Reads frames as CSV with the columns
measure,beat,bass,tenor,alto,soprano,pcset,local_key,tonicized_key
and prints one resolved row per frame.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, err := readFrames(cmd, args)
		if err != nil {
			return err
		}
		vocab, err := loadVocabulary(cfg)
		if err != nil {
			return err
		}
		res, failed := newResolver(vocab).ResolveAll(frames.items)
		skip := make(map[int]bool, len(failed))
		for _, f := range failed {
			skip[f.Index] = true
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "frame\tmeasure\tbeat\tkey\tfigure\tchord")
		for i, rc := range res {
			if skip[i] {
				continue
			}
			f := frames.items[i]
			fmt.Fprintf(tw, "%d\t%d\t%v\t%s\t%s\t%s\n", frames.row(i), f.Measure, f.Beat,
				roman.FormatKey(f.LocalKey), roman.FormatRomanNumeral(rc.RomanNumeral), roman.FormatChordLabel(rc.ChordLabel))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		return frames.report("frame", failed)
	},
}

func readFrames(cmd *cobra.Command, args []string) (rows[model.Frame], error) {
	in, err := openInput(cmd, args)
	if err != nil {
		return rows[model.Frame]{}, err
	}
	defer in.Close()
	items, bad, err := annotation.ReadFrames(in)
	return rows[model.Frame]{items: items, bad: bad}, err
}
