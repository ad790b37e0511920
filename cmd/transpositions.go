package cmd

import (
	"errors"
	"fmt"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/transpose"
	"github.com/spf13/cobra"
)

var (
	split      string
	framesPath string
)

func init() {
	transpositionsCmd.Flags().StringVar(&split, "split", model.SplitTraining, "dataset split; only training is transposed")
	transpositionsCmd.Flags().StringVar(&framesPath, "frames", "", "take the keys from a frame CSV instead of the arguments")
	rootCmd.AddCommand(transpositionsCmd)
}

var transpositionsCmd = &cobra.Command{
	Use:   "transpositions [KEY...]",
	Short: "Lists the transpositions that keep every key in the vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		var keys []pitch.Key
		var err error
		if framesPath != "" {
			frames, err := readFrames(cmd, []string{framesPath})
			if err != nil {
				return err
			}
			if err := frames.report("frame", nil); err != nil {
				return err
			}
			keys = transpose.KeysUsed(frames.items)
		} else if keys, err = pitch.ParseKeys(args); err != nil {
			return err
		}
		if len(keys) == 0 {
			return errors.New("no keys given")
		}
		sel, err := newSelector()
		if err != nil {
			return err
		}
		for _, iv := range sel.ForSplit(split, keys) {
			fmt.Fprintf(cmd.OutOrStdout(), "%v\t%d\n", iv, iv.Shift())
		}
		return nil
	},
}

func newSelector() (*transpose.Selector, error) {
	ivs, err := cfg.IntervalClasses()
	if err != nil {
		return nil, err
	}
	keys, err := cfg.TranspositionKeys()
	if err != nil {
		return nil, err
	}
	return transpose.NewSelector(ivs, keys), nil
}
