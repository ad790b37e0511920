package cmd

import (
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/transpose"
	"github.com/spf13/cobra"
)

var (
	chromaInterval string
	chromaShift    int
)

func init() {
	chromaCmd.Flags().StringVarP(&chromaInterval, "interval", "i", "", "interval class to transpose by, e.g. M2 or -m3")
	chromaCmd.Flags().IntVar(&chromaShift, "shift", 0, "semitone shift in [-11, 11], used when no interval is given")
	rootCmd.AddCommand(chromaCmd)
}

var chromaCmd = &cobra.Command{
	Use:   "chroma [file]",
	Short: "Transposes chroma feature frames (one CSV row per frame)",
	Long: `Circularly shifts the last 12 channels of every frame. Frames of exactly
12 channels are padded to 19 first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shift, err := chromaShiftFlag()
		if err != nil {
			return err
		}
		in, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer in.Close()
		m, err := transpose.ReadMatrix(in)
		if err != nil {
			return err
		}
		res, err := transpose.Frames(m, shift)
		if err != nil {
			return err
		}
		return transpose.WriteMatrix(cmd.OutOrStdout(), res)
	},
}

// chromaShiftFlag prefers --interval over --shift. A leading "-" on the
// interval transposes down.
func chromaShiftFlag() (int, error) {
	if chromaInterval == "" {
		return chromaShift, nil
	}
	name, down := chromaInterval, false
	if name[0] == '-' {
		name, down = name[1:], true
	}
	iv, err := pitch.ParseInterval(name)
	if err != nil {
		return 0, err
	}
	if down {
		return -iv.Shift(), nil
	}
	return iv.Shift(), nil
}
