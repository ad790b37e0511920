package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jsphweid/harmonet/chord"
	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/midi"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/roman"
	"github.com/jsphweid/harmonet/util"
	"github.com/jsphweid/harmonet/vocabulary"
	"github.com/spf13/cobra"
)

var (
	analyzeKey string
	maxFiles   int
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeKey, "key", "k", "", "key of the piece, e.g. C, f#, B-")
	analyzeCmd.Flags().IntVar(&maxFiles, "max", 0, "analyze at most this many files of a directory (0 means all)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze MIDIFILE|DIR",
	Short: "Labels every simultaneity of a MIDI file (or a directory of them) in one key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyFlag(analyzeKey)
		if err != nil {
			return err
		}
		paths, err := midiPaths(args[0])
		if err != nil {
			return err
		}
		vocab, err := loadVocabulary(cfg)
		if err != nil {
			return err
		}
		resolver := newResolver(vocab)

		var failed []model.EventError
		for i, path := range paths {
			if len(paths) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "== %v\n", path)
			}
			if err := analyzeFile(cmd.OutOrStdout(), path, key, vocab, resolver); err != nil {
				failed = append(failed, model.EventError{Index: i, Err: fmt.Errorf("%v: %w", path, err)})
			}
		}
		return reportFailures("file", failed, len(paths))
	},
}

func midiPaths(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}
	paths, err := util.GatherPaths(arg, []string{".mid", ".midi"}, maxFiles)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no MIDI files under %v", arg)
	}
	return paths, nil
}

func analyzeFile(w io.Writer, path string, key pitch.Key, vocab vocabulary.ChordVocabulary, resolver *roman.Resolver) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	sims := chord.Simultaneities(s)
	if len(sims) == 0 {
		return fmt.Errorf("no notes")
	}

	log := logging.Default()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "time\tnotes\tfigure\tchord")
	for i, sim := range sims {
		rc, err := resolver.Resolve(roman.QueryFromFrame(chord.Frame(sim, key, vocab)))
		if err != nil {
			log.Debug("unlabelled simultaneity", logging.Fields{"path": path, "simultaneity": i, "error": err.Error()})
			fmt.Fprintf(tw, "%v\t%v\t?\t?\n", offsetDuration(sim), chord.CreateChordKey(sim.Notes))
			continue
		}
		rc = roman.Display(rc)
		fmt.Fprintf(tw, "%v\t%v\t%s\t%s\n", offsetDuration(sim), chord.CreateChordKey(sim.Notes), rc.RomanNumeral, rc.ChordLabel)
	}
	return tw.Flush()
}

func offsetDuration(sim model.Simultaneity) time.Duration {
	return time.Duration(sim.Offset) * time.Microsecond
}
