package cmd

import (
	"fmt"
	"sort"

	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/texture"
	"github.com/spf13/cobra"
)

var (
	templateName string
	seed         uint64
)

func init() {
	for _, c := range []*cobra.Command{texturizeCmd, renderCmd} {
		c.Flags().StringVarP(&templateName, "template", "t", "", "texture template; random among applicable ones when empty")
		c.Flags().Uint64Var(&seed, "seed", 0, "seed for template choice")
	}
	rootCmd.AddCommand(texturizeCmd)
}

var texturizeCmd = &cobra.Command{
	Use:   "texturize [file]",
	Short: "Expands chord events (duration,notes,intervals CSV) into texture sub-events",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := readEvents(cmd, args)
		if err != nil {
			return err
		}
		subs, failed := newEngine(cmd, seed).ApplyAll(events.items, templateName)
		if err := events.report("event", failed); err != nil {
			return err
		}
		return texture.WriteCSV(cmd.OutOrStdout(), subs)
	},
}

func readEvents(cmd *cobra.Command, args []string) (rows[model.ChordEvent], error) {
	in, err := openInput(cmd, args)
	if err != nil {
		return rows[model.ChordEvent]{}, err
	}
	defer in.Close()
	items, bad, err := texture.ReadEvents(in)
	return rows[model.ChordEvent]{items: items, bad: bad}, err
}

// rows holds the parsed rows of an input table. Rows that did not parse
// are kept as failures indexed by data row.
type rows[T any] struct {
	items []T
	bad   []model.EventError
}

// row maps an index into items back to its data row.
func (r rows[T]) row(i int) int {
	for _, b := range r.bad {
		if b.Index <= i {
			i++
		}
	}
	return i
}

// report merges the parse failures with failures indexed into items and
// reports them all by data row.
func (r rows[T]) report(kind string, failed []model.EventError) error {
	all := append([]model.EventError(nil), r.bad...)
	for _, f := range failed {
		all = append(all, model.EventError{Index: r.row(f.Index), Err: f.Err})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return reportFailures(kind, all, len(r.items)+len(r.bad))
}

// reportFailures logs per-item failures. It only fails the command when
// nothing at all succeeded.
func reportFailures(kind string, failed []model.EventError, total int) error {
	log := logging.Default()
	for _, f := range failed {
		log.Warn("skipped "+kind, logging.Fields{kind: f.Index, "error": f.Err.Error()})
	}
	if total > 0 && len(failed) == total {
		return fmt.Errorf("all %d %ss failed", total, kind)
	}
	if len(failed) > 0 {
		log.Info("done with failures", logging.Fields{"failed": len(failed), "total": total})
	}
	return nil
}
