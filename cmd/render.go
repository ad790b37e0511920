package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/midi"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Texturizes chord events and writes one MIDI file per event",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := readEvents(cmd, args)
		if err != nil {
			return err
		}
		if err := util.EnsureDir(cfg.OutDir); err != nil {
			return err
		}

		engine := newEngine(cmd, seed)
		log := logging.Default()
		var failed []model.EventError
		for i, ev := range events.items {
			subs, err := engine.Apply(ev, templateName)
			if err == nil {
				var path string
				path, err = renderEvent(subs)
				if err == nil {
					log.Debug("rendered", logging.Fields{"event": events.row(i), "path": path})
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
			}
			if err != nil {
				failed = append(failed, model.EventError{Index: i, Err: err})
			}
		}
		return events.report("event", failed)
	},
}

func renderEvent(subs []model.SubEvent) (string, error) {
	s, err := midi.Render(subs, midi.RenderOptions{BPM: cfg.BPM})
	if err != nil {
		return "", err
	}
	path := filepath.Join(cfg.OutDir, uuid.New().String()+".mid")
	return path, midi.WriteFile(path, s)
}
