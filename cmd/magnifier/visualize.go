package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Emeline-1/magnifier/internal/observation"
	"github.com/Emeline-1/magnifier/internal/ingress"
	"github.com/Emeline-1/magnifier/internal/sentinel"
	"github.com/Emeline-1/magnifier/internal/visualize"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize <pkts.csv>",
	Short: "Render the sentinels found in a packet trace as an ASCII tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.ApplyDefaults()

		store, err := observation.Open(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		col, ok := ingress.ColumnFor(cfg.NBorder)
		if !ok {
			col = ingress.Col4
		}
		mapper := ingress.PersistentMapper{Col: col}

		var all []observation.Record
		for {
			w, err := store.Window(100000, false, cfg.NBorder, mapper)
			if err != nil {
				return err
			}
			if len(w.Pkts) == 0 {
				break
			}
			all = append(all, w.Pkts...)
		}

		sentinels := sentinel.Search(all, cfg.SearchStart, cfg.SearchEnd)
		visualize.Dump(os.Stdout, sentinels)
		return nil
	},
}
