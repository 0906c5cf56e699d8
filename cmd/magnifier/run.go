package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Emeline-1/magnifier/internal/config"
	"github.com/Emeline-1/magnifier/internal/driver"
	"github.com/Emeline-1/magnifier/internal/ingress"
	"github.com/Emeline-1/magnifier/internal/observation"
	"github.com/Emeline-1/magnifier/internal/output"
	"github.com/Emeline-1/magnifier/internal/sampler"
	"github.com/Emeline-1/magnifier/internal/telemetry"
)

func runSimulate(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		fileCfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		mergeConfig(&cfg, fileCfg)
	}
	cfg.ApplyDefaults()

	logger := newLogger()
	if err := cfg.Validate(); err != nil {
		logger.ConfigurationError(err)
		return err
	}

	var metrics *telemetry.Metrics
	if metricsAddr != "" {
		metrics = telemetry.NewMetrics()
		go func() {
			http.Handle("/metrics", metrics.Handler())
			_ = http.ListenAndServe(metricsAddr, nil)
		}()
	}

	store, err := observation.Open(cfg.InputPath)
	if err != nil {
		logger.IOError(err)
		return err
	}
	defer store.Close()
	store.OnMalformed = logger.MalformedRecord

	col, ok := ingress.ColumnFor(cfg.NBorder)
	if !ok {
		err := fmt.Errorf("unsupported border count %d", cfg.NBorder)
		logger.ConfigurationError(err)
		return err
	}
	var mapper ingress.Mapper
	if cfg.Persistent {
		mapper = ingress.PersistentMapper{Col: col}
	} else {
		mapper = ingress.RandomMapper{Col: col}
	}
	if cfg.PermutationPct >= 0 {
		// The permutation mapper needs the full prefix population up
		// front; a real deployment would derive it from a prefix
		// inventory file. Absent one, permutation is skipped.
		logger.Info("permutation requested but no prefix inventory wired, skipping", "pct", cfg.PermutationPct)
	}

	smp := sampler.New(cfg.NBorder, cfg.Frequency, cfg.Seed)

	out, err := output.Create(cfg.OutputPath)
	if err != nil {
		logger.IOError(err)
		return err
	}

	d := driver.New(store, mapper, smp, cfg, logger, metrics, out)
	if err := d.Run(); err != nil {
		logger.IOError(err)
		return err
	}

	if err := out.Close(); err != nil {
		logger.IOError(err)
		return err
	}

	logger.Info("simulation complete", "output", cfg.OutputPath)
	return nil
}

// mergeConfig layers base (flag defaults/explicit flags) over file
// values for three fields only: InputPath when base leaves it empty,
// OutputPath when base leaves it empty or at the results.csv default,
// and Seed when base.Seed is 0. Every other field of file is ignored.
func mergeConfig(base *config.Config, file config.Config) {
	if base.InputPath == "" {
		base.InputPath = file.InputPath
	}
	if base.OutputPath == "" || base.OutputPath == "results.csv" {
		if file.OutputPath != "" {
			base.OutputPath = file.OutputPath
		}
	}
	if base.Seed == 0 {
		base.Seed = file.Seed
	}
}
