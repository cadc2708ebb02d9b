package cli

import (
	"github.com/lacquerai/jsonl-split/internal/config"
	"github.com/lacquerai/jsonl-split/internal/engine"
	"github.com/lacquerai/jsonl-split/internal/execcontext"
	"github.com/lacquerai/jsonl-split/internal/metrics"
	"github.com/lacquerai/jsonl-split/internal/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// splitOptions holds the flags that only make sense on the command line.
type splitOptions struct {
	input  string
	train  string
	valid  string
	test   string
	dryRun bool
}

func (o *splitOptions) bindFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.Flags()
	f.StringVar(&o.input, "input", "", "input JSONL file")
	f.StringVar(&o.train, "train", "", "output file for the training split")
	f.StringVar(&o.valid, "valid", "", "output file for the validation split")
	f.StringVar(&o.test, "test", "", "output file for the test split")
	f.Int64("seed", 0, "random seed for a reproducible shuffle")
	f.Float64("train-ratio", 0.8, "proportion of records in the training split")
	f.Float64("valid-ratio", 0.15, "proportion of records in the validation split")
	f.String("metrics-file", "", "write Prometheus metrics to this file after a successful split")
	f.BoolVar(&o.dryRun, "dry-run", false, "compute the split without writing any files")

	for _, name := range []string{"input", "train", "valid", "test"} {
		_ = cmd.MarkFlagRequired(name)
		_ = cmd.MarkFlagFilename(name, "jsonl")
	}

	_ = v.BindPFlag(config.KeySeed, f.Lookup("seed"))
	_ = v.BindPFlag(config.KeyTrainRatio, f.Lookup("train-ratio"))
	_ = v.BindPFlag(config.KeyValidRatio, f.Lookup("valid-ratio"))
	_ = v.BindPFlag(config.KeyMetricsFile, f.Lookup("metrics-file"))
}

func (o *splitOptions) request(cfg *config.Config) engine.Request {
	return engine.Request{
		Input: o.input,
		Outputs: engine.Outputs{
			Train: o.train,
			Valid: o.valid,
			Test:  o.test,
		},
		Ratios: cfg.Ratios(),
		Seed:   cfg.Seed,
		DryRun: o.dryRun,
	}
}

func runSplit(cmd *cobra.Command, v *viper.Viper, opts *splitOptions) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	runCtx := execcontext.RunContext{
		Context: cmd.Context(),
		StdOut:  cmd.OutOrStdout(),
		StdErr:  cmd.ErrOrStderr(),
	}

	runner := engine.NewRunner(nil)
	if showProgress(cmd, cfg) {
		runner.SetListener(engine.NewProgressTracker(style.NewSpinner(runCtx.StdErr)))
	}

	result, err := runner.Run(runCtx, opts.request(cfg))
	if err != nil {
		return err
	}

	if cfg.MetricsFile != "" && !result.DryRun {
		recorder := metrics.NewRecorder()
		recorder.Observe(result)
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Debug().Str("path", cfg.MetricsFile).Msg("Wrote metrics file")
	}

	return printResult(runCtx.StdOut, cfg, result)
}

// showProgress reports whether a spinner should run on stderr. Structured
// output and quiet mode never show one.
func showProgress(cmd *cobra.Command, cfg *config.Config) bool {
	if cfg.Quiet || cfg.Output != config.OutputText {
		return false
	}
	return style.TestMode() || style.IsTerminal(cmd.ErrOrStderr())
}
