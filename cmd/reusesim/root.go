package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sarchlab/reusesim/timing/latency"
	"github.com/sarchlab/reusesim/timing/reuse"
)

// options is the resolved configuration shared by all subcommands.
type options struct {
	reuseConfig  *reuse.Config
	timingConfig *latency.TimingConfig
	log          zerolog.Logger
	stdout       io.Writer
	stderr       io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("reusesim")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	opts := &options{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "reusesim",
		Short: "Instruction reuse buffer simulator",
		Long: `reusesim replays instruction traces through a timing core that keeps a
FIFO instruction reuse buffer, and reports hits, evictions and the execution
cycles saved by reusing results.

Traces are JSON-lines files with one instruction per line:
  {"pc":4096,"class":"int_alu","operands":[5,10],"results":[15]}

Every flag can also be set through a REUSESIM_<FLAG> environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			return opts.load(v)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to reuse buffer configuration JSON file")
	flags.String("timing-config", "", "Path to timing configuration JSON file")
	flags.Int("capacity", 0, "Reuse buffer entries (overrides the config file)")
	flags.Int("max-results", 0, "Largest result count recorded per instruction (overrides the config file)")
	flags.BoolP("verbose", "v", false, "Verbose output")

	root.AddCommand(
		newRunCmd(opts),
		newSweepCmd(opts, v),
		newGenCmd(opts),
	)

	return root
}

// load resolves configuration files, flag overrides and the logger.
func (o *options) load(v *viper.Viper) error {
	level := zerolog.InfoLevel
	if v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	o.log = zerolog.New(zerolog.ConsoleWriter{Out: o.stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	o.reuseConfig = reuse.DefaultConfig()
	if path := v.GetString("config"); path != "" {
		config, err := reuse.LoadConfig(path)
		if err != nil {
			return err
		}
		o.reuseConfig = config
		o.log.Debug().Str("path", path).Msg("loaded reuse config")
	}
	if v.IsSet("capacity") {
		o.reuseConfig.Capacity = v.GetInt("capacity")
	}
	if v.IsSet("max-results") {
		o.reuseConfig.MaxResults = v.GetInt("max-results")
	}
	if err := o.reuseConfig.Validate(); err != nil {
		return fmt.Errorf("invalid reuse config: %w", err)
	}

	o.timingConfig = latency.DefaultTimingConfig()
	if path := v.GetString("timing-config"); path != "" {
		config, err := latency.LoadConfig(path)
		if err != nil {
			return err
		}
		o.timingConfig = config
		o.log.Debug().Str("path", path).Msg("loaded timing config")
	}
	if err := o.timingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid timing config: %w", err)
	}

	return nil
}
