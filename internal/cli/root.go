package cli

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/joho/godotenv"
	"github.com/lacquerai/jsonl-split/internal/config"
	"github.com/lacquerai/jsonl-split/internal/style"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// globalOptions holds flags that are not routed through viper.
type globalOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.Configure(v)

	global := &globalOptions{}
	split := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "jsonl-split",
		Short: "Split a JSONL dataset into training, validation and test files",
		Long: `jsonl-split shuffles the lines of a line-delimited JSON file and writes them
to three files: training, validation and test.

Each line is treated as an opaque record. The training file receives
floor(n * train-ratio) records, the validation file floor(n * valid-ratio),
and the test file everything that is left. Pass --seed to make the split
reproducible.

Ratios are not validated: if train-ratio and valid-ratio add up to more than 1,
the later subsets simply receive fewer (or no) records.`,
		Example: `
  jsonl-split --input data.jsonl --train train.jsonl --valid valid.jsonl --test test.jsonl
  jsonl-split --input data.jsonl --train tr.jsonl --valid va.jsonl --test te.jsonl --seed 42
  jsonl-split --input data.jsonl --train tr.jsonl --valid va.jsonl --test te.jsonl \
      --train-ratio 0.9 --valid-ratio 0.05 --output json`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, global.cfgFile, cmd.ErrOrStderr()); err != nil {
				return err
			}
			initLogging(v, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, v, split)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&global.cfgFile, "config", "", "config file (default is $HOME/.jsonl-split/config.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error, disabled)")
	pf.String("output", "text", "output format (text, json, yaml)")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.BoolP("verbose", "v", false, "verbose output")

	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyOutput, pf.Lookup("output"))
	_ = v.BindPFlag(config.KeyQuiet, pf.Lookup("quiet"))
	_ = v.BindPFlag(config.KeyVerbose, pf.Lookup("verbose"))

	split.bindFlags(cmd, v)

	cmd.AddCommand(newVersionCmd(v), newSchemaCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fang.Execute(ctx, rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// The working directory itself is not searched.
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jsonl-split"))
		}
		v.AddConfigPath(".jsonl-split")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	err := v.ReadInConfig()
	switch {
	case err == nil:
		if !v.GetBool(config.KeyQuiet) {
			fmt.Fprintf(stderr, "Using config file: %s\n", v.ConfigFileUsed())
		}
		return nil
	case cfgFile != "":
		return fmt.Errorf("failed to read config file: %w", err)
	default:
		// No config file in the search path is fine.
		return nil
	}
}

// initLogging configures the global logger
func initLogging(v *viper.Viper, stderr io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch v.GetString(config.KeyLogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if v.GetString(config.KeyOutput) == config.OutputText {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(stderr).With().Timestamp().Logger()
	}
}

// getVersion returns the version information
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}
