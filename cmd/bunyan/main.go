package main

import (
	"bufio"
	"io"
	"os"

	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maximeborges/bunyan-view/pkg/conditions"
	"github.com/maximeborges/bunyan-view/pkg/config"
	"github.com/maximeborges/bunyan-view/pkg/record"
	"github.com/maximeborges/bunyan-view/pkg/render"
	"github.com/maximeborges/bunyan-view/pkg/stream"
	"github.com/maximeborges/bunyan-view/pkg/styles"
)

var version = "dev"

type options struct {
	output     string
	level      string
	condition  string
	timeMode   string
	strict     bool
	debug      bool
	color      bool
	noColor    bool
	configPath string
}

func main() {
	opts := options{}

	rootCmd := &cobra.Command{
		Use:     "bunyan [file...]",
		Short:   "Filter and pretty-print bunyan log files (NDJSON)",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.InitLoggerFromCobra(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cobra.CheckErr(logging.AddLoggingLayerToRootCommand(rootCmd, "bunyan"))

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "long", "Output format: long|short|simple|inspect|json|json-N")
	rootCmd.Flags().StringVarP(&opts.level, "level", "l", "", "Only show records at or above this level (name or number)")
	rootCmd.Flags().StringVarP(&opts.condition, "condition", "c", "", "JS expression filter; record bound as this/rec")
	rootCmd.Flags().StringVar(&opts.timeMode, "time", "utc", "Timestamp display: utc|local")
	rootCmd.Flags().BoolVar(&opts.strict, "strict", false, "Suppress all input lines that are not legal JSON")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "Emit per-line parse diagnostics on stderr")
	rootCmd.Flags().BoolVar(&opts.color, "color", false, "Colorize output even when stdout is not a terminal")
	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Never colorize output")
	rootCmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to rc file with default settings")

	cobra.CheckErr(rootCmd.Execute())
}

func run(cmd *cobra.Command, opts options, args []string) error {
	rc, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return err
	}
	log.Debug().Str("config", opts.configPath).Msg("rc file loaded")
	applyDefaults(cmd.Flags(), rc, &opts)

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() { _ = out.Flush() }()

	if len(args) == 0 {
		args = []string{"-"}
	}

	for _, path := range args {
		if err := processInput(out, cmd.ErrOrStderr(), path, cfg); err != nil {
			return err
		}
	}

	return nil
}

// applyDefaults fills in rc-file values for every flag the user did not set
// explicitly.
func applyDefaults(flags *pflag.FlagSet, rc *config.File, opts *options) {
	if !flags.Changed("output") && rc.Output != "" {
		opts.output = rc.Output
	}
	if !flags.Changed("level") && rc.Level != "" {
		opts.level = rc.Level
	}
	if !flags.Changed("condition") && rc.Condition != "" {
		opts.condition = rc.Condition
	}
	if !flags.Changed("time") && rc.Time != "" {
		opts.timeMode = rc.Time
	}
	if !flags.Changed("strict") && rc.Strict {
		opts.strict = true
	}
	if !flags.Changed("color") && !flags.Changed("no-color") {
		if rc.Color != nil {
			opts.color = *rc.Color
		} else {
			opts.color = isatty.IsTerminal(os.Stdout.Fd())
		}
	}
}

func buildConfig(opts options) (*render.Config, error) {
	format, indent, err := render.ParseFormat(opts.output)
	if err != nil {
		return nil, err
	}

	cfg := &render.Config{
		Format: format,
		Indent: indent,
		Strict: opts.strict,
		Debug:  opts.debug,
	}

	switch opts.timeMode {
	case "", "utc":
	case "local":
		cfg.LocalTime = true
	default:
		return nil, errors.Errorf("--time must be utc or local, got %q", opts.timeMode)
	}

	if opts.level != "" {
		lvl, err := record.ParseLevel(opts.level)
		if err != nil {
			return nil, err
		}
		cfg.Level = &lvl
	}

	if opts.condition != "" {
		pred, err := conditions.Compile(opts.condition)
		if err != nil {
			return nil, err
		}
		cfg.Condition = pred
		log.Debug().Str("condition", pred.String()).Msg("condition filter compiled")
	}

	if opts.color && !opts.noColor {
		theme := styles.DefaultTheme()
		cfg.Theme = &theme
	}

	return cfg, nil
}

func processInput(out io.Writer, errOut io.Writer, path string, cfg *render.Config) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		defer func() { _ = f.Close() }()
		r = f
		log.Debug().Str("file", path).Msg("reading log file")
	}

	return stream.Process(out, errOut, r, cfg)
}
