package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/vidstat/internal/integration"
	"github.com/idelchi/vidstat/internal/vidstat"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		flagOpts   = vidstat.DefaultOptions()
		directory  string
		configPath string
		initConfig bool
	)

	cmd := &cobra.Command{
		Use:   "vidstat [flags] [directory]",
		Short: "Report duration and size statistics of a video collection",
		Long: heredoc.Doc(`
			vidstat scans a directory tree for video files, measures the duration and
			size of each one and groups them into five equal-width duration categories:
			Super Short, Short, Medium, Long and Very Long.

			Durations are read with an external media tool (mediainfo or ffprobe) which
			must be installed. Files whose duration cannot be read are skipped and
			counted; use --verbose to see how many.

			The most frequent words and word pairs in the file names are listed below
			the table. Use --cloud to also draw them as a word cloud image.
		`),
		Example: heredoc.Doc(`
			vidstat ~/Videos
			vidstat -d /mnt/media -t 4 -n 20 --verbose
			vidstat --probe ffprobe --cloud words.png ~/Videos
			vidstat --init > vidstat.yaml
		`),
		Version:       c.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := vidstat.DefaultOptions()

			if configPath != "" {
				loaded, err := vidstat.LoadConfig(configPath)
				if err != nil {
					return err
				}

				options = loaded
			}

			overlay(&options, flagOpts, cmd.Flags())

			if initConfig {
				rendered, err := integration.Render(options, integration.LookupTools())
				if err != nil {
					return fmt.Errorf("rendering starter config: %w", err)
				}

				fmt.Fprint(cmd.OutOrStdout(), rendered)

				return nil
			}

			path, err := resolveDirectory(directory, args)
			if err != nil {
				return err
			}

			options.Path = path

			if err := options.Validate(); err != nil {
				return err
			}

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringVarP(&directory, "directory", "d", "", "Directory to scan for video files")
	flags.IntVarP(&flagOpts.Workers, "threads", "t", flagOpts.Workers, "Maximum number of concurrent probe calls")
	flags.IntVarP(&flagOpts.TopN, "topn", "n", flagOpts.TopN, "Number of top title words to report (0 disables word analysis)")
	flags.BoolVarP(&flagOpts.Verbose, "verbose", "v", false, "Report files without a recognizable stream")
	flags.StringSliceVarP(&flagOpts.Extensions, "ext", "x", flagOpts.Extensions, "Case-sensitive video file suffixes")
	flags.StringSliceVarP(&flagOpts.Excludes, "exclude", "e", nil, "Regex patterns to exclude")
	flags.IntVar(&flagOpts.Depth, "depth", 0, "Maximum traversal depth (0=unlimited)")
	flags.StringVarP(&flagOpts.Output, "output", "o", flagOpts.Output, "Output format: table or json")
	flags.StringVar(&flagOpts.ProbeTool, "probe", flagOpts.ProbeTool, "Media inspection tool: mediainfo or ffprobe")
	flags.DurationVar(&flagOpts.ProbeTimeout, "timeout", flagOpts.ProbeTimeout, "Time limit for a single probe call (0=none)")
	flags.StringVar(&flagOpts.CloudPath, "cloud", "", "Write a word cloud PNG to this file")
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.BoolVar(&flagOpts.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&initConfig, "init", "i", false, "Output a starter configuration file")

	return cmd
}

// overlay copies the explicitly set flags from src into dst.
//
//nolint:cyclop // One branch per flag
func overlay(dst *vidstat.Options, src vidstat.Options, flags *pflag.FlagSet) {
	if flags.Changed("threads") {
		dst.Workers = src.Workers
	}

	if flags.Changed("topn") {
		dst.TopN = src.TopN
	}

	if flags.Changed("verbose") {
		dst.Verbose = src.Verbose
	}

	if flags.Changed("ext") {
		dst.Extensions = src.Extensions
	}

	if flags.Changed("exclude") {
		dst.Excludes = src.Excludes
	}

	if flags.Changed("depth") {
		dst.Depth = src.Depth
	}

	if flags.Changed("output") {
		dst.Output = src.Output
	}

	if flags.Changed("probe") {
		dst.ProbeTool = src.ProbeTool
	}

	if flags.Changed("timeout") {
		dst.ProbeTimeout = src.ProbeTimeout
	}

	if flags.Changed("cloud") {
		dst.CloudPath = src.CloudPath
	}

	if flags.Changed("debug") {
		dst.Debug = src.Debug
	}
}

// resolveDirectory picks the directory from the positional argument or --directory.
func resolveDirectory(flag string, args []string) (string, error) {
	switch {
	case len(args) == 1 && flag != "":
		return "", fmt.Errorf("%w: directory given both as argument and with --directory", vidstat.ErrValidation)
	case len(args) == 1:
		return args[0], nil
	case flag != "":
		return flag, nil
	default:
		return "", errors.New("a directory to scan is required")
	}
}
