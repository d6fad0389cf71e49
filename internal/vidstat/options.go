package vidstat

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultTopN is the default number of title words reported.
	DefaultTopN = 10
	// DefaultProbeTimeout bounds a single probe call.
	DefaultProbeTimeout = 2 * time.Minute
)

// DefaultExtensions contains the video suffixes scanned when none are configured.
//
//nolint:gochecknoglobals // Config constant
var DefaultExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".wmv"}

// Outputs lists the supported report formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{"table", "json"}

// Options configures a video analysis run and CLI behavior.
type Options struct {
	// Path is the directory to scan.
	Path string `yaml:"-"`
	// Extensions are the case-sensitive file suffixes treated as videos.
	Extensions []string `yaml:"extensions"`
	// Excludes contains regex patterns to exclude.
	Excludes []string `yaml:"excludes"`
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int `yaml:"depth"`
	// Workers is the number of concurrent probe calls.
	Workers int `yaml:"workers"`
	// TopN is the number of title words to report (0 disables word analysis).
	TopN int `yaml:"top_n"`
	// ProbeTool names the media inspection tool (mediainfo or ffprobe).
	ProbeTool string `yaml:"probe"`
	// ProbeTimeout bounds each probe call (0=no timeout).
	ProbeTimeout time.Duration `yaml:"-"`
	// Output represents output format (table or json).
	Output string `yaml:"output"`
	// CloudPath is where the word cloud PNG is written (empty=disabled).
	CloudPath string `yaml:"cloud"`
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration `yaml:"-"`
	// Verbose enables the diagnostic summary.
	Verbose bool `yaml:"verbose"`
	// Debug indicates whether debug output is enabled.
	Debug bool `yaml:"debug"`

	// Prober overrides the prober built from ProbeTool.
	Prober Prober `yaml:"-"`
}

// DefaultOptions returns Options with the defaults for every setting.
func DefaultOptions() Options {
	return Options{
		Extensions:   slices.Clone(DefaultExtensions),
		Workers:      runtime.NumCPU(),
		TopN:         DefaultTopN,
		ProbeTool:    ToolMediaInfo,
		ProbeTimeout: DefaultProbeTimeout,
		Output:       "table",
	}
}

// Validate reports the first invalid setting, wrapped in ErrValidation.
func (o Options) Validate() error {
	if o.Workers <= 0 {
		return fmt.Errorf("%w: worker count must be positive, got %d", ErrValidation, o.Workers)
	}

	if o.TopN < 0 {
		return fmt.Errorf("%w: top word count cannot be negative, got %d", ErrValidation, o.TopN)
	}

	if o.Depth < 0 {
		return fmt.Errorf("%w: depth cannot be negative", ErrValidation)
	}

	if o.ProbeTimeout < 0 {
		return fmt.Errorf("%w: probe timeout cannot be negative", ErrValidation)
	}

	if !slices.Contains(Outputs, o.Output) {
		return fmt.Errorf("%w: invalid output format %q: must be one of %v", ErrValidation, o.Output, Outputs)
	}

	if o.Prober == nil && !slices.Contains(Tools, o.ProbeTool) {
		return fmt.Errorf("%w: unknown probe tool %q: must be one of %v", ErrValidation, o.ProbeTool, Tools)
	}

	if len(o.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrValidation)
	}

	for _, p := range o.Excludes {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: compiling exclusion pattern %q: %w", ErrValidation, p, err)
		}
	}

	return nil
}

// fileConfig mirrors Options for YAML decoding, with durations as strings.
type fileConfig struct {
	Options `yaml:",inline"`

	ProbeTimeout string `yaml:"timeout"`
}

// LoadConfig reads YAML settings from path on top of DefaultOptions.
// A missing file yields the defaults without error; a malformed file is an error.
func LoadConfig(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}

	if err != nil {
		return opts, fmt.Errorf("reading config file: %w", err)
	}

	cfg := fileConfig{Options: opts}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return opts, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	opts = cfg.Options

	if cfg.ProbeTimeout != "" {
		timeout, err := time.ParseDuration(cfg.ProbeTimeout)
		if err != nil {
			return opts, fmt.Errorf("invalid timeout format %q: %w", cfg.ProbeTimeout, err)
		}

		opts.ProbeTimeout = timeout
	}

	return opts, nil
}
