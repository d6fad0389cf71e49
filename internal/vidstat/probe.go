package vidstat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Supported probe tools.
const (
	ToolMediaInfo = "mediainfo"
	ToolFFProbe   = "ffprobe"
)

// Tools lists the supported probe tools.
//
//nolint:gochecknoglobals // Config constant
var Tools = []string{ToolMediaInfo, ToolFFProbe}

// bytesPerGB converts byte counts to decimal gigabytes.
const bytesPerGB = 1e9

// VideoRecord is the probed metadata of a single file.
type VideoRecord struct {
	// Path is the file path as found by the walker.
	Path string `json:"path"`
	// Duration is the playback length in seconds (0 when unknown).
	Duration float64 `json:"duration_seconds"`
	// Bytes is the file size in bytes.
	Bytes int64 `json:"bytes"`
	// SizeGB is the file size in decimal gigabytes.
	SizeGB float64 `json:"size_gb"`
	// Title is the file name without directory and extension.
	Title string `json:"title"`
	// Unreadable is set when the file size could not be determined.
	Unreadable bool `json:"unreadable,omitempty"`
}

// NoStream reports whether no duration could be determined for the record.
func (r VideoRecord) NoStream() bool {
	return r.Duration <= 0
}

// Usable reports whether the record takes part in aggregation.
func (r VideoRecord) Usable() bool {
	return !r.Unreadable && !r.NoStream()
}

// Prober determines the duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner runs the command with os/exec.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// MediaInfo probes durations with `mediainfo --Output=Video;%Duration%`.
type MediaInfo struct {
	// Binary is the executable to run.
	Binary string
	// Run executes the command; nil uses os/exec.
	Run Runner
}

// Duration implements Prober.
func (m MediaInfo) Duration(ctx context.Context, path string) (float64, error) {
	out, err := run(ctx, m.Run, binary(m.Binary, ToolMediaInfo), "--Output=Video;%Duration%", path)
	if err != nil {
		return 0, err
	}

	return ParseMediaInfo(out)
}

// ParseMediaInfo converts mediainfo's video duration output (milliseconds) to seconds.
// Exported for testing without a real mediainfo binary.
func ParseMediaInfo(data []byte) (float64, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, fmt.Errorf("%w: no video stream", ErrProbe)
	}

	// Files with several video streams print the durations back to back.
	if fields := strings.Fields(text); len(fields) > 0 {
		text = fields[0]
	}

	ms, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing mediainfo duration %q: %w", ErrProbe, text, err)
	}

	return ms / 1000, nil
}

// FFProbe probes durations with ffprobe's JSON format section.
type FFProbe struct {
	// Binary is the executable to run.
	Binary string
	// Run executes the command; nil uses os/exec.
	Run Runner
}

// Duration implements Prober.
func (f FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	out, err := run(ctx, f.Run, binary(f.Binary, ToolFFProbe),
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		return 0, err
	}

	return ParseFFProbe(out)
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ParseFFProbe extracts the container duration in seconds from ffprobe JSON.
func ParseFFProbe(data []byte) (float64, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: parse ffprobe JSON: %w", ErrProbe, err)
	}

	text := strings.TrimSpace(raw.Format.Duration)
	if text == "" || text == "N/A" {
		return 0, fmt.Errorf("%w: no duration", ErrProbe)
	}

	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing ffprobe duration %q: %w", ErrProbe, text, err)
	}

	return seconds, nil
}

// NewProber returns the prober for the named tool.
func NewProber(tool string) (Prober, error) {
	switch tool {
	case ToolMediaInfo:
		return MediaInfo{Binary: ToolMediaInfo}, nil
	case ToolFFProbe:
		return FFProbe{Binary: ToolFFProbe}, nil
	default:
		return nil, fmt.Errorf("%w: unknown probe tool %q", ErrValidation, tool)
	}
}

func binary(name, fallback string) string {
	if name == "" {
		return fallback
	}

	return name
}

func run(ctx context.Context, runner Runner, name string, args ...string) ([]byte, error) {
	if runner == nil {
		runner = execRunner
	}

	out, err := runner(ctx, name, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrProbe, name, args[len(args)-1], err)
	}

	return out, nil
}

// Title returns the file name of path without directory and extension.
func Title(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProbeFunc produces the record for a single path.
type ProbeFunc func(ctx context.Context, path string) (VideoRecord, error)

// NewProbeFunc wraps prober so that every call runs under timeout (0=none)
// and the size is read from the filesystem independently of the probe.
//
// A failed probe yields a record with zero duration and a nil error. A failed
// size lookup yields an Unreadable record and an error wrapping ErrUnreadable.
func NewProbeFunc(prober Prober, timeout time.Duration, log logger) ProbeFunc {
	return func(ctx context.Context, path string) (VideoRecord, error) {
		rec := VideoRecord{Path: path, Title: Title(path)}

		info, err := os.Stat(path)
		if err != nil {
			rec.Unreadable = true

			return rec, fmt.Errorf("%w: %w", ErrUnreadable, err)
		}

		rec.Bytes = info.Size()
		rec.SizeGB = float64(rec.Bytes) / bytesPerGB

		probeCtx := ctx

		if timeout > 0 {
			var cancel context.CancelFunc

			probeCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		duration, err := prober.Duration(probeCtx, path)
		if err != nil {
			log.warnf("could not determine duration of %s: %v", path, err)

			return rec, nil
		}

		if duration < 0 {
			duration = 0
		}

		rec.Duration = duration

		return rec, nil
	}
}
