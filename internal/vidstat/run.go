package vidstat

import (
	"context"
	"sync"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// CloudWords caps the number of words handed to a CloudRenderer.
const CloudWords = 150

// Report is the result of a complete analysis run.
type Report struct {
	// Root is the scanned directory.
	Root string `json:"root"`
	// DirCount is the number of directories entered, including the root.
	DirCount int `json:"dir_count"`
	// FileCount is the number of video files found.
	FileCount int `json:"file_count"`
	// Summary holds the collection-wide statistics.
	Summary Summary `json:"summary"`
	// Buckets are the duration categories, shortest first.
	Buckets []Bucket `json:"buckets"`
	// Videos are the usable records that were bucketed.
	Videos []VideoRecord `json:"videos"`
	// Words are the most frequent title words (nil when disabled).
	Words []WordCount `json:"words,omitempty"`
	// TopN is the requested number of words.
	TopN int `json:"top_n"`

	frequencies []WordCount
}

// CloudRenderer draws a word cloud from word frequencies.
type CloudRenderer interface {
	Render(words []WordCount) error
}

// RenderCloud hands the most frequent title words to r.
// It does nothing when word analysis was disabled.
func (r *Report) RenderCloud(renderer CloudRenderer) error {
	if r.TopN == 0 || len(r.frequencies) == 0 || renderer == nil {
		return nil
	}

	words := r.frequencies
	if len(words) > CloudWords {
		words = words[:CloudWords]
	}

	return renderer.Render(words)
}

// progress counts finished probe calls.
type progress struct {
	mu    sync.Mutex // Protect concurrent access
	done  int64
	total int64
}

func (p *progress) add() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
}

// startProgressReporter invokes hook(done, total) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, p *progress, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.mu.Lock()

				done := p.done
				total := p.total
				p.mu.Unlock()
				hook(done, total)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run performs the video analysis and returns the aggregated report.
// It walks the directory tree at opt.Path, probes every matching file
// using opt.Workers concurrent calls, buckets the usable videos by duration
// and, unless opt.TopN is 0, counts the words in their titles.
//
// Per-file failures are counted, not returned. Errors wrap ErrValidation,
// ErrFilesystem or ErrEmptyInput. Progress updates are sent to progressHook
// if provided.
func Run(ctx context.Context, opt Options, progressHook func(done, total int64)) (*Report, error) {
	log := newLogger(opt.Debug)

	if err := opt.Validate(); err != nil {
		return nil, err
	}

	prober := opt.Prober
	if prober == nil {
		var err error

		prober, err = NewProber(opt.ProbeTool)
		if err != nil {
			return nil, err
		}
	}

	walker, err := NewWalker(opt)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	log.printf("scanning %s for %v", opt.Path, opt.Extensions)

	found, err := walker.Walk(opt.Path)
	if err != nil {
		return nil, err
	}

	log.printf("found %d videos in %d directories", len(found.Paths), found.DirCount)

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := &progress{total: int64(len(found.Paths))}
	startProgressReporter(ctx, tracker, progressHook, opt.ProgressInterval)

	records, err := Dispatch(ctx, found.Paths, NewProbeFunc(prober, opt.ProbeTimeout, log), opt.Workers, tracker.add)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary, buckets, err := Aggregate(records, Categories)
	if err != nil {
		return nil, err
	}

	usable, _, _ := Filter(records)

	report := &Report{
		Root:      opt.Path,
		DirCount:  found.DirCount,
		FileCount: len(found.Paths),
		Summary:   summary,
		Buckets:   buckets,
		Videos:    usable,
		TopN:      opt.TopN,
	}

	if opt.TopN > 0 {
		report.frequencies = Frequencies(JoinTitles(usable))

		report.Words = report.frequencies
		if len(report.Words) > opt.TopN {
			report.Words = report.Words[:opt.TopN]
		}
	}

	report.Summary.Elapsed = time.Since(start)
	if seconds := report.Summary.Elapsed.Seconds(); seconds > 0 {
		report.Summary.VideosPerMinute = float64(report.FileCount) / seconds * 60
	}

	return report, nil
}
