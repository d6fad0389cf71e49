package vidstat

import (
	"fmt"
	"math"
	"time"
)

// Categories are the fixed bucket labels, shortest first.
//
//nolint:gochecknoglobals // Config constant
var Categories = []string{"Super Short", "Short", "Medium", "Long", "Very Long"}

// Bucket is one equal-width duration category.
//
// Every bucket covers [Lower, Upper) except the last, which is closed on the
// right so that the longest video is counted.
type Bucket struct {
	// Label is the category name.
	Label string `json:"label"`
	// Lower is the inclusive lower bound in seconds.
	Lower float64 `json:"lower_seconds"`
	// Upper is the upper bound in seconds.
	Upper float64 `json:"upper_seconds"`
	// Members are indices into the usable records.
	Members []int `json:"-"`
	// Count is the number of members.
	Count int `json:"count"`
	// AvgDuration is the mean duration in seconds, nil when the bucket is empty.
	AvgDuration *float64 `json:"avg_duration_seconds"`
	// AvgSizeGB is the mean size in GB, nil when the bucket is empty.
	AvgSizeGB *float64 `json:"avg_size_gb"`
}

// Summary holds the collection-wide statistics.
type Summary struct {
	// Usable is the number of records that were aggregated.
	Usable int `json:"usable"`
	// NoStream is the number of readable files without a detectable duration.
	NoStream int `json:"no_stream"`
	// Unreadable is the number of files whose size could not be read.
	Unreadable int `json:"unreadable"`
	// MeanSizeGB is the mean size of the usable records.
	MeanSizeGB float64 `json:"mean_size_gb"`
	// TotalSizeGB is the summed size of the usable records.
	TotalSizeGB float64 `json:"total_size_gb"`
	// TotalBytes is the summed size of the usable records in bytes.
	TotalBytes int64 `json:"total_bytes"`
	// MinDuration is the shortest usable duration in seconds.
	MinDuration float64 `json:"min_duration_seconds"`
	// MaxDuration is the longest usable duration in seconds.
	MaxDuration float64 `json:"max_duration_seconds"`
	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed"`
	// VideosPerMinute is the probing throughput over all found files.
	VideosPerMinute float64 `json:"videos_per_minute"`
}

// Filter splits records into usable ones and counts the rejected ones.
func Filter(records []VideoRecord) (usable []VideoRecord, noStream, unreadable int) {
	usable = make([]VideoRecord, 0, len(records))

	for _, rec := range records {
		switch {
		case rec.Unreadable:
			unreadable++
		case rec.NoStream():
			noStream++
		default:
			usable = append(usable, rec)
		}
	}

	return usable, noStream, unreadable
}

// Bounds returns n+1 equally spaced points from lo to hi inclusive.
func Bounds(lo, hi float64, n int) []float64 {
	bounds := make([]float64, n+1)
	step := (hi - lo) / float64(n)

	for i := range bounds {
		bounds[i] = lo + step*float64(i)
	}

	// Pin the ends so rounding never moves them.
	bounds[0] = lo
	bounds[n] = hi

	return bounds
}

// bucketIndex returns the bucket that holds d.
func bucketIndex(bounds []float64, d float64) int {
	last := len(bounds) - 2

	for i := range last {
		if d >= bounds[i] && d < bounds[i+1] {
			return i
		}
	}

	return last
}

// Aggregate filters records and buckets the usable ones by duration into
// len(labels) equal-width categories between the shortest and longest video.
// It returns ErrEmptyInput when nothing usable remains.
func Aggregate(records []VideoRecord, labels []string) (Summary, []Bucket, error) {
	if len(labels) == 0 {
		return Summary{}, nil, fmt.Errorf("%w: at least one category is required", ErrValidation)
	}

	usable, noStream, unreadable := Filter(records)

	summary := Summary{
		Usable:     len(usable),
		NoStream:   noStream,
		Unreadable: unreadable,
	}

	if len(usable) == 0 {
		return summary, nil, fmt.Errorf("%w: %d files found, %d without a stream, %d unreadable",
			ErrEmptyInput, len(records), noStream, unreadable)
	}

	lo, hi := math.Inf(1), math.Inf(-1)

	for _, rec := range usable {
		lo = math.Min(lo, rec.Duration)
		hi = math.Max(hi, rec.Duration)
		summary.TotalSizeGB += rec.SizeGB
		summary.TotalBytes += rec.Bytes
	}

	summary.MinDuration = lo
	summary.MaxDuration = hi
	summary.MeanSizeGB = summary.TotalSizeGB / float64(len(usable))

	bounds := Bounds(lo, hi, len(labels))

	buckets := make([]Bucket, len(labels))
	for i, label := range labels {
		buckets[i] = Bucket{Label: label, Lower: bounds[i], Upper: bounds[i+1]}
	}

	for idx, rec := range usable {
		b := &buckets[bucketIndex(bounds, rec.Duration)]
		b.Members = append(b.Members, idx)
	}

	for i := range buckets {
		b := &buckets[i]
		b.Count = len(b.Members)

		if b.Count == 0 {
			continue
		}

		var duration, size float64

		for _, idx := range b.Members {
			duration += usable[idx].Duration
			size += usable[idx].SizeGB
		}

		avgDuration := duration / float64(b.Count)
		avgSize := size / float64(b.Count)
		b.AvgDuration = &avgDuration
		b.AvgSizeGB = &avgSize
	}

	return summary, buckets, nil
}
