// Package vidstat provides video collection statistics.
//
// It walks directory trees using fastwalk for parallel traversal, probes
// every matching video for its duration with an external media tool,
// buckets the videos into equal-width duration categories, and counts the
// words and word pairs that appear in their titles.
package vidstat
