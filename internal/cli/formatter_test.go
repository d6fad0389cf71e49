package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/vidstat/internal/vidstat"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00"},
		{10, "0:00:10"},
		{59.99, "0:00:59"},
		{3725, "1:02:05"},
		{86400, "1 day, 0:00:00"},
		{2*86400 + 3661, "2 days, 1:01:01"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestFormatWords(t *testing.T) {
	words := make([]vidstat.WordCount, 0, 7)
	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		words = append(words, vidstat.WordCount{Word: w, Count: 1})
	}

	assert.Equal(t, "a: 1, b: 1, c: 1, d: 1, e: 1, \nf: 1, g: 1", FormatWords(words))
	assert.Equal(t, "a: 1", FormatWords(words[:1]))
	assert.Empty(t, FormatWords(nil))
}

func sampleReport(t *testing.T) *vidstat.Report {
	t.Helper()

	records := []vidstat.VideoRecord{
		{Title: "a", Duration: 10, SizeGB: 0.1, Bytes: 100_000_000},
		{Title: "b", Duration: 100, SizeGB: 0.3, Bytes: 300_000_000},
	}

	summary, buckets, err := vidstat.Aggregate(records, vidstat.Categories)
	require.NoError(t, err)

	summary.Elapsed = 2 * time.Second
	summary.VideosPerMinute = 60

	return &vidstat.Report{
		DirCount:  1,
		FileCount: 2,
		Summary:   summary,
		Buckets:   buckets,
		Videos:    records,
		Words:     []vidstat.WordCount{{Word: "a", Count: 1}, {Word: "b", Count: 1}},
		TopN:      2,
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTable(sampleReport(t), &buf, true))

	out := buf.String()
	assert.Contains(t, out, "Scanned 1 directories and found 2 videos.")
	assert.Contains(t, out, "Avg video size: 0.20 GB. Total size: 0.40 GB (400 MB)")
	assert.Contains(t, out, "Elapsed time: 2.00 seconds.")
	assert.Contains(t, out, "Speed: 60.00 videos per minute")
	assert.Contains(t, out, "a: 1, b: 1")
	assert.Contains(t, out, "Number of videos with no recognizable streams: 0")

	lines := strings.Split(out, "\n")

	var rows []string

	for _, line := range lines {
		for _, label := range vidstat.Categories {
			if strings.HasPrefix(line, label+" ") {
				rows = append(rows, line)
			}
		}
	}

	require.Len(t, rows, 5)
	assert.Contains(t, rows[0], "0:00:10 - 0:00:28")
	assert.Contains(t, rows[0], "0.10")
	assert.Contains(t, rows[1], NotAvailable)
	assert.Contains(t, rows[4], "0:01:22 - 0:01:40")
	assert.Contains(t, rows[4], "0.30")
}

func TestPrintTableQuiet(t *testing.T) {
	report := sampleReport(t)
	report.Words = nil

	var buf bytes.Buffer

	require.NoError(t, PrintTable(report, &buf, false))
	assert.NotContains(t, buf.String(), "no recognizable streams")
	assert.NotContains(t, buf.String(), "a: 1")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintJSON(sampleReport(t), &buf))

	var decoded struct {
		FileCount int `json:"file_count"`
		Buckets   []struct {
			Label     string   `json:"label"`
			Count     int      `json:"count"`
			AvgSizeGB *float64 `json:"avg_size_gb"`
		} `json:"buckets"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.FileCount)
	require.Len(t, decoded.Buckets, 5)
	assert.Equal(t, "Super Short", decoded.Buckets[0].Label)
	assert.NotNil(t, decoded.Buckets[0].AvgSizeGB)
	assert.Nil(t, decoded.Buckets[2].AvgSizeGB, "empty categories encode as null")
}
