package vidstat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer keeps the words it was asked to draw.
type recordingRenderer struct {
	words []WordCount
	err   error
}

func (r *recordingRenderer) Render(words []WordCount) error {
	r.words = words

	return r.err
}

func testOptions(root string, prober Prober) Options {
	opts := DefaultOptions()
	opts.Path = root
	opts.Workers = 2
	opts.Prober = prober

	return opts
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Action_Movie_2020.mp4":      "0123456789",
		"shows/Action_Hero_2021.mkv": "01234567890123456789",
		"shows/s1/Long_Trip.avi":     "012345678901234567890123456789",
		"shows/s1/Corrupt.mov":       "x",
		"shows/readme.txt":           "ignored",
	})

	prober := fakeProber{
		"Action_Movie_2020": 10,
		"Action_Hero_2021":  50,
		"Long_Trip":         100,
	}

	opts := testOptions(root, prober)
	opts.TopN = 2

	report, err := Run(context.Background(), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.DirCount)
	assert.Equal(t, 4, report.FileCount)
	assert.Equal(t, 3, report.Summary.Usable)
	assert.Equal(t, 1, report.Summary.NoStream)
	assert.Zero(t, report.Summary.Unreadable)
	assert.Equal(t, int64(60), report.Summary.TotalBytes)
	assert.Positive(t, report.Summary.Elapsed)
	assert.Len(t, report.Videos, 3)

	require.Len(t, report.Buckets, len(Categories))
	assert.Equal(t, 1, report.Buckets[0].Count)
	assert.Equal(t, 1, report.Buckets[4].Count)

	assert.Equal(t, []WordCount{{Word: "action", Count: 2}, {Word: "action hero", Count: 1}}, report.Words)
}

func TestRunWordsDisabled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Some_Title.mp4": "x"})

	opts := testOptions(root, fakeProber{"Some_Title": 30})
	opts.TopN = 0

	report, err := Run(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Nil(t, report.Words)

	renderer := &recordingRenderer{}
	require.NoError(t, report.RenderCloud(renderer))
	assert.Nil(t, renderer.words, "no cloud when word analysis is off")
}

func TestRunRenderCloud(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Red_Blue_Red.mp4": "x", "Blue.mp4": "x"})

	opts := testOptions(root, fakeProber{"Red_Blue_Red": 30, "Blue": 60})
	opts.TopN = 1

	report, err := Run(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, []WordCount{{Word: "blue", Count: 2}}, report.Words)

	renderer := &recordingRenderer{}
	require.NoError(t, report.RenderCloud(renderer))
	assert.Greater(t, len(renderer.words), len(report.Words), "the cloud gets more than the top words")

	renderer.err = errors.New("disk full")
	require.Error(t, report.RenderCloud(renderer))
}

func TestRunDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.mp4":     "1",
		"b/b.mp4":   "22",
		"b/c/c.mkv": "333",
		"d.avi":     "4444",
	})

	prober := fakeProber{"a": 12, "b": 340, "c": 55.5, "d": 7200}

	first, err := Run(context.Background(), testOptions(root, prober), nil)
	require.NoError(t, err)

	second, err := Run(context.Background(), testOptions(root, prober), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Buckets, second.Buckets)
	assert.Equal(t, first.Words, second.Words)
	assert.Equal(t, first.Videos, second.Videos)
}

func TestRunErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := Run(context.Background(), testOptions(t.TempDir()+"/missing", fakeProber{}), nil)
		require.ErrorIs(t, err, ErrFilesystem)
	})

	t.Run("no videos", func(t *testing.T) {
		_, err := Run(context.Background(), testOptions(t.TempDir(), fakeProber{}), nil)
		require.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("only unprobeable videos", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"x.mp4": "data"})

		_, err := Run(context.Background(), testOptions(root, fakeProber{}), nil)
		require.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("invalid workers", func(t *testing.T) {
		opts := testOptions(t.TempDir(), fakeProber{})
		opts.Workers = 0

		_, err := Run(context.Background(), opts, nil)
		require.ErrorIs(t, err, ErrValidation)
	})
}
