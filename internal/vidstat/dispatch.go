package vidstat

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Dispatch applies probe to every path using at most workers concurrent calls.
// Records are returned in the order of paths. A failing call marks its own
// record and never stops its siblings; done, if non-nil, is invoked after
// every call.
func Dispatch(ctx context.Context, paths []string, probe ProbeFunc, workers int, done func()) ([]VideoRecord, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrValidation, workers)
	}

	records := make([]VideoRecord, len(paths))

	var group errgroup.Group

	group.SetLimit(workers)

	for i, path := range paths {
		group.Go(func() error {
			rec, err := probe(ctx, path)
			if err != nil {
				rec.Path = path
				rec.Unreadable = true
			}

			records[i] = rec

			if done != nil {
				done()
			}

			return nil
		})
	}

	// Workers never return errors; per-file failures live on the records.
	_ = group.Wait()

	return records, nil
}
