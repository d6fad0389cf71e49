package vidstat

import "errors"

var (
	// ErrFilesystem is returned when the root directory cannot be walked.
	ErrFilesystem = errors.New("filesystem error")
	// ErrProbe marks a failed duration lookup. It never aborts a run.
	ErrProbe = errors.New("probe failed")
	// ErrUnreadable marks a file whose size could not be determined.
	ErrUnreadable = errors.New("unreadable file")
	// ErrEmptyInput is returned when no usable videos remain after filtering.
	ErrEmptyInput = errors.New("no usable videos")
	// ErrValidation is returned for invalid options, before any work starts.
	ErrValidation = errors.New("invalid options")
)
