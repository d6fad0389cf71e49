package vidstat

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

//nolint:gochecknoglobals // Shared prefix styles
var (
	debugPrefix = color.New(color.FgCyan).Sprint("[debug]:")
	warnPrefix  = color.New(color.FgYellow).Sprint("[warn]:")
)

// logger provides conditional debug output on stderr.
type logger struct {
	enabled bool
	out     io.Writer
}

func newLogger(enabled bool) logger {
	return logger{enabled: enabled, out: os.Stderr}
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if !l.enabled || l.out == nil {
		return
	}

	fmt.Fprintf(l.out, "%s %s\n", debugPrefix, fmt.Sprintf(format, args...))
}

// warnf prints a warning if logging is enabled.
func (l logger) warnf(format string, args ...any) {
	if !l.enabled || l.out == nil {
		return
	}

	fmt.Fprintf(l.out, "%s %s\n", warnPrefix, fmt.Sprintf(format, args...))
}
