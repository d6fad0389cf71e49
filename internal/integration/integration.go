// Package integration provides the embedded starter configuration.
package integration

import (
	"bytes"
	_ "embed"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/idelchi/vidstat/internal/vidstat"
)

// Starter contains the starter configuration template.
//
//go:embed vidstat.yaml.tmpl
var Starter string

// Tool is a probe tool and where it was found.
type Tool struct {
	Name string
	Path string
}

// LookupTools finds each supported probe tool on PATH.
func LookupTools() []Tool {
	tools := make([]Tool, 0, len(vidstat.Tools))

	for _, name := range vidstat.Tools {
		tool := Tool{Name: name}

		if path, err := exec.LookPath(name); err == nil {
			tool.Path = filepath.ToSlash(path)
		}

		tools = append(tools, tool)
	}

	return tools
}

// Render renders the starter configuration from opts, selecting the first
// installed probe tool when the configured one is missing.
func Render(opts vidstat.Options, tools []Tool) (string, error) {
	probe := opts.ProbeTool

	installed := false

	for _, t := range tools {
		if t.Name == probe && t.Path != "" {
			installed = true
		}
	}

	if !installed {
		for _, t := range tools {
			if t.Path != "" {
				probe = t.Name

				break
			}
		}
	}

	tmpl, err := template.New("starter").Parse(Starter)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Extensions": opts.Extensions,
		"Workers":    opts.Workers,
		"TopN":       opts.TopN,
		"Tools":      tools,
		"Probe":      probe,
		"Timeout":    opts.ProbeTimeout.String(),
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
