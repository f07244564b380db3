package render

import (
	"fmt"
	"strings"

	"github.com/roach88/wheelsmith/internal/pipeline"
)

// Version is embedded in the autogeneration header of every rendered file.
const Version = "0.4.0"

// Provider identifies a CI provider backend.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

// ParseProvider parses a provider name as accepted on the command line.
func ParseProvider(name string) (Provider, error) {
	switch name {
	case "github":
		return ProviderGitHub, nil
	case "gitlab":
		return ProviderGitLab, nil
	}
	return "", fmt.Errorf("unknown provider %q (expected github or gitlab)", name)
}

// Renderer serializes a pipeline graph into one provider's syntax.
// Implementations must be deterministic: identical graph in, byte-identical
// text out.
type Renderer interface {
	Render(g *pipeline.Graph) (string, error)
}

// New returns the renderer for a provider.
func New(p Provider) (Renderer, error) {
	switch p {
	case ProviderGitHub:
		return GitHub{}, nil
	case ProviderGitLab:
		return GitLab{}, nil
	}
	return nil, fmt.Errorf("unknown provider %q", p)
}

// Generate assembles the pipeline graph for cfg and renders it for the
// given provider. This is the core entry point; writing the text anywhere
// is the caller's concern.
func Generate(p Provider, cfg *pipeline.Config) (string, error) {
	r, err := New(p)
	if err != nil {
		return "", err
	}
	return r.Render(pipeline.Assemble(cfg))
}

// writeHeader emits the autogeneration banner with the regeneration hint.
func writeHeader(b *strings.Builder, invokedWith string, p Provider) {
	cmd := invokedWith
	if cmd == "" {
		cmd = "wheelsmith generate " + string(p)
	}
	fmt.Fprintf(b, "# This file is autogenerated by wheelsmith v%s\n# To update, run\n#\n#    %s\n#\n", Version, cmd)
}
