package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wheelsmith/internal/pipeline"
	"github.com/roach88/wheelsmith/internal/render"
)

// Scenario describes one generation request to pin with a golden file.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario pins.
	Description string `yaml:"description"`

	// Provider is "github" or "gitlab".
	Provider string `yaml:"provider"`

	// Project is the Python distribution name.
	Project string `yaml:"project"`

	// Bridge is the resolved bridge model.
	Bridge BridgeSpec `yaml:"bridge"`

	// Platforms lists requested platform names. Empty means the default
	// set, matching the CLI.
	Platforms []string `yaml:"platforms,omitempty"`

	Sdist  bool `yaml:"sdist,omitempty"`
	Pytest bool `yaml:"pytest,omitempty"`
	Zig    bool `yaml:"zig,omitempty"`

	// ManifestPath is the Cargo.toml location, empty for the default.
	ManifestPath string `yaml:"manifest_path,omitempty"`

	// InvokedWith is the regeneration hint to embed. Scenarios should set
	// it explicitly so golden files stay stable.
	InvokedWith string `yaml:"invoked_with,omitempty"`
}

// BridgeSpec is the YAML form of a bridge model.
type BridgeSpec struct {
	// Kind is one of bindings, abi3, cffi, uniffi, bin.
	Kind string `yaml:"kind"`

	// Crate is the bindings crate name (bindings kind only).
	Crate string `yaml:"crate,omitempty"`

	// WithBindings marks a binary that additionally ships bindings
	// (bin kind only).
	WithBindings bool `yaml:"with_bindings,omitempty"`
}

// Bridge converts the spec to a pipeline bridge model.
func (b BridgeSpec) Bridge() (pipeline.Bridge, error) {
	switch b.Kind {
	case "bindings":
		crate := b.Crate
		if crate == "" {
			crate = "pyo3"
		}
		return pipeline.Bindings{Crate: crate, MinorVersion: 7}, nil
	case "abi3":
		return pipeline.BindingsAbi3{Major: 3, Minor: 7}, nil
	case "cffi":
		return pipeline.Cffi{}, nil
	case "uniffi":
		return pipeline.UniFfi{}, nil
	case "bin":
		if b.WithBindings {
			return pipeline.Bin{Bindings: &pipeline.Bindings{Crate: "pyo3", MinorVersion: 7}}, nil
		}
		return pipeline.Bin{}, nil
	}
	return nil, fmt.Errorf("unknown bridge kind %q", b.Kind)
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Provider == "" {
		return nil, fmt.Errorf("scenario %s: provider is required", path)
	}
	return &s, nil
}

// LoadDir loads every *.yaml scenario in a directory, sorted by file name
// so test order is stable.
func LoadDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := Load(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Config builds the pipeline config this scenario describes.
func (s *Scenario) Config() (*pipeline.Config, error) {
	bridge, err := s.Bridge.Bridge()
	if err != nil {
		return nil, err
	}
	var platforms []pipeline.Platform
	for _, name := range s.Platforms {
		p, err := pipeline.ParsePlatform(name)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		platforms = append(platforms, p)
	}
	cfg := pipeline.NewConfig(bridge, s.Project, platforms)
	cfg.Sdist = s.Sdist
	cfg.Pytest = s.Pytest
	cfg.Zig = s.Zig
	cfg.ManifestPath = s.ManifestPath
	cfg.InvokedWith = s.InvokedWith
	return cfg, nil
}

// Generate renders the scenario's pipeline text.
func (s *Scenario) Generate() (string, error) {
	provider, err := render.ParseProvider(s.Provider)
	if err != nil {
		return "", fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	cfg, err := s.Config()
	if err != nil {
		return "", err
	}
	return render.Generate(provider, cfg)
}
