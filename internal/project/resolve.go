// Package project resolves generation inputs from project metadata:
// the bridge model, the Python distribution name, and whether a source
// distribution should be built.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/roach88/wheelsmith/internal/pipeline"
)

// ErrNoBridge is returned when neither the manifest dependencies nor
// pyproject.toml determine how the crate is bound to Python.
var ErrNoBridge = errors.New("cannot determine bindings: add a bindings dependency (pyo3, cffi, uniffi) or set tool.maturin.bindings in pyproject.toml")

// Metadata is the resolved project description consumed by generation.
type Metadata struct {
	// Name is the Python distribution name: project.name from
	// pyproject.toml when present, else the crate name.
	Name string

	// Bridge is the resolved bridge model.
	Bridge pipeline.Bridge

	// Sdist reports whether a pyproject.toml exists; only then is a
	// source distribution buildable.
	Sdist bool

	// ManifestPath is the Cargo.toml path the metadata was read from.
	ManifestPath string
}

// cargoManifest is the subset of Cargo.toml we read. Dependencies stay
// untyped because Cargo accepts both the string shorthand and the table
// form for each entry.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
	Bin          []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

// dependencyFeatures returns the feature list of a dependency, nil for the
// string shorthand or when no features are declared.
func dependencyFeatures(dep any) []string {
	table, ok := dep.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := table["features"].([]any)
	if !ok {
		return nil
	}
	features := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			features = append(features, s)
		}
	}
	return features
}

// pyprojectFile is the subset of pyproject.toml we read.
type pyprojectFile struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Maturin struct {
			Bindings string `toml:"bindings"`
		} `toml:"maturin"`
	} `toml:"tool"`
}

// Resolve reads Cargo.toml (and pyproject.toml next to it, if present) and
// determines the bridge model. manifestPath may be empty, meaning
// Cargo.toml in the current directory.
func Resolve(manifestPath string) (*Metadata, error) {
	if manifestPath == "" {
		manifestPath = "Cargo.toml"
	}
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	meta := &Metadata{
		Name:         manifest.Package.Name,
		ManifestPath: manifestPath,
	}

	var pyproject *pyprojectFile
	pyprojectPath := filepath.Join(filepath.Dir(manifestPath), "pyproject.toml")
	if pyData, err := os.ReadFile(pyprojectPath); err == nil {
		pyproject = &pyprojectFile{}
		if err := toml.Unmarshal(pyData, pyproject); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", pyprojectPath, err)
		}
		meta.Sdist = true
		if pyproject.Project.Name != "" {
			meta.Name = pyproject.Project.Name
		}
	}

	bridge, err := findBridge(&manifest, pyproject)
	if err != nil {
		return nil, err
	}
	meta.Bridge = bridge
	return meta, nil
}

// findBridge determines the bridge model. An explicit
// tool.maturin.bindings key wins; otherwise the manifest dependencies
// decide, and a crate with binary targets but no bindings is a bare
// binary.
func findBridge(manifest *cargoManifest, pyproject *pyprojectFile) (pipeline.Bridge, error) {
	explicit := ""
	if pyproject != nil {
		explicit = pyproject.Tool.Maturin.Bindings
	}

	switch explicit {
	case "cffi":
		return pipeline.Cffi{}, nil
	case "uniffi":
		return pipeline.UniFfi{}, nil
	case "bin":
		if b := bindingsDependency(manifest); b != nil {
			return pipeline.Bin{Bindings: b}, nil
		}
		return pipeline.Bin{}, nil
	case "":
	default:
		if _, ok := manifest.Dependencies[explicit]; !ok {
			return nil, fmt.Errorf("bindings crate %q declared in pyproject.toml is not a dependency", explicit)
		}
		return *bridgeFromDependency(manifest, explicit), nil
	}

	for _, crate := range []string{"pyo3", "pyo3-ffi", "cpython"} {
		if b := bridgeFromDependency(manifest, crate); b != nil {
			return *b, nil
		}
	}
	if _, ok := manifest.Dependencies["uniffi"]; ok {
		return pipeline.UniFfi{}, nil
	}
	if _, ok := manifest.Dependencies["cffi"]; ok {
		return pipeline.Cffi{}, nil
	}
	if len(manifest.Bin) > 0 {
		return pipeline.Bin{}, nil
	}
	return nil, ErrNoBridge
}

// bridgeFromDependency classifies a bindings crate dependency, detecting
// the stable-ABI variant from its feature list.
func bridgeFromDependency(manifest *cargoManifest, crate string) *pipeline.Bridge {
	dep, ok := manifest.Dependencies[crate]
	if !ok {
		return nil
	}
	for _, f := range dependencyFeatures(dep) {
		if !strings.HasPrefix(f, "abi3") {
			continue
		}
		major, minor := 3, 7
		// Features look like "abi3-py37" or "abi3-py310".
		if rest, found := strings.CutPrefix(f, "abi3-py3"); found && rest != "" {
			if v, err := strconv.Atoi(rest); err == nil {
				minor = v
			}
		}
		var b pipeline.Bridge = pipeline.BindingsAbi3{Major: major, Minor: minor}
		return &b
	}
	var b pipeline.Bridge = pipeline.Bindings{Crate: crate, MinorVersion: 7}
	return &b
}

// bindingsDependency returns the bindings crate a binary additionally
// links, if any.
func bindingsDependency(manifest *cargoManifest) *pipeline.Bindings {
	for _, crate := range []string{"pyo3", "pyo3-ffi", "cpython"} {
		if _, ok := manifest.Dependencies[crate]; ok {
			return &pipeline.Bindings{Crate: crate, MinorVersion: 7}
		}
	}
	return nil
}
