package pipeline

import "path/filepath"

// defaultManifest is the manifest location that needs no explicit
// --manifest-path in generated commands.
const defaultManifest = "Cargo.toml"

// Config is a fully resolved generation request. Build one with NewConfig;
// a Config obtained from it always has a non-empty platform list, so
// generation is total.
type Config struct {
	// Bridge is the resolved bridge model.
	Bridge Bridge

	// Project is the Python distribution name, used by test steps to
	// install the built wheel.
	Project string

	// Sdist appends a source-distribution job when true.
	Sdist bool

	// Pytest appends test steps to every platform job when true.
	Pytest bool

	// Zig enables zig cross-compilation on the manylinux job.
	Zig bool

	// ManifestPath is the Cargo.toml location, empty or "Cargo.toml"
	// for the default.
	ManifestPath string

	// InvokedWith is the command line embedded in the generated file's
	// regeneration hint. Supplied by the caller rather than read from
	// process state so generation has no ambient inputs.
	InvokedWith string

	platforms []Platform
}

// NewConfig builds a Config. An empty platform list selects the default
// set (manylinux, musllinux, windows, macos), mirroring the CLI default,
// so "no platforms" cannot reach graph assembly.
func NewConfig(bridge Bridge, project string, platforms []Platform) *Config {
	if len(platforms) == 0 {
		platforms = DefaultPlatforms()
	}
	return &Config{
		Bridge:    bridge,
		Project:   project,
		platforms: append([]Platform(nil), platforms...),
	}
}

// Platforms returns the requested platform list prior to expansion.
func (c *Config) Platforms() []Platform {
	return append([]Platform(nil), c.platforms...)
}

// customManifest returns the manifest path if it differs from the
// default location, else "".
func (c *Config) customManifest() string {
	if c.ManifestPath == "" || c.ManifestPath == defaultManifest {
		return ""
	}
	return c.ManifestPath
}

// testWorkdir returns the directory test steps should run from: the
// manifest's containing directory for a non-default manifest, else "".
func (c *Config) testWorkdir() string {
	m := c.customManifest()
	if m == "" {
		return ""
	}
	dir := filepath.ToSlash(filepath.Dir(m))
	if dir == "." {
		return ""
	}
	return dir
}

// setupPython reports whether non-emscripten jobs get a runtime setup
// step: explicitly when tests run, otherwise whenever the bridge model
// requires a host interpreter at build time.
func (c *Config) setupPython() bool {
	return c.Pytest || NeedsPython(c.Bridge)
}
