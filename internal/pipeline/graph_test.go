package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleReleaseNeedsOrder(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", nil)
	cfg.Sdist = true
	g := Assemble(cfg)

	require.Len(t, g.Jobs, 4)
	assert.Equal(t, []string{"linux", "musllinux", "windows", "macos", "sdist"}, g.Release.Needs)
	require.NotNil(t, g.Sdist)
}

func TestAssembleNoSdist(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", nil)
	g := Assemble(cfg)

	assert.Nil(t, g.Sdist)
	assert.Equal(t, []string{"linux", "musllinux", "windows", "macos"}, g.Release.Needs)
}

func TestAssembleBinaryExcludesExplicitEmscripten(t *testing.T) {
	cfg := NewConfig(Bin{}, "example", []Platform{PlatformEmscripten, PlatformManyLinux})
	g := Assemble(cfg)

	require.Len(t, g.Jobs, 1)
	assert.Equal(t, "linux", g.Jobs[0].Name)
	// No emscripten job means no wasm release-asset upload either.
	assert.False(t, g.Release.AttachWasm)
}

func TestAssembleEmscriptenEnablesWasmUpload(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", []Platform{PlatformAll})
	g := Assemble(cfg)

	require.Len(t, g.Jobs, 5)
	assert.Equal(t, "emscripten", g.Jobs[4].Name)
	assert.True(t, g.Release.AttachWasm)
}

func TestAssembleJobNamesUnique(t *testing.T) {
	cfg := NewConfig(Cffi{}, "example", []Platform{PlatformAll, PlatformManyLinux, PlatformMacos})
	g := Assemble(cfg)

	seen := map[string]bool{}
	for _, job := range g.Jobs {
		assert.False(t, seen[job.Name], "duplicate job name %s", job.Name)
		seen[job.Name] = true
	}
}

func TestAssembleSdistManifestArgs(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", nil)
	cfg.Sdist = true
	cfg.ManifestPath = "crates/demo/Cargo.toml"
	g := Assemble(cfg)

	require.NotNil(t, g.Sdist)
	assert.Equal(t, []string{"--manifest-path", "crates/demo/Cargo.toml"}, g.Sdist.ExtraArgs)
}

func TestAssembleCarriesInvokedWith(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", nil)
	cfg.InvokedWith = "wheelsmith generate github"
	assert.Equal(t, "wheelsmith generate github", Assemble(cfg).InvokedWith)
}

func TestAssembleIsDeterministic(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", []Platform{PlatformAll})
	cfg.Sdist = true
	cfg.Pytest = true
	first := Assemble(cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Assemble(cfg))
	}
}

func TestNewConfigDefaultsPlatforms(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", nil)
	assert.Equal(t, DefaultPlatforms(), cfg.Platforms())

	cfg = NewConfig(Bindings{Crate: "pyo3"}, "example", []Platform{})
	assert.Equal(t, DefaultPlatforms(), cfg.Platforms())
}

func TestConfigPlatformsIsACopy(t *testing.T) {
	cfg := NewConfig(Bindings{Crate: "pyo3"}, "example", []Platform{PlatformMacos})
	got := cfg.Platforms()
	got[0] = PlatformWindows
	assert.Equal(t, []Platform{PlatformMacos}, cfg.Platforms())
}
