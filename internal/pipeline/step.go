package pipeline

// Placeholders renderers substitute with their provider's expression
// syntax. Steps stay provider-neutral by referring to matrix values and
// derived versions through these tokens only.
const (
	// TargetVar stands for the current matrix entry's target.
	TargetVar = "{{target}}"

	// PythonVersionVar stands for the interpreter version derived during
	// the emscripten toolchain setup.
	PythonVersionVar = "{{python-version}}"
)

// Step is one entry in a job's ordered step list. Variants carry only
// provider-neutral parameters; renderers own the provider syntax.
type Step interface {
	isStep()
}

// Checkout fetches the repository. Always the first step of every job.
type Checkout struct{}

// RuntimeVariant selects how a job's host runtime is prepared.
type RuntimeVariant int

const (
	// RuntimeHost installs a stock CPython on the runner.
	RuntimeHost RuntimeVariant = iota + 1

	// RuntimeEmscripten is the two-phase sandbox setup: install
	// pyodide-build, read the emscripten and interpreter versions it
	// requires, install the matching emsdk, then re-select the host
	// interpreter at the derived version. The ordering matters: the
	// helper's installed version determines which sandbox toolchain to
	// fetch, and the interpreter can only be pinned once that version
	// is known.
	RuntimeEmscripten
)

// SetupRuntime prepares the job's Python runtime.
type SetupRuntime struct {
	Variant RuntimeVariant

	// PinArch pins the interpreter architecture to the matrix target.
	// Set on Windows, where x86 wheels need an x86 interpreter.
	PinArch bool
}

// Build compiles the wheels for the current matrix target.
type Build struct {
	// ExtraArgs follow the fixed release/output arguments, in order.
	ExtraArgs []string

	// ManylinuxTag is the packaging compatibility tag to declare, empty
	// for platforms that have none.
	ManylinuxTag string

	// RustToolchain overrides the toolchain channel, empty for stable.
	RustToolchain string
}

// UploadArtifact stores the built wheels under the given artifact name.
type UploadArtifact struct {
	Name string
}

// Guard is a provider-neutral condition on the current matrix target.
type Guard int

const (
	GuardNone Guard = iota

	// GuardTargetX8664 runs only when the target starts with "x86_64".
	GuardTargetX8664

	// GuardTargetNotX86NotPpc64 runs when the target neither starts with
	// "x86" nor equals "ppc64".
	GuardTargetNotX86NotPpc64

	// GuardTargetNotX86 runs when the target does not start with "x86".
	GuardTargetNotX86

	// GuardTargetNotAarch64 runs when the target does not start with
	// "aarch64".
	GuardTargetNotAarch64
)

// TestStrategy selects how the freshly built wheel is exercised.
type TestStrategy int

const (
	// TestHost installs the wheel into a venv on the runner itself.
	TestHost TestStrategy = iota + 1

	// TestEmulated runs under QEMU via a foreign-architecture container
	// with a glibc distribution.
	TestEmulated

	// TestContainer runs inside a minimal musl container on the host
	// architecture.
	TestContainer

	// TestEmulatedMusl runs under QEMU with a musl distribution.
	TestEmulatedMusl

	// TestEmscripten installs a host JavaScript runtime and drives the
	// test runner through the sandboxed interpreter.
	TestEmscripten
)

// RunTests installs the built wheel from the local output directory and
// invokes pytest.
type RunTests struct {
	Strategy TestStrategy
	Guard    Guard

	// Project is the distribution name to install from the output dir.
	Project string

	// Workdir is the directory to run pytest from, empty for the
	// repository root. Set when a non-default manifest path puts the
	// test suite next to the manifest.
	Workdir string

	// Distro is the emulation container distribution, only meaningful
	// for the emulated strategies.
	Distro string

	// Activate is the venv activation script path for host runs; the
	// layout differs between Windows and Unix runners.
	Activate string
}

func (Checkout) isStep()       {}
func (SetupRuntime) isStep()   {}
func (Build) isStep()          {}
func (UploadArtifact) isStep() {}
func (RunTests) isStep()       {}
