package pipeline

// Sequence assembles the ordered step list for one platform job.
func Sequence(cfg *Config, p Platform) []Step {
	steps := []Step{Checkout{}}

	if p == PlatformEmscripten {
		steps = append(steps, SetupRuntime{Variant: RuntimeEmscripten})
	} else if cfg.setupPython() {
		steps = append(steps, SetupRuntime{
			Variant: RuntimeHost,
			PinArch: p == PlatformWindows,
		})
	}

	steps = append(steps, buildStep(cfg, p))
	steps = append(steps, UploadArtifact{Name: artifactName(p)})

	if cfg.Pytest {
		steps = append(steps, testSteps(cfg, p)...)
	}
	return steps
}

// buildStep computes the build argument list.
//
// Interpreter discovery is skipped for the stable-ABI variant (one build
// covers every interpreter) and for a bare binary built without a runtime
// present. Emscripten passes the derived interpreter version explicitly
// instead of discovering, since the sandbox interpreter is not on PATH.
func buildStep(cfg *Config, p Platform) Build {
	var args []string
	switch {
	case IsAbi3(cfg.Bridge) || (IsBin(cfg.Bridge) && !cfg.setupPython()):
	case p == PlatformEmscripten:
		args = append(args, "-i", PythonVersionVar)
	default:
		args = append(args, "--find-interpreter")
	}
	if m := cfg.customManifest(); m != "" {
		args = append(args, "--manifest-path", m)
	}
	if cfg.Zig && p == PlatformManyLinux {
		args = append(args, "--zig")
	}

	b := Build{ExtraArgs: args}
	switch p {
	case PlatformManyLinux:
		b.ManylinuxTag = "auto"
	case PlatformMusllinux:
		b.ManylinuxTag = "musllinux_1_2"
	case PlatformEmscripten:
		b.RustToolchain = "nightly"
	}
	return b
}

// artifactName names the wheel artifact for a platform. Emscripten wheels
// are not index-publishable and get a fixed name the release job treats
// separately.
func artifactName(p Platform) string {
	if p == PlatformEmscripten {
		return "wasm-wheels"
	}
	return "wheels-" + p.String() + "-" + TargetVar
}

// testSteps picks the test strategy for a platform. Linux platforms split
// into a native step and an emulated step with disjoint guards; Windows
// skips aarch64 (no hosted runner can execute those wheels yet); macOS
// always runs natively.
func testSteps(cfg *Config, p Platform) []Step {
	base := RunTests{
		Project: cfg.Project,
		Workdir: cfg.testWorkdir(),
	}
	switch p {
	case PlatformManyLinux:
		host := base
		host.Strategy = TestHost
		host.Guard = GuardTargetX8664
		host.Activate = ".venv/bin/activate"
		emulated := base
		emulated.Strategy = TestEmulated
		emulated.Guard = GuardTargetNotX86NotPpc64
		emulated.Distro = "ubuntu22.04"
		return []Step{host, emulated}
	case PlatformMusllinux:
		container := base
		container.Strategy = TestContainer
		container.Guard = GuardTargetX8664
		emulated := base
		emulated.Strategy = TestEmulatedMusl
		emulated.Guard = GuardTargetNotX86
		emulated.Distro = "alpine_latest"
		return []Step{container, emulated}
	case PlatformWindows:
		host := base
		host.Strategy = TestHost
		host.Guard = GuardTargetNotAarch64
		host.Activate = ".venv/Scripts/activate"
		return []Step{host}
	case PlatformMacos:
		host := base
		host.Strategy = TestHost
		host.Activate = ".venv/bin/activate"
		return []Step{host}
	case PlatformEmscripten:
		sandbox := base
		sandbox.Strategy = TestEmscripten
		return []Step{sandbox}
	}
	return nil
}
