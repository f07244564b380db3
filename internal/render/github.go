package render

import (
	"fmt"
	"strings"

	"github.com/roach88/wheelsmith/internal/pipeline"
)

// GitHub renders the full pipeline graph as a GitHub Actions workflow:
// one job per platform with its matrix, every step variant, guards as
// workflow expressions, and the terminal release job.
type GitHub struct{}

// Render implements Renderer.
func (r GitHub) Render(g *pipeline.Graph) (string, error) {
	var b strings.Builder
	writeHeader(&b, g.InvokedWith, ProviderGitHub)

	b.WriteString(`name: CI

on:
  push:
    branches:
      - main
      - master
    tags:
      - '*'
  pull_request:
  workflow_dispatch:

permissions:
  contents: read

jobs:
`)

	for _, job := range g.Jobs {
		r.writeJob(&b, job)
	}
	if g.Sdist != nil {
		r.writeSdist(&b, g.Sdist)
	}
	r.writeRelease(&b, g.Release)

	return b.String(), nil
}

func (r GitHub) writeJob(b *strings.Builder, job pipeline.Job) {
	fmt.Fprintf(b, "  %s:\n    runs-on: ${{ matrix.platform.runner }}\n", job.Name)
	if len(job.Matrix) > 0 {
		b.WriteString("    strategy:\n      matrix:\n        platform:\n")
		for _, e := range job.Matrix {
			fmt.Fprintf(b, "          - runner: %s\n            target: %s\n", e.Runner, e.Target)
		}
	}
	b.WriteString("    steps:\n")
	for _, s := range job.Steps {
		r.writeStep(b, s)
	}
	b.WriteString("\n")
}

func (r GitHub) writeStep(b *strings.Builder, s pipeline.Step) {
	switch step := s.(type) {
	case pipeline.Checkout:
		b.WriteString("      - uses: actions/checkout@v4\n")
	case pipeline.SetupRuntime:
		r.writeSetupRuntime(b, step)
	case pipeline.Build:
		r.writeBuild(b, step)
	case pipeline.UploadArtifact:
		fmt.Fprintf(b, `      - name: Upload wheels
        uses: actions/upload-artifact@v4
        with:
          name: %s
          path: dist
`, expand(step.Name))
	case pipeline.RunTests:
		r.writeTests(b, step)
	}
}

func (r GitHub) writeSetupRuntime(b *strings.Builder, step pipeline.SetupRuntime) {
	if step.Variant == pipeline.RuntimeEmscripten {
		// The helper must be installed first: its pinned versions decide
		// which emsdk to fetch and which interpreter to select, so the
		// interpreter setup can only come after the probe.
		b.WriteString(`      - run: pip install pyodide-build
      - name: Get Emscripten and Python version info
        shell: bash
        run: |
          echo EMSCRIPTEN_VERSION=$(pyodide config get emscripten_version) >> $GITHUB_ENV
          echo PYTHON_VERSION=$(pyodide config get python_version | cut -d '.' -f 1-2) >> $GITHUB_ENV
          pip uninstall -y pyodide-build
      - uses: mymindstorm/setup-emsdk@v12
        with:
          version: ${{ env.EMSCRIPTEN_VERSION }}
          actions-cache-folder: emsdk-cache
      - uses: actions/setup-python@v5
        with:
          python-version: ${{ env.PYTHON_VERSION }}
      - run: pip install pyodide-build
`)
		return
	}
	b.WriteString(`      - uses: actions/setup-python@v5
        with:
          python-version: 3.x
`)
	if step.PinArch {
		b.WriteString("          architecture: ${{ matrix.platform.target }}\n")
	}
}

func (r GitHub) writeBuild(b *strings.Builder, step pipeline.Build) {
	extra := ""
	if len(step.ExtraArgs) > 0 {
		extra = " " + expand(strings.Join(step.ExtraArgs, " "))
	}
	fmt.Fprintf(b, `      - name: Build wheels
        uses: PyO3/maturin-action@v1
        with:
          target: ${{ matrix.platform.target }}
          args: --release --out dist%s
          sccache: 'true'
`, extra)
	if step.ManylinuxTag != "" {
		fmt.Fprintf(b, "          manylinux: %s\n", step.ManylinuxTag)
	}
	if step.RustToolchain != "" {
		fmt.Fprintf(b, "          rust-toolchain: %s\n", step.RustToolchain)
	}
}

func (r GitHub) writeTests(b *strings.Builder, step pipeline.RunTests) {
	chdir := ""
	if step.Workdir != "" {
		chdir = "cd " + step.Workdir + " && "
	}
	switch step.Strategy {
	case pipeline.TestHost:
		b.WriteString("      - name: pytest\n")
		// Guarded host runs also force bash so the guard's venv pathing
		// behaves the same on every runner shell.
		if g := guardExpr(step.Guard); g != "" {
			fmt.Fprintf(b, "        if: %s\n        shell: bash\n", g)
		}
		fmt.Fprintf(b, `        run: |
          set -e
          python3 -m venv .venv
          source %s
          pip install %s --find-links dist --force-reinstall
          pip install pytest
          %spytest
`, step.Activate, step.Project, chdir)
	case pipeline.TestEmulated:
		fmt.Fprintf(b, `      - name: pytest
        if: %s
        uses: uraimo/run-on-arch-action@v2
        with:
          arch: ${{ matrix.platform.target }}
          distro: %s
          githubToken: ${{ github.token }}
          install: |
            apt-get update
            apt-get install -y --no-install-recommends python3 python3-pip
            pip3 install -U pip pytest
          run: |
            set -e
            pip3 install %s --find-links dist --force-reinstall
            %spytest
`, guardExpr(step.Guard), step.Distro, step.Project, chdir)
	case pipeline.TestContainer:
		fmt.Fprintf(b, `      - name: pytest
        if: %s
        uses: addnab/docker-run-action@v3
        with:
          image: alpine:latest
          options: -v ${{ github.workspace }}:/io -w /io
          run: |
            set -e
            apk add py3-pip py3-virtualenv
            python3 -m virtualenv .venv
            source .venv/bin/activate
            pip install %s --no-index --find-links dist --force-reinstall
            pip install pytest
            %spytest
`, guardExpr(step.Guard), step.Project, chdir)
	case pipeline.TestEmulatedMusl:
		fmt.Fprintf(b, `      - name: pytest
        if: %s
        uses: uraimo/run-on-arch-action@v2
        with:
          arch: ${{ matrix.platform.target }}
          distro: %s
          githubToken: ${{ github.token }}
          install: |
            apk add py3-virtualenv
          run: |
            set -e
            python3 -m virtualenv .venv
            source .venv/bin/activate
            pip install pytest
            pip install %s --find-links dist --force-reinstall
            %spytest
`, guardExpr(step.Guard), step.Distro, step.Project, chdir)
	case pipeline.TestEmscripten:
		fmt.Fprintf(b, `      - uses: actions/setup-node@v3
        with:
          node-version: '18'
      - name: pytest
        run: |
          set -e
          pyodide venv .venv
          source .venv/bin/activate
          pip install %s --find-links dist --force-reinstall
          pip install pytest
          %spython -m pytest
`, step.Project, chdir)
	}
}

func (r GitHub) writeSdist(b *strings.Builder, sdist *pipeline.SdistJob) {
	extra := ""
	if len(sdist.ExtraArgs) > 0 {
		extra = " " + strings.Join(sdist.ExtraArgs, " ")
	}
	fmt.Fprintf(b, `  sdist:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Build sdist
        uses: PyO3/maturin-action@v1
        with:
          command: sdist
          args: --out dist%s
      - name: Upload sdist
        uses: actions/upload-artifact@v4
        with:
          name: wheels-sdist
          path: dist

`, extra)
}

func (r GitHub) writeRelease(b *strings.Builder, release pipeline.ReleaseJob) {
	fmt.Fprintf(b, `  release:
    name: Release
    runs-on: ubuntu-latest
    if: "startsWith(github.ref, 'refs/tags/')"
    needs: [%s]
`, strings.Join(release.Needs, ", "))
	if release.AttachWasm {
		b.WriteString(`    permissions:
      # Used to upload release artifacts
      contents: write
`)
	}
	b.WriteString(`    steps:
      - uses: actions/download-artifact@v4
      - name: Publish to PyPI
        uses: PyO3/maturin-action@v1
        env:
          MATURIN_PYPI_TOKEN: ${{ secrets.PYPI_API_TOKEN }}
        with:
          command: upload
          args: --non-interactive --skip-existing wheels-*/*
`)
	if release.AttachWasm {
		b.WriteString(`      - name: Upload to GitHub Release
        uses: softprops/action-gh-release@v1
        with:
          files: |
            wasm-wheels/*.whl
          prerelease: ${{ contains(github.ref, 'alpha') || contains(github.ref, 'beta') }}
`)
	}
}

// guardExpr maps a provider-neutral guard onto a workflow expression.
func guardExpr(g pipeline.Guard) string {
	switch g {
	case pipeline.GuardTargetX8664:
		return "${{ startsWith(matrix.platform.target, 'x86_64') }}"
	case pipeline.GuardTargetNotX86NotPpc64:
		return "${{ !startsWith(matrix.platform.target, 'x86') && matrix.platform.target != 'ppc64' }}"
	case pipeline.GuardTargetNotX86:
		return "${{ !startsWith(matrix.platform.target, 'x86') }}"
	case pipeline.GuardTargetNotAarch64:
		return "${{ !startsWith(matrix.platform.target, 'aarch64') }}"
	}
	return ""
}

// expand substitutes graph placeholders with workflow expressions.
func expand(s string) string {
	s = strings.ReplaceAll(s, pipeline.TargetVar, "${{ matrix.platform.target }}")
	s = strings.ReplaceAll(s, pipeline.PythonVersionVar, "${{ env.PYTHON_VERSION }}")
	return s
}
