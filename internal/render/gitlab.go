package render

import (
	"strings"

	"github.com/roach88/wheelsmith/internal/pipeline"
)

// GitLab renders a staged GitLab CI pipeline.
//
// This backend is a reduced rendering: a static test/build/release pipeline
// for the plain-bindings case with fixed interpreter and target lists. It
// does not yet consume the graph's matrices, feature flags, or test
// strategies; only the regeneration header varies. The observable output is
// pinned by golden tests and must not drift while the backend is brought up
// to the graph model.
//
// TODO: parameterize on Graph.Jobs the way the GitHub backend does.
type GitLab struct{}

// Render implements Renderer.
func (r GitLab) Render(g *pipeline.Graph) (string, error) {
	var b strings.Builder
	writeHeader(&b, g.InvokedWith, ProviderGitLab)
	b.WriteString(gitlabPipeline)
	return b.String(), nil
}

// Note: several lines below intentionally carry trailing whitespace and the
// file ends without a newline; the golden files pin the output byte-exact.
const gitlabPipeline = "default:\n" +
	"  interruptible: true\n" +
	"  cache:\n" +
	"    paths:\n" +
	"      - .cache/pip\n" +
	"      - .cargo/bin\n" +
	"      - .cargo/registry/index\n" +
	"      - .cargo/registry/cache\n" +
	"      - target/debug/deps\n" +
	"      - target/debug/build\n" +
	"\n" +
	"variables:\n" +
	"    CARGO_HOME: '$CI_PROJECT_DIR/.cargo'\n" +
	"    PIP_CACHE_DIR: '$CI_PROJECT_DIR/.cache/pip'\n" +
	"\n" +
	"stages: \n" +
	"  - test\n" +
	"  - build\n" +
	"  - release\n" +
	"\n" +
	"test:\n" +
	"  stage: test\n" +
	"  image: \n" +
	"    name: ghcr.io/pyo3/maturin:latest\n" +
	"    entrypoint: ['']\n" +
	"  parallel:\n" +
	"    matrix:\n" +
	"      - PYTHON_VERSION:\n" +
	"        - python3.8\n" +
	"        - python3.9\n" +
	"        - python3.10\n" +
	"        - python3.11\n" +
	"        - python3.12\n" +
	"  before_script:\n" +
	"    - $PYTHON_VERSION -m venv venv\n" +
	"    - source venv/bin/activate\n" +
	"    - maturin develop\n" +
	"    - pip install pytest\n" +
	"  script:\n" +
	"    - pytest\n" +
	"\n" +
	"build-linux:\n" +
	"  needs: ['test']\n" +
	"  stage: build\n" +
	"  image: \n" +
	"    name: ghcr.io/pyo3/maturin:latest\n" +
	"    entrypoint: ['']\n" +
	"  parallel:\n" +
	"    matrix:\n" +
	"      # tier 1 targets, see https://doc.rust-lang.org/beta/rustc/platform-support.html\n" +
	"      - TARGET:\n" +
	"        - x86_64-unknown-linux-gnu\n" +
	"        - x86_64-unknown-linux-musl\n" +
	"        - aarch64-unknown-linux-gnu\n" +
	"        - aarch64-unknown-linux-musl\n" +
	"        - i686-unknown-linux-gnu\n" +
	"  before_script:\n" +
	"    - python3.8 -m venv venv\n" +
	"    - source venv/bin/activate\n" +
	"    - pip install ziglang\n" +
	"    - rustup target add $TARGET\n" +
	"  script:\n" +
	"    - maturin build -i python3.8 -i python3.9 -i python3.10 -i python3.11 -i python3.12 --release --target $TARGET --zig\n" +
	"  artifacts:\n" +
	"    paths:\n" +
	"      - target/wheels/*.whl\n" +
	"\n" +
	"build-macos:\n" +
	"  needs: ['test']\n" +
	"  stage: build\n" +
	"  image: \n" +
	"    name: ghcr.io/pyo3/maturin:latest\n" +
	"    entrypoint: ['']\n" +
	"  parallel:\n" +
	"    matrix:\n" +
	"      - TARGET:\n" +
	"        - x86_64-apple-darwin\n" +
	"  before_script:\n" +
	"    - python3.8 -m venv venv\n" +
	"    - source venv/bin/activate\n" +
	"    - pip install ziglang\n" +
	"    - rustup target add $TARGET\n" +
	"  script:\n" +
	"    - maturin build -i python3.8 -i python3.9 -i python3.10 -i python3.11 -i python3.12 --release --target $TARGET --zig\n" +
	"  artifacts:\n" +
	"    paths:\n" +
	"      - target/wheels/*.whl\n" +
	"\n" +
	"build-windows:\n" +
	"  needs: ['test']\n" +
	"  stage: build\n" +
	"  image: \n" +
	"    name: ghcr.io/pyo3/maturin:latest\n" +
	"    entrypoint: ['']\n" +
	"  parallel:\n" +
	"    matrix:\n" +
	"      - TARGET:\n" +
	"        - x86_64-pc-windows-msvc\n" +
	"  before_script:\n" +
	"    - python3.8 -m venv venv\n" +
	"    - source venv/bin/activate\n" +
	"    - pip install ziglang\n" +
	"    - rustup target add $TARGET\n" +
	"    # required for windows support\n" +
	"    - cargo add pyo3 -F generate-import-lib\n" +
	"    - export ZIG_COMMAND='python -m ziglang'\n" +
	"  script:\n" +
	"    - maturin build -i python3.8 -i python3.9 -i python3.10 -i python3.11 -i python3.12 --release --target $TARGET\n" +
	"  artifacts:\n" +
	"    paths:\n" +
	"      - target/wheels/*.whl\n" +
	"  \n" +
	"publish:\n" +
	"  stage: release\n" +
	"  image: \n" +
	"    name: ghcr.io/pyo3/maturin:latest\n" +
	"    entrypoint: ['']\n" +
	"  needs: ['build-linux', 'build-macos', 'build-windows', 'test']\n" +
	"  rules:\n" +
	"    - if: $CI_COMMIT_TAG\n" +
	"    - if: $CI_COMMIT_BRANCH == $CI_DEFAULT_BRANCH\n" +
	"    - if: $CI_PIPELINE_SOURCE == 'push'\n" +
	"      when: manual\n" +
	"      allow_failure: true\n" +
	"  script:\n" +
	"    - maturin publish --non-interactive --skip-existing"
