package pipeline

// MatrixEntry is one (runner label, target architecture) combination a
// platform job fans out over.
type MatrixEntry struct {
	Runner string
	Target string
}

// Matrix returns the fixed build matrix for a concrete platform.
//
// The tables encode real toolchain availability and must not be derived or
// reordered: manylinux covers the six architectures maturin cross-compiles
// to from one Ubuntu runner, musllinux drops the big-endian targets, macOS
// needs a distinct runner per architecture (Intel vs Apple silicon), and
// emscripten is a single synthetic wasm entry.
func Matrix(p Platform) []MatrixEntry {
	switch p {
	case PlatformManyLinux:
		return onRunner("ubuntu-latest", "x86_64", "x86", "aarch64", "armv7", "s390x", "ppc64le")
	case PlatformMusllinux:
		return onRunner("ubuntu-latest", "x86_64", "x86", "aarch64", "armv7")
	case PlatformWindows:
		return onRunner("windows-latest", "x64", "x86")
	case PlatformMacos:
		return []MatrixEntry{
			{Runner: "macos-12", Target: "x86_64"},
			{Runner: "macos-14", Target: "aarch64"},
		}
	case PlatformEmscripten:
		return []MatrixEntry{
			{Runner: "ubuntu-latest", Target: "wasm32-unknown-emscripten"},
		}
	}
	return nil
}

func onRunner(runner string, targets ...string) []MatrixEntry {
	entries := make([]MatrixEntry, len(targets))
	for i, t := range targets {
		entries[i] = MatrixEntry{Runner: runner, Target: t}
	}
	return entries
}
