package pipeline

import (
	"fmt"
	"sort"
)

// Platform is a build target platform. The zero value is invalid.
//
// The numeric order of the constants is the emission order of jobs in the
// generated pipeline; Expand sorts by it so identical configurations always
// render identical text.
type Platform int

const (
	// PlatformAll is the wildcard. It is expanded at configuration time
	// and never appears in a built graph.
	PlatformAll Platform = iota + 1
	PlatformManyLinux
	PlatformMusllinux
	PlatformWindows
	PlatformMacos
	PlatformEmscripten
)

// String returns the display form used for job names and artifact prefixes.
func (p Platform) String() string {
	switch p {
	case PlatformAll:
		return "all"
	case PlatformManyLinux:
		return "linux"
	case PlatformMusllinux:
		return "musllinux"
	case PlatformWindows:
		return "windows"
	case PlatformMacos:
		return "macos"
	case PlatformEmscripten:
		return "emscripten"
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

// ParsePlatform parses a platform name as accepted on the command line.
// "linux" and "manylinux" are aliases.
func ParsePlatform(name string) (Platform, error) {
	switch name {
	case "all":
		return PlatformAll, nil
	case "linux", "manylinux":
		return PlatformManyLinux, nil
	case "musllinux":
		return PlatformMusllinux, nil
	case "windows":
		return PlatformWindows, nil
	case "macos":
		return PlatformMacos, nil
	case "emscripten":
		return PlatformEmscripten, nil
	}
	return 0, fmt.Errorf("unknown platform %q", name)
}

// DefaultPlatforms is the platform set used when none is requested.
// Emscripten is opt-in.
func DefaultPlatforms() []Platform {
	return []Platform{PlatformManyLinux, PlatformMusllinux, PlatformWindows, PlatformMacos}
}

// AllPlatforms is the expansion of the wildcard for bound-extension crates.
func AllPlatforms() []Platform {
	return []Platform{PlatformManyLinux, PlatformMusllinux, PlatformWindows, PlatformMacos, PlatformEmscripten}
}

// Expand resolves the requested platform list into a sorted, duplicate-free
// set of concrete platforms. The wildcard expands to every platform for
// bound-extension crates and to the default set for standalone binaries
// (a binary has nothing to run in the emscripten sandbox).
//
// Expansion does not apply the binary/emscripten exclusion to explicitly
// named platforms; that override belongs to graph assembly.
func Expand(requested []Platform, bridge Bridge) []Platform {
	seen := make(map[Platform]bool)
	for _, p := range requested {
		if p != PlatformAll {
			seen[p] = true
			continue
		}
		expansion := AllPlatforms()
		if IsBin(bridge) {
			expansion = DefaultPlatforms()
		}
		for _, e := range expansion {
			seen[e] = true
		}
	}

	out := make([]Platform, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
