// Package harness provides conformance testing for pipeline generation.
//
// Scenarios are YAML files describing one fully resolved generation
// request. The harness builds the config, renders it, and compares the
// output against a golden file, so the whole decision surface (platform
// expansion, step sequencing, release gating) is pinned end to end.
//
// # Scenario format
//
//	name: bindings_default
//	description: "What this scenario pins"
//	provider: github
//	project: example
//	bridge:
//	  kind: bindings
//	  crate: pyo3
//	platforms: [linux, musllinux]
//	sdist: true
//	pytest: false
//	zig: false
//	manifest_path: ""
//
// Golden files live in testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
