// Package pipeline builds the provider-agnostic pipeline graph.
//
// All decision logic lives here: platform wildcard expansion, the fixed
// runner/target matrix tables, per-platform step sequencing, and assembly
// of the final job graph with its terminal release job. Renderers consume
// the graph without re-deciding anything.
//
// Everything in this package is deterministic and total: a built Config
// always produces the same Graph, and graph construction cannot fail.
// Entities live for a single generation call; nothing is shared between
// invocations.
package pipeline
