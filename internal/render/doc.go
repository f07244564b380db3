// Package render serializes pipeline graphs into provider syntax.
//
// Each provider backend implements Renderer over the abstract graph from
// the pipeline package; no backend re-derives platform or feature
// decisions. Output is plain text built with strings.Builder rather than a
// YAML marshaller: the generated files are pinned byte-exact by golden
// tests, and a marshaller would re-flow indentation, quoting, and key
// order.
package render
