// Package pkg holds the libraries behind Graphologue, which turns language
// model answers into laid-out mind maps.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [relation] - Triplet extraction (parse, hub expansion, object splitting)
//  2. [dag] and [dag/transform] - Graph structure and layering transforms
//  3. [layout] - Layout engines (built-in layered, Graphviz)
//  4. [graph] - Graph construction, serialization and rendering
//  5. [llm] - Completion client and prompts
//  6. [integrations] - HTTP plumbing and the paper-search client
//  7. [cache] - File, Redis and no-op caches with key derivation
//  8. [pipeline] - Orchestration (relations → layout → render)
//
// # Data Flow
//
//	model answer
//	     ↓
//	[llm] completion restates it as "subject $$$ predicate $$$ object ###"
//	     ↓
//	[relation] Extract → triplets with hub nodes
//	     ↓
//	[graph] Build → [dag] graph → [layout] engine → positions
//	     ↓
//	JSON document, DOT or SVG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/graphologue/pkg/graph"
//	    "github.com/matzehuels/graphologue/pkg/layout"
//	    "github.com/matzehuels/graphologue/pkg/relation"
//	)
//
//	ts := relation.Extract("cell $$$ contains $$$ nucleus, ribosomes ###")
//	positions, err := graph.Construct(ctx, ts, layout.Layered{})
//
// [relation]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/relation
// [dag]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/dag/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/layout
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/graph
// [llm]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/llm
// [integrations]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphologue/pkg/pipeline
package pkg
