// Package relation extracts concept relations from language model output.
//
// A language model asked to describe an explanation as a graph answers with a
// semi-structured string of items:
//
//	cell $$$ has $$$ nucleus ### nucleus $$$ contains $$$ DNA, RNA ###
//
// This package turns that string into clean [Triplet] values in three stages:
//
//  1. [Parse] splits the text into items, cleans each token and drops every
//     item that is not a well-formed subject/predicate/object triple.
//  2. [Expand] rewrites subject+predicate pairs that occur at least twice
//     through a synthetic hub node, so the predicate is drawn once and every
//     object hangs off the hub with an unlabelled edge.
//  3. [SplitObjects] expands objects written as comma-separated lists into
//     one triplet per item.
//
// [Extract] runs all three stages.
//
// # Hub Labels
//
// Hub nodes are represented by [Label] values with a non-empty HubID. Layout
// engines and JSON consumers need plain strings, so [Label.String] encodes a
// hub as the predicate text followed by a hidden marker:
//
//	contains____3f1c2a9e-...____
//
// [HasHubMarker] and [StripHubMarker] let display code recognise hubs and
// show the bare predicate. Parsed labels never contain underscores, so a
// marker can not collide with a real concept label.
//
// # Error Handling
//
// Nothing in this package returns an error. Malformed items are dropped
// silently and the cleanup heuristics are best-effort: the stop-word filter
// on predicates is a word list, not a part-of-speech tagger, and pairs are
// only merged on exact text match.
package relation
