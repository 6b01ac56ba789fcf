// Package scholar searches an academic paper index for papers supporting
// the concepts of a mind map.
//
// [Client.Search] runs one keyword query against the Semantic Scholar
// Graph API (GET /graph/v1/paper/search). [Client.PapersForKeywords] runs
// a batch of keywords and merges the results: per keyword it keeps the
// first papers not already kept for an earlier keyword and tags them with
// the keyword that found them.
//
// Searches share one rate limiter and may run concurrently, but the merge
// always walks keywords in input order, so the result is the same as a
// sequential run. A failing keyword is logged and skipped; it never aborts
// the batch.
package scholar
