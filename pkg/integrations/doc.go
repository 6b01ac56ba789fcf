// Package integrations provides the shared HTTP client used by clients of
// third-party APIs.
//
// # Client Pattern
//
// An API client embeds [Client] and adds typed methods on top of it:
//
//	type Client struct {
//	    *integrations.Client
//	    baseURL string
//	}
//
//	func NewClient(backend cache.Cache, ttl time.Duration) *Client {
//	    return &Client{Client: integrations.NewClient(backend, "scholar", ttl, nil)}
//	}
//
// [Client] handles:
//   - default request headers
//   - response caching through a [cache.Cache], keyed by [cache.Keyer.HTTPKey]
//   - optional retry of transient failures (5xx, 429, transport errors)
//   - observability HTTP and cache hooks
//
// The only API client today is [scholar], the paper-search client.
//
// [cache.Cache]: github.com/matzehuels/graphologue/pkg/cache.Cache
// [cache.Keyer.HTTPKey]: github.com/matzehuels/graphologue/pkg/cache.Keyer
// [scholar]: github.com/matzehuels/graphologue/pkg/integrations/scholar
package integrations
