package relation

import (
	"strings"

	"github.com/google/uuid"
)

// ExpandOption configures [Expand].
type ExpandOption func(*expandConfig)

type expandConfig struct {
	newID     func() string
	connector string
}

// WithIDFunc sets the generator for hub identifiers. The default generates
// random UUIDs. Generated identifiers must be unique within one call and
// must not contain the hub marker.
func WithIDFunc(fn func() string) ExpandOption {
	return func(c *expandConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithConnector sets the separator used to build pair keys. It only needs to
// change when subjects may legitimately contain the default connector.
func WithConnector(connector string) ExpandOption {
	return func(c *expandConfig) {
		if connector != "" {
			c.connector = connector
		}
	}
}

// pairState tracks one subject+predicate pair during a single Expand call.
type pairState struct {
	count    int
	expanded bool
	hubID    string
}

// pairTable maps pair keys to their state. A new table is built for every
// Expand call.
type pairTable map[string]*pairState

func (p pairTable) key(t Triplet, connector string) string {
	var b strings.Builder
	b.WriteString(t.Subject.String())
	b.WriteString(connector)
	b.WriteString(t.Predicate)
	return b.String()
}

// Expand rewrites every subject+predicate pair that occurs at least twice
// through a hub node. The first occurrence of such a pair emits
// (subject, "", hub); every occurrence emits (hub, "", object). All other
// triplets, including those with an empty predicate, pass through unchanged.
// Output follows input order.
//
// Pairs are matched on exact text. Predicates that differ only in wording
// are not merged.
func Expand(ts []Triplet, opts ...ExpandOption) []Triplet {
	cfg := expandConfig{newID: uuid.NewString, connector: DefaultConnector}
	for _, opt := range opts {
		opt(&cfg)
	}

	pairs := make(pairTable)
	for _, t := range ts {
		if t.Predicate == "" {
			continue
		}
		k := pairs.key(t, cfg.connector)
		if st, ok := pairs[k]; ok {
			st.count++
			continue
		}
		pairs[k] = &pairState{count: 1, hubID: cfg.newID()}
	}

	out := make([]Triplet, 0, len(ts))
	for _, t := range ts {
		if t.Predicate == "" {
			out = append(out, t)
			continue
		}
		st := pairs[pairs.key(t, cfg.connector)]
		if st.count < 2 {
			out = append(out, t)
			continue
		}

		hub := Hub(t.Predicate, st.hubID)
		if !st.expanded {
			out = append(out, Triplet{Subject: t.Subject, Object: hub})
			st.expanded = true
		}
		out = append(out, Triplet{Subject: hub, Object: t.Object})
	}
	return out
}
