package relation

import "strings"

// SplitObjects expands triplets whose object is a comma-separated list into
// one triplet per list item, keeping subject and predicate. Items are
// trimmed and empty items are dropped. Hub objects are never split.
func SplitObjects(ts []Triplet) []Triplet {
	out := make([]Triplet, 0, len(ts))
	for _, t := range ts {
		if t.Object.IsHub() || !strings.Contains(t.Object.Text, ",") {
			out = append(out, t)
			continue
		}
		for _, item := range strings.Split(t.Object.Text, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			out = append(out, Triplet{Subject: t.Subject, Predicate: t.Predicate, Object: Plain(item)})
		}
	}
	return out
}

// Extract runs the complete relation pipeline on raw model output:
// [Parse], [Expand] and [SplitObjects].
func Extract(raw string, opts ...ExpandOption) []Triplet {
	return SplitObjects(Expand(Parse(raw), opts...))
}

// ExtractWith is like [Extract] with custom delimiters. The connector is
// also used for hub pair keys.
func ExtractWith(raw string, parse Options, opts ...ExpandOption) []Triplet {
	parse = parse.withDefaults()
	opts = append([]ExpandOption{WithConnector(parse.Connector)}, opts...)
	return SplitObjects(Expand(ParseWith(raw, parse), opts...))
}
