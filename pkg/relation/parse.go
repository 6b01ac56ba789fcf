package relation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiters the text-to-graph prompt asks the model to use.
const (
	// DefaultItemBreak separates relation items.
	DefaultItemBreak = "###"
	// DefaultConnector separates subject, predicate and object inside an item.
	DefaultConnector = "$$$"
)

// stopWords are removed from predicates when they appear as whole words.
// Order matters: the first word that matches at a position wins.
var stopWords = []string{
	"is", "was", "are", "were",
	"has", "have", "had",
	"does", "do", "did",
	"a", "an", "the",
}

// Options overrides the item delimiters. Zero fields use the defaults.
type Options struct {
	ItemBreak string
	Connector string
}

func (o Options) withDefaults() Options {
	if o.ItemBreak == "" {
		o.ItemBreak = DefaultItemBreak
	}
	if o.Connector == "" {
		o.Connector = DefaultConnector
	}
	return o
}

// Parse splits raw model output into cleaned triplets using the default
// delimiters. Items that do not consist of exactly three parts, or whose
// subject or object is empty after cleanup, are dropped.
func Parse(raw string) []Triplet {
	return ParseWith(raw, Options{})
}

// ParseWith is like [Parse] with custom delimiters.
func ParseWith(raw string, opts Options) []Triplet {
	opts = opts.withDefaults()

	var out []Triplet
	for _, item := range strings.Split(raw, opts.ItemBreak) {
		parts := strings.Split(strings.TrimSpace(item), opts.Connector)
		if len(parts) != 3 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		parts[1] = CleanPredicate(parts[1])
		for i := range parts {
			parts[i] = CleanPart(parts[i])
		}
		parts[0] = CleanSubject(parts[0])

		t := New(parts[0], parts[1], parts[2])
		if !t.Valid() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CleanPredicate lowercases a predicate, turns underscores into spaces and
// removes auxiliary verbs and articles that stand as whole words.
func CleanPredicate(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	return removeStopWords(s)
}

// CleanPart trims s and removes every character outside letters, digits,
// space and , . ! ? & ( ). CleanPart is idempotent.
func CleanPart(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if allowedRune(r) {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}

// CleanSubject removes possessive 's and a single leading and trailing comma.
func CleanSubject(s string) string {
	s = strings.ReplaceAll(s, "'s", "")
	s = strings.TrimPrefix(s, ",")
	s = strings.TrimSuffix(s, ",")
	return s
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(" ,.!?&()", r)
}

// removeStopWords drops every stop word that is preceded by the start of the
// string or a whitespace character and followed by whitespace or the end of
// the string. The preceding whitespace is dropped with the word; the
// following whitespace is kept. Whitespace is any Unicode space.
func removeStopWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if n := stopWordAt(s, i); n > 0 {
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// stopWordAt returns the length of the stop-word match starting at i,
// including a consumed leading whitespace, or 0 if none matches.
func stopWordAt(s string, i int) int {
	var prefixes []int
	if i == 0 {
		prefixes = append(prefixes, 0)
	}
	if n := spaceAt(s, i); n > 0 {
		prefixes = append(prefixes, n)
	}
	for _, p := range prefixes {
		rest := s[i+p:]
		for _, w := range stopWords {
			if !strings.HasPrefix(rest, w) {
				continue
			}
			if end := i + p + len(w); end == len(s) || spaceAt(s, end) > 0 {
				return p + len(w)
			}
		}
	}
	return 0
}

// spaceAt returns the byte length of the whitespace rune at i, or 0.
func spaceAt(s string, i int) int {
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError || !unicode.IsSpace(r) {
		return 0
	}
	return size
}
