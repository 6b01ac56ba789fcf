package relation

import (
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want [][3]string
	}{
		{
			name: "single item",
			raw:  "cell $$$ has $$$ nucleus ###",
			want: [][3]string{{"cell", "", "nucleus"}},
		},
		{
			name: "multiple items",
			raw:  "cell $$$ contains $$$ nucleus ### nucleus $$$ stores $$$ DNA",
			want: [][3]string{{"cell", "contains", "nucleus"}, {"nucleus", "stores", "DNA"}},
		},
		{
			name: "missing connector drops item",
			raw:  "cell $$$ contains $$$ nucleus ### nucleus stores DNA ### DNA $$$ encodes $$$ proteins",
			want: [][3]string{{"cell", "contains", "nucleus"}, {"DNA", "encodes", "proteins"}},
		},
		{
			name: "too many parts drops item",
			raw:  "a $$$ b $$$ c $$$ d ### x $$$ y $$$ z",
			want: [][3]string{{"x", "y", "z"}},
		},
		{
			name: "predicate cleanup",
			raw:  "Water $$$ IS_MADE_OF $$$ hydrogen",
			want: [][3]string{{"Water", "made of", "hydrogen"}},
		},
		{
			name: "special characters stripped",
			raw:  "photo-synthesis; $$$ produces: $$$ \"oxygen\"\n",
			want: [][3]string{{"photosynthesis", "produces", "oxygen"}},
		},
		{
			name: "subject comma stripped",
			raw:  ",enzymes, $$$ speed up $$$ reactions",
			want: [][3]string{{"enzymes", "speed up", "reactions"}},
		},
		{
			name: "empty subject dropped",
			raw:  "$$$ causes $$$ rain ### clouds $$$ cause $$$ rain",
			want: [][3]string{{"clouds", "cause", "rain"}},
		},
		{
			name: "object list kept intact",
			raw:  "fruit $$$ includes $$$ apple, banana",
			want: [][3]string{{"fruit", "includes", "apple, banana"}},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToStrings(Parse(tt.raw))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d triplets %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("triplet %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseWithCustomDelimiters(t *testing.T) {
	got := ToStrings(ParseWith("a | links | b ;; c | links | d", Options{ItemBreak: ";;", Connector: "|"}))
	want := [][3]string{{"a", "links", "b"}, {"c", "links", "d"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanPredicate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"is part of", " part of"},
		{"has", ""},
		{"Has_The_Ability", " ability"},
		{"island of", "island of"},
		{"contains an enzyme", "contains enzyme"},
		{"is a", ""},
		{"does not have", " not"},
		{"theory of", "theory of"},
		{"made by the", "made by"},
		{"is\u00a0located in", "\u00a0located in"},
		{"grows\u2003the\u2003tree", "grows\u2003tree"},
	}

	for _, tt := range tests {
		if got := CleanPredicate(tt.in); got != tt.want {
			t.Errorf("CleanPredicate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanPartIdempotent(t *testing.T) {
	inputs := []string{
		"  hello, world!  ",
		"#tag (x) & y?",
		"über-cool – thing",
		"line\nbreak;semi",
		"  ",
	}

	for _, in := range inputs {
		once := CleanPart(in)
		if twice := CleanPart(once); twice != once {
			t.Errorf("CleanPart not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCleanedTripletUnchangedByCleanup(t *testing.T) {
	for _, tr := range Parse("Mitochondria $$$ are $$$ the powerhouse (of the cell)! ### ATP $$$ fuels $$$ muscles, neurons") {
		parts := tr.Strings()
		for i, p := range parts {
			if got := CleanPart(p); got != p {
				t.Errorf("part %d of %v changed: %q -> %q", i, parts, p, got)
			}
		}
	}
}

func TestCleanSubject(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cell's", "cell"},
		{",a,", "a"},
		{",,a,,", ",a,"},
		{",", ""},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := CleanSubject(tt.in); got != tt.want {
			t.Errorf("CleanSubject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseUnicodeWhitespacePredicate(t *testing.T) {
	got := Parse("Rome $$$ is\u00a0located in $$$ Italy ###")
	want := []Triplet{New("Rome", "located in", "Italy")}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}
