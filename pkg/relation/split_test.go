package relation

import "testing"

func TestSplitObjects(t *testing.T) {
	tests := []struct {
		name string
		in   []Triplet
		want [][3]string
	}{
		{
			name: "list object",
			in:   []Triplet{New("fruit", "includes", "apple, banana, cherry")},
			want: [][3]string{
				{"fruit", "includes", "apple"},
				{"fruit", "includes", "banana"},
				{"fruit", "includes", "cherry"},
			},
		},
		{
			name: "no comma",
			in:   []Triplet{New("sky", "", "blue")},
			want: [][3]string{{"sky", "", "blue"}},
		},
		{
			name: "empty pieces dropped",
			in:   []Triplet{New("x", "y", "a,, b ,")},
			want: [][3]string{{"x", "y", "a"}, {"x", "y", "b"}},
		},
		{
			name: "hub object never split",
			in:   []Triplet{{Subject: Plain("s"), Object: Hub("p, q", "h1")}},
			want: [][3]string{{"s", "", "p, q____h1____"}},
		},
		{
			name: "order preserved",
			in: []Triplet{
				New("a", "r", "b, c"),
				New("d", "r", "e"),
			},
			want: [][3]string{{"a", "r", "b"}, {"a", "r", "c"}, {"d", "r", "e"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToStrings(SplitObjects(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("triplet %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtract(t *testing.T) {
	raw := "cat $$$ owns $$$ fur ### cat $$$ owns $$$ paws, whiskers ### dog $$$ chases $$$ cat"
	got := ToStrings(Extract(raw, WithIDFunc(counterIDs())))
	want := [][3]string{
		{"cat", "", "owns____h1____"},
		{"owns____h1____", "", "fur"},
		{"owns____h1____", "", "paws"},
		{"owns____h1____", "", "whiskers"},
		{"dog", "chases", "cat"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triplet %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractEndpointsNonEmpty(t *testing.T) {
	raw := "a $$$ is $$$ b, , c ### $$$ x $$$ y ### d $$$ e $$$ ,"
	for _, tr := range Extract(raw) {
		if tr.Subject.IsZero() || tr.Object.IsZero() {
			t.Errorf("triplet with empty endpoint: %v", tr)
		}
	}
}

func TestExtractWithCustomConnector(t *testing.T) {
	raw := "a|r|b;a|r|c"
	got := ExtractWith(raw, Options{ItemBreak: ";", Connector: "|"}, WithIDFunc(counterIDs()))
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 triplets", got)
	}
	if !got[0].Object.IsHub() {
		t.Errorf("expected hub expansion, got %v", got)
	}
}
