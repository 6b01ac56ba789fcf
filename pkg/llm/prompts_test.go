package llm

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphologue/pkg/relation"
)

func TestIsSentinel(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{ResponseModelDown, true},
		{ResponseNoValidModelText, true},
		{ResponseNoValidResponse, true},
		{"", false},
		{"cells contain a nucleus", false},
		{ResponseModelDown + " ", false},
	}
	for _, tt := range tests {
		if got := IsSentinel(tt.in); got != tt.want {
			t.Errorf("IsSentinel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTextToGraphPrompt(t *testing.T) {
	p := TextToGraphPrompt("  Cells contain a nucleus.  ")
	for _, want := range []string{relation.DefaultConnector, relation.DefaultItemBreak, "Cells contain a nucleus.\n"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
	if !strings.HasSuffix(p, "Relations:\n") {
		t.Errorf("prompt should end with the relations cue:\n%s", p)
	}
}

func TestTextToGraphPromptExampleParses(t *testing.T) {
	p := TextToGraphPrompt("x")
	line := p[strings.Index(p, "Example: ")+len("Example: "):]
	line = line[:strings.Index(line, "\n")]

	got := relation.Extract(line)
	if len(got) != 3 {
		t.Fatalf("example line %q gave %d triplets, want 3: %v", line, len(got), got)
	}
}

func TestExplainPrompt(t *testing.T) {
	p := ExplainPrompt("\nphotosynthesis\n")
	if !strings.Contains(p, "\n\nphotosynthesis\n\n") {
		t.Errorf("text not embedded trimmed:\n%q", p)
	}
}
