package llm

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphologue/pkg/relation"
)

// Sentinel responses stand in for model output that cannot be turned into a
// graph. Relation extraction short-circuits on them without calling the
// completion service.
const (
	ResponseModelDown        = "The language model is currently unavailable. Please try again later."
	ResponseNoValidModelText = "The language model did not return any text."
	ResponseNoValidResponse  = "The language model did not return a valid response."
)

var sentinels = []string{
	ResponseModelDown,
	ResponseNoValidModelText,
	ResponseNoValidResponse,
}

// IsSentinel reports whether s is one of the sentinel responses.
func IsSentinel(s string) bool {
	for _, r := range sentinels {
		if s == r {
			return true
		}
	}
	return false
}

// TextToGraphPrompt asks the model to restate text as relation triplets in
// the item format understood by [relation.Parse].
func TextToGraphPrompt(text string) string {
	ib, conn := relation.DefaultItemBreak, relation.DefaultConnector
	var b strings.Builder
	b.WriteString("Extract the key concepts of the following text and the relations between them.\n")
	fmt.Fprintf(&b, "Write every relation as: subject %s predicate %s object %s\n", conn, conn, ib)
	b.WriteString("Keep subjects and objects short noun phrases and predicates short verb phrases. ")
	b.WriteString("Separate several objects of the same relation with commas.\n")
	fmt.Fprintf(&b, "Example: water %s consists of %s hydrogen, oxygen %s plants %s produce %s oxygen %s\n\n",
		conn, conn, ib, conn, conn, ib)
	b.WriteString("Text:\n")
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n\nRelations:\n")
	return b.String()
}

// ExplainPrompt asks the model to explain text in more depth.
func ExplainPrompt(text string) string {
	return "Explain the following in more detail, in plain language and in a few short paragraphs:\n\n" +
		strings.TrimSpace(text) + "\n\nExplanation:\n"
}
