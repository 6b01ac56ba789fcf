package relation

import (
	"regexp"
	"strings"
)

// hubMarker delimits the hidden hub identifier inside a serialized label.
const hubMarker = "____"

var (
	hubMarkerRe = regexp.MustCompile(hubMarker + `.*?` + hubMarker)
	hubLabelRe  = regexp.MustCompile(`^(.*?)` + hubMarker + `(.+?)` + hubMarker + `$`)
)

// Label is a node label. A Label with an empty HubID is a plain concept
// label; otherwise it names a synthetic hub node carrying Text (a predicate)
// for the subject+predicate pair identified by HubID.
//
// Two hub labels with the same Text but different HubIDs are distinct nodes.
type Label struct {
	Text  string
	HubID string
}

// Plain returns a concept label.
func Plain(text string) Label { return Label{Text: text} }

// Hub returns a hub label for predicate text and hub identifier id.
func Hub(text, id string) Label { return Label{Text: text, HubID: id} }

// IsHub reports whether the label names a synthetic hub node.
func (l Label) IsHub() bool { return l.HubID != "" }

// IsZero reports whether the label has neither text nor hub identifier.
func (l Label) IsZero() bool { return l.Text == "" && l.HubID == "" }

// String returns the serialized form of the label. Plain labels serialize to
// their text; hub labels embed the identifier in a hidden marker so the
// result can be used as a unique node identifier.
func (l Label) String() string {
	if !l.IsHub() {
		return l.Text
	}
	return l.Text + hubMarker + l.HubID + hubMarker
}

// Display returns the text shown to users, without any hub marker.
func (l Label) Display() string { return l.Text }

// ParseLabel decodes a serialized label produced by [Label.String].
// Strings without a well-formed trailing marker decode to plain labels.
func ParseLabel(s string) Label {
	if m := hubLabelRe.FindStringSubmatch(s); m != nil {
		return Label{Text: m[1], HubID: m[2]}
	}
	return Label{Text: s}
}

// HasHubMarker reports whether a serialized label contains a hidden hub marker.
func HasHubMarker(s string) bool {
	return strings.Contains(s, hubMarker)
}

// StripHubMarker removes every hidden hub marker from a serialized label.
// Labels without a marker are returned unchanged.
func StripHubMarker(s string) string {
	if !HasHubMarker(s) {
		return s
	}
	return hubMarkerRe.ReplaceAllString(s, "")
}
