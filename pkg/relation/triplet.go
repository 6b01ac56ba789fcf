package relation

import (
	"encoding/json"
	"fmt"
)

// Triplet is a (subject, predicate, object) relation. An empty Predicate
// means the edge carries no label; hub expansion produces such edges.
//
// Triplets serialize to JSON as a three-element string array, with hub
// labels in their marker-encoded form.
type Triplet struct {
	Subject   Label
	Predicate string
	Object    Label
}

// New returns a triplet between two plain concept labels.
func New(subject, predicate, object string) Triplet {
	return Triplet{Subject: Plain(subject), Predicate: predicate, Object: Plain(object)}
}

// FromStrings builds a triplet from its serialized form, decoding hub
// markers in the subject and object.
func FromStrings(parts [3]string) Triplet {
	return Triplet{
		Subject:   ParseLabel(parts[0]),
		Predicate: parts[1],
		Object:    ParseLabel(parts[2]),
	}
}

// Strings returns the serialized form of the triplet.
func (t Triplet) Strings() [3]string {
	return [3]string{t.Subject.String(), t.Predicate, t.Object.String()}
}

// String formats the triplet for logs and debugging.
func (t Triplet) String() string {
	return fmt.Sprintf("(%s -[%s]-> %s)", t.Subject.String(), t.Predicate, t.Object.String())
}

// Valid reports whether both endpoints are non-empty.
func (t Triplet) Valid() bool {
	return !t.Subject.IsZero() && !t.Object.IsZero()
}

// MarshalJSON encodes the triplet as a three-element string array.
func (t Triplet) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Strings())
}

// UnmarshalJSON decodes a three-element string array.
func (t *Triplet) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("triplet must have 3 elements, got %d", len(parts))
	}
	*t = FromStrings([3]string{parts[0], parts[1], parts[2]})
	return nil
}

// ToStrings converts triplets to their serialized form.
func ToStrings(ts []Triplet) [][3]string {
	out := make([][3]string, len(ts))
	for i, t := range ts {
		out[i] = t.Strings()
	}
	return out
}
