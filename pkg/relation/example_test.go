package relation_test

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/graphologue/pkg/relation"
)

func ExampleParse() {
	raw := "Plants $$$ are_made_of $$$ cells ### cells $$$ contain $$$ chloroplasts"
	for _, t := range relation.Parse(raw) {
		fmt.Println(t.Strings())
	}
	// Output:
	// [Plants made of cells]
	// [cells contain chloroplasts]
}

func ExampleExtract() {
	n := 0
	ids := func() string { n++; return "h" + strconv.Itoa(n) }

	raw := "cat $$$ owns $$$ toys, bed ### cat $$$ owns $$$ collar ### dog $$$ chases $$$ cat"
	for _, t := range relation.Extract(raw, relation.WithIDFunc(ids)) {
		fmt.Printf("%s -> %s\n", t.Subject.Display(), t.Object.Display())
	}
	// Output:
	// cat -> owns
	// owns -> toys
	// owns -> bed
	// owns -> collar
	// dog -> cat
}

func ExampleStripHubMarker() {
	fmt.Println(relation.StripHubMarker("contains____a1b2____"))
	// Output: contains
}
