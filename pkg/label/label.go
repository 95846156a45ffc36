// Package label defines the (name, value) pairs attached to blobs, their
// canonical text form, and the deterministic 64-bit ID derived from it.
package label

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Separator is the ASCII Unit Separator (0x1F), used to join a label's name
// and value into one canonical text string and as the delimiter inside a
// namespace's composed tree names.
const Separator = "\x1f"

// ID is the 64-bit identifier derived from a label's canonical text.
// Equal text always hashes to the same ID, across processes and namespaces.
type ID = uint64

// Label is a single key=value annotation attached to a blob.
type Label struct {
	Name  string
	Value string
}

// New builds a Label from a name and value.
func New(name, value string) Label {
	return Label{Name: name, Value: value}
}

// Text returns the canonical "<name><US><value>" form used both as the hash
// input and as the literal key stored in labels_inverse.
func (l Label) Text() string {
	return l.Name + Separator + l.Value
}

// ID hashes Text() with xxhash to produce this label's LabelID. xxhash was
// picked over a hand-rolled hash because it is a well-understood,
// collision-resistant, platform- and version-stable 64-bit hash already
// present in the ecosystem this module draws its stack from — see
// DESIGN.md for the alternatives considered.
func (l Label) ID() ID {
	return xxhash.Sum64String(l.Text())
}

func (l Label) String() string {
	return fmt.Sprintf("%s=%s", l.Name, l.Value)
}

// Parse splits canonical text back into a Label. It is the inverse of Text
// and is used when reconstructing a Label from a labels_inverse scan, where
// only the raw "<name><US><value>" bytes are available.
func Parse(text string) (Label, error) {
	for i := 0; i < len(text); i++ {
		if text[i] == Separator[0] {
			return Label{Name: text[:i], Value: text[i+1:]}, nil
		}
	}
	return Label{}, fmt.Errorf("label: %q has no separator", text)
}

// Set dedups a slice of labels by canonical text, preserving the order of
// first occurrence.
func Set(labels []Label) []Label {
	seen := make(map[string]struct{}, len(labels))
	out := make([]Label, 0, len(labels))
	for _, l := range labels {
		t := l.Text()
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, l)
	}
	return out
}
