// Package query implements the planner spec.md §4.3 describes: a stateless
// evaluation of an include-set, exclude-set, and prefix-scan-set against a
// namespace's inverse label index. Unlike the Rust original's QueryRequest
// (a RefCell-guarded, single-use struct with an "already executed" error),
// Request here is a plain value and Evaluate is a pure, reentrant function
// — spec.md §9's re-architecture guidance applied directly.
package query

import (
	"fmt"
	"sort"

	"github.com/cuemby/chainsaw/pkg/label"
)

// Reader is the slice of Namespace that the planner needs. Namespace
// implements it directly; tests can supply a fake for planner-only
// coverage without touching bbolt.
type Reader interface {
	// ObjectsForLabel returns every ObjectID currently carrying l, or an
	// empty (nil) slice if l has never been used — never an error for an
	// unknown label.
	ObjectsForLabel(l label.Label) ([]uint64, error)

	// LabelsWithPrefix returns every label whose canonical text begins
	// with prefix, via an ordered scan of labels_inverse.
	LabelsWithPrefix(prefix string) ([]label.Label, error)
}

// Request is the planner's input: include/exclude labels plus prefix
// texts to expand into more include labels.
type Request struct {
	Include       []label.Label
	Exclude       []label.Label
	IncludePrefix []string
}

// Evaluate runs the plan: prefix expansion, include union, exclude union,
// subtraction, then a deterministic ascending sort. No include labels and
// no prefixes yields an empty result — not "all" — exactly per spec.md
// §4.2.3's "explicit policy choice to prevent accidental full scans."
func Evaluate(r Reader, req Request) ([]uint64, error) {
	include := append([]label.Label(nil), req.Include...)

	for _, prefix := range req.IncludePrefix {
		expanded, err := r.LabelsWithPrefix(prefix)
		if err != nil {
			return nil, fmt.Errorf("query: expand prefix %q: %w", prefix, err)
		}
		include = append(include, expanded...)
	}
	include = label.Set(include)

	if len(include) == 0 {
		return []uint64{}, nil
	}

	includeSet, err := union(r, include)
	if err != nil {
		return nil, fmt.Errorf("query: resolve include: %w", err)
	}

	excludeSet, err := union(r, label.Set(req.Exclude))
	if err != nil {
		return nil, fmt.Errorf("query: resolve exclude: %w", err)
	}

	result := make([]uint64, 0, len(includeSet))
	for id := range includeSet {
		if _, excluded := excludeSet[id]; excluded {
			continue
		}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

func union(r Reader, labels []label.Label) (map[uint64]struct{}, error) {
	set := make(map[uint64]struct{})
	for _, l := range labels {
		ids, err := r.ObjectsForLabel(l)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}
	return set, nil
}
