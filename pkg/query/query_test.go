package query

import (
	"testing"

	"github.com/cuemby/chainsaw/pkg/label"
	"github.com/stretchr/testify/require"
)

// fakeReader is an in-memory Reader used to test the planner in isolation
// from bbolt.
type fakeReader struct {
	byLabel map[string][]uint64 // keyed by Label.Text()
	labels  []label.Label
}

func (f *fakeReader) ObjectsForLabel(l label.Label) ([]uint64, error) {
	return f.byLabel[l.Text()], nil
}

func (f *fakeReader) LabelsWithPrefix(prefix string) ([]label.Label, error) {
	var out []label.Label
	for _, l := range f.labels {
		if len(l.Text()) >= len(prefix) && l.Text()[:len(prefix)] == prefix {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestEvaluateNoIncludeNoPrefixIsEmpty(t *testing.T) {
	r := &fakeReader{}
	got, err := Evaluate(r, Request{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEvaluateUnionOfIncludes(t *testing.T) {
	tagA := label.New("tag", "a")
	tagB := label.New("tag", "b")
	r := &fakeReader{byLabel: map[string][]uint64{
		tagA.Text(): {1},
		tagB.Text(): {2},
	}}
	got, err := Evaluate(r, Request{Include: []label.Label{tagA, tagB}})
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, got)
}

func TestEvaluateExcludeSubtracts(t *testing.T) {
	tagA := label.New("tag", "a")
	tagB := label.New("tag", "b")
	r := &fakeReader{byLabel: map[string][]uint64{
		tagA.Text(): {1, 4},
		tagB.Text(): {2, 4},
	}}
	got, err := Evaluate(r, Request{
		Include: []label.Label{tagA, tagB},
		Exclude: []label.Label{tagB},
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{1}, got)
}

func TestEvaluateUnknownLabelContributesNothing(t *testing.T) {
	r := &fakeReader{byLabel: map[string][]uint64{}}
	got, err := Evaluate(r, Request{Include: []label.Label{label.New("missing", "x")}})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEvaluatePrefixExpansion(t *testing.T) {
	labels := []label.Label{
		label.New("content_type", "code-common"),
		label.New("content_type", "code-mutable"),
		label.New("content_type", "code-misc"),
		label.New("content_type", "doc"),
		label.New("content_type", "image"),
	}
	byLabel := map[string][]uint64{
		labels[0].Text(): {10},
		labels[1].Text(): {11},
		labels[2].Text(): {12},
		labels[3].Text(): {13},
		labels[4].Text(): {14},
	}
	r := &fakeReader{byLabel: byLabel, labels: labels}

	got, err := Evaluate(r, Request{
		IncludePrefix: []string{"content_type" + label.Separator + "code"},
		Exclude:       []label.Label{labels[0], labels[2]},
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{11}, got)
}

func TestEvaluateIsReentrant(t *testing.T) {
	tagA := label.New("tag", "a")
	r := &fakeReader{byLabel: map[string][]uint64{tagA.Text(): {1}}}
	req := Request{Include: []label.Label{tagA}}

	first, err := Evaluate(r, req)
	require.NoError(t, err)
	second, err := Evaluate(r, req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
