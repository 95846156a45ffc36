package namespace

import (
	"github.com/cuemby/chainsaw/pkg/codec"
	"github.com/cuemby/chainsaw/pkg/errs"
	"github.com/cuemby/chainsaw/pkg/label"
	"github.com/cuemby/chainsaw/pkg/query"
)

// Query runs req against this namespace's label index and returns matching
// ObjectIDs in ascending order. Namespace implements query.Reader directly
// so the planner can be driven without any intermediate adapter.
func (ns *Namespace) Query(req query.Request) (ids []uint64, err error) {
	defer recordOp("query")(&err)
	if err = ns.checkOpen("query"); err != nil {
		return nil, err
	}
	ids, err = query.Evaluate(ns, req)
	if err != nil {
		return nil, errs.New(errs.Io, ns.name, "query", err)
	}
	return ids, nil
}

// ObjectsForLabel implements query.Reader.
func (ns *Namespace) ObjectsForLabel(l label.Label) ([]uint64, error) {
	raw, err := ns.dataLabelsInverseTree.Get(codec.EncodeUint64(l.ID()))
	if err != nil {
		return nil, err
	}
	return decodeUint64List(raw)
}

// LabelsWithPrefix implements query.Reader by scanning labels_inverse, whose
// keys are raw canonical label text, so lexical byte order matches the
// prefix boundary exactly.
func (ns *Namespace) LabelsWithPrefix(prefix string) ([]label.Label, error) {
	var (
		out     []label.Label
		scanErr error
	)
	err := ns.labelsInverseTree.ScanPrefix(codec.EncodeText(prefix), func(k, _ []byte) bool {
		l, err := label.Parse(string(k))
		if err != nil {
			scanErr = err
			return false
		}
		out = append(out, l)
		return true
	})
	if err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return out, nil
}
