package namespace

import (
	"context"

	"github.com/cuemby/chainsaw/pkg/errs"
)

// Drop deletes all five trees for this namespace and marks the handle
// closed. Any operation against ns after Drop returns KindNamespaceClosed;
// Drop itself is idempotent — dropping an already-dropped namespace is a
// no-op.
func (ns *Namespace) Drop(ctx context.Context) (err error) {
	defer recordOp("drop")(&err)
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if ns.closed.Load() {
		return nil
	}

	for _, t := range [][]byte{ns.labels, ns.labelsInverse, ns.data, ns.dataLabels, ns.dataLabelsInverse} {
		if _, derr := ns.db.DropTree(t); derr != nil {
			err = errs.New(errs.Io, ns.name, "drop", derr)
			return err
		}
	}
	ns.closed.Store(true)
	return nil
}

// Closed reports whether Drop has been called on this handle.
func (ns *Namespace) Closed() bool { return ns.closed.Load() }
