// Package namespace implements the five-tree label-indexed storage engine:
// labels, labels_inverse, data, data_labels, and data_labels_inverse,
// composed per namespace as "<namespace><US><role>" bucket names, grounded
// on the teacher's pkg/storage/boltdb.go bucket-per-entity idiom generalized
// from a fixed entity set to these five roles, and on the five-tree Bucket
// design in original_source/src/bucket.rs.
package namespace

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cuemby/chainsaw/pkg/errs"
	"github.com/cuemby/chainsaw/pkg/kv"
	"github.com/cuemby/chainsaw/pkg/label"
	"github.com/cuemby/chainsaw/pkg/metrics"
)

// role names compose with a namespace name and label.Separator to produce
// bucket names, matching original_source/src/bucket.rs's
// "{name}{SEPARATOR}{tree}" convention.
const (
	roleLabels             = "labels"
	roleLabelsInverse      = "labels_inverse"
	roleData               = "data"
	roleDataLabels         = "data_labels"
	roleDataLabelsInverse  = "data_labels_inverse"
)

// Namespace is a handle on one namespace's five trees. The byte-slice
// fields name the buckets for transaction-scoped access (txn.Tree); the
// *kv.Tree fields are standalone handles for reads outside a transaction
// (Get, Stats, Prune). Besides a *kv.Db pointer and these small handles it
// holds only a closed flag and an internal mutex, so sharing a *Namespace
// across goroutines is safe without any lock visible to callers.
type Namespace struct {
	db   *kv.Db
	name string

	labels            []byte
	labelsInverse     []byte
	data              []byte
	dataLabels        []byte
	dataLabelsInverse []byte

	labelsTree            *kv.Tree
	labelsInverseTree     *kv.Tree
	dataTree              *kv.Tree
	dataLabelsTree        *kv.Tree
	dataLabelsInverseTree *kv.Tree

	closed atomic.Bool
	mu     sync.Mutex // serializes concurrent Drop calls; other operations do not take it
}

func treeName(namespace, role string) []byte {
	return []byte(namespace + label.Separator + role)
}

// Open ensures all five trees for name exist and returns a handle to them.
// Opening an already-open namespace is idempotent.
func Open(db *kv.Db, name string) (*Namespace, error) {
	ns := &Namespace{
		db:                db,
		name:              name,
		labels:            treeName(name, roleLabels),
		labelsInverse:     treeName(name, roleLabelsInverse),
		data:              treeName(name, roleData),
		dataLabels:        treeName(name, roleDataLabels),
		dataLabelsInverse: treeName(name, roleDataLabelsInverse),
	}

	var err error
	if ns.labelsTree, err = db.OpenTree(ns.labels); err != nil {
		return nil, fmt.Errorf("namespace: open %s: %w", name, err)
	}
	if ns.labelsInverseTree, err = db.OpenTree(ns.labelsInverse); err != nil {
		return nil, fmt.Errorf("namespace: open %s: %w", name, err)
	}
	if ns.dataTree, err = db.OpenTree(ns.data); err != nil {
		return nil, fmt.Errorf("namespace: open %s: %w", name, err)
	}
	if ns.dataLabelsTree, err = db.OpenTree(ns.dataLabels); err != nil {
		return nil, fmt.Errorf("namespace: open %s: %w", name, err)
	}
	if ns.dataLabelsInverseTree, err = db.OpenTree(ns.dataLabelsInverse); err != nil {
		return nil, fmt.Errorf("namespace: open %s: %w", name, err)
	}
	return ns, nil
}

// Name returns the namespace's name.
func (ns *Namespace) Name() string { return ns.name }

func (ns *Namespace) checkOpen(op string) error {
	if ns.closed.Load() {
		return errs.New(errs.NamespaceClosed, ns.name, op, fmt.Errorf("namespace %q is closed", ns.name))
	}
	return nil
}

// recordOp instruments one namespace operation, following the teacher's
// pkg/metrics Timer idiom of recording duration and outcome at the call
// site rather than through a polling collector. Callers defer the
// returned func against their named error return, e.g.:
//
//	func (ns *Namespace) Insert(...) (id uint64, err error) {
//		defer recordOp("insert")(&err)
//		...
//	}
func recordOp(op string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		outcome := "ok"
		if errp != nil && *errp != nil {
			outcome = "error"
		}
		metrics.OperationsTotal.WithLabelValues(op, outcome).Inc()
		metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
