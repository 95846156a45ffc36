package namespace

import (
	"github.com/cuemby/chainsaw/pkg/codec"
	"github.com/cuemby/chainsaw/pkg/errs"
)

// PruneReport is a read-only consistency diagnostic: it never repairs
// state, it only counts what a fully-consistent namespace should not have.
// Supplemented from the old two-tree draft's WIP prune() scan in
// original_source/src/namespace.rs, which this generalizes to the five-tree
// model; surfaced by the "chainsawd fsck" command.
type PruneReport struct {
	Namespace string

	// OrphanedObjects are ObjectIDs present in data but missing a
	// data_labels entry.
	OrphanedObjects []uint64

	// OrphanedLabels are LabelIDs referenced by data_labels_inverse but
	// missing a labels entry.
	OrphanedLabels []uint64
}

// Clean reports whether the namespace had nothing to flag.
func (r PruneReport) Clean() bool {
	return len(r.OrphanedObjects) == 0 && len(r.OrphanedLabels) == 0
}

// Prune scans data and data_labels_inverse for referential gaps, without
// mutating anything. It exists to catch states that should be unreachable
// through Insert/Delete's transactional protocol — evidence of a bug or of
// manual tampering with the underlying file, not a maintenance step a
// healthy namespace needs to run routinely.
func (ns *Namespace) Prune() (_ PruneReport, err error) {
	defer recordOp("prune")(&err)
	if err = ns.checkOpen("prune"); err != nil {
		return PruneReport{}, err
	}

	report := PruneReport{Namespace: ns.name}
	var scanErr error

	err = ns.dataTree.ScanPrefix(nil, func(k, _ []byte) bool {
		id, derr := codec.DecodeUint64(k)
		if derr != nil {
			scanErr = derr
			return false
		}
		has, derr := ns.dataLabelsTree.Get(k)
		if derr != nil {
			scanErr = derr
			return false
		}
		if has == nil {
			report.OrphanedObjects = append(report.OrphanedObjects, id)
		}
		return true
	})
	if err != nil {
		return PruneReport{}, errs.New(errs.Io, ns.name, "prune", err)
	}
	if scanErr != nil {
		return PruneReport{}, errs.New(errs.Encoding, ns.name, "prune", scanErr)
	}

	err = ns.dataLabelsInverseTree.ScanPrefix(nil, func(k, _ []byte) bool {
		id, derr := codec.DecodeUint64(k)
		if derr != nil {
			scanErr = derr
			return false
		}
		text, derr := ns.labelsTree.Get(k)
		if derr != nil {
			scanErr = derr
			return false
		}
		if text == nil {
			report.OrphanedLabels = append(report.OrphanedLabels, id)
		}
		return true
	})
	if err != nil {
		return PruneReport{}, errs.New(errs.Io, ns.name, "prune", err)
	}
	if scanErr != nil {
		return PruneReport{}, errs.New(errs.Encoding, ns.name, "prune", scanErr)
	}

	return report, nil
}
