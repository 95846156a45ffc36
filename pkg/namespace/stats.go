package namespace

import "github.com/cuemby/chainsaw/pkg/errs"

// Stats reports per-tree counts and checksums, a cheap consistency
// fingerprint for operational tooling (and for tests asserting a mutation
// actually changed stored state).
type Stats struct {
	Namespace string

	Labels            TreeStats
	LabelsInverse     TreeStats
	Data              TreeStats
	DataLabels        TreeStats
	DataLabelsInverse TreeStats
}

// TreeStats is one tree's entry count and crc32 fold over its contents.
type TreeStats struct {
	Len      int
	Checksum uint32
}

func (ns *Namespace) Stats() (stats Stats, err error) {
	defer recordOp("stats")(&err)
	if err = ns.checkOpen("stats"); err != nil {
		return Stats{}, err
	}

	s := Stats{Namespace: ns.name}
	if s.Labels, err = treeStats(ns.labelsTree); err != nil {
		return Stats{}, errs.New(errs.Io, ns.name, "stats", err)
	}
	if s.LabelsInverse, err = treeStats(ns.labelsInverseTree); err != nil {
		return Stats{}, errs.New(errs.Io, ns.name, "stats", err)
	}
	if s.Data, err = treeStats(ns.dataTree); err != nil {
		return Stats{}, errs.New(errs.Io, ns.name, "stats", err)
	}
	if s.DataLabels, err = treeStats(ns.dataLabelsTree); err != nil {
		return Stats{}, errs.New(errs.Io, ns.name, "stats", err)
	}
	if s.DataLabelsInverse, err = treeStats(ns.dataLabelsInverseTree); err != nil {
		return Stats{}, errs.New(errs.Io, ns.name, "stats", err)
	}
	return s, nil
}

func treeStats(t interface {
	Len() (int, error)
	Checksum() (uint32, error)
}) (TreeStats, error) {
	n, err := t.Len()
	if err != nil {
		return TreeStats{}, err
	}
	c, err := t.Checksum()
	if err != nil {
		return TreeStats{}, err
	}
	return TreeStats{Len: n, Checksum: c}, nil
}
