package namespace

import (
	"github.com/cuemby/chainsaw/pkg/codec"
	"github.com/cuemby/chainsaw/pkg/errs"
	"github.com/cuemby/chainsaw/pkg/label"
)

// Get returns the blob stored under id, or (nil, false, nil) if no such
// object exists in this namespace.
func (ns *Namespace) Get(id uint64) (blob []byte, ok bool, err error) {
	defer recordOp("get")(&err)
	if err = ns.checkOpen("get"); err != nil {
		return nil, false, err
	}
	blob, err = ns.dataTree.Get(codec.EncodeUint64(id))
	if err != nil {
		return nil, false, errs.New(errs.Io, ns.name, "get", err)
	}
	if blob == nil {
		return nil, false, nil
	}
	return blob, true, nil
}

// GetWithLabels returns the blob and its full label set for id.
func (ns *Namespace) GetWithLabels(id uint64) (blob []byte, labels []label.Label, ok bool, err error) {
	defer recordOp("get_with_labels")(&err)
	if err = ns.checkOpen("get"); err != nil {
		return nil, nil, false, err
	}
	idKey := codec.EncodeUint64(id)
	blob, err = ns.dataTree.Get(idKey)
	if err != nil {
		return nil, nil, false, errs.New(errs.Io, ns.name, "get", err)
	}
	if blob == nil {
		return nil, nil, false, nil
	}

	raw, err := ns.dataLabelsTree.Get(idKey)
	if err != nil {
		return nil, nil, false, errs.New(errs.Io, ns.name, "get", err)
	}
	labelIDs, err := decodeUint64List(raw)
	if err != nil {
		return nil, nil, false, errs.New(errs.Encoding, ns.name, "get", err)
	}

	labels = make([]label.Label, 0, len(labelIDs))
	for _, lid := range labelIDs {
		text, err := ns.labelsTree.Get(codec.EncodeUint64(lid))
		if err != nil {
			return nil, nil, false, errs.New(errs.Io, ns.name, "get", err)
		}
		if text == nil {
			continue
		}
		l, err := label.Parse(string(text))
		if err != nil {
			return nil, nil, false, errs.New(errs.Encoding, ns.name, "get", err)
		}
		labels = append(labels, l)
	}
	return blob, labels, true, nil
}
