package namespace

import (
	"context"

	"github.com/cuemby/chainsaw/pkg/codec"
	"github.com/cuemby/chainsaw/pkg/kv"
)

// Delete removes every id in ids within one transaction. An id with no
// stored object is skipped silently, making repeated Delete calls with the
// same ids idempotent. A label that no longer has any referent after this
// delete is pruned from labels/labels_inverse too, grounded on
// original_source/src/query/delete.rs's default prune=true behavior.
//
// Unlike the original, which sometimes reused a serialized LabelID as the
// labels_inverse removal key, this always reads labels[L]'s canonical text
// first and uses that text as the labels_inverse key — labels_inverse is
// keyed by raw text, never by a serialized ID.
func (ns *Namespace) Delete(ctx context.Context, ids []uint64) (err error) {
	defer recordOp("delete")(&err)
	if err = ns.checkOpen("delete"); err != nil {
		return err
	}

	err = ns.db.Update(ctx, func(txn kv.Txn) error {
		dataTree := txn.Tree(ns.data)
		dataLabelsTree := txn.Tree(ns.dataLabels)
		dataLabelsInverseTree := txn.Tree(ns.dataLabelsInverse)
		labelsTree := txn.Tree(ns.labels)
		labelsInverseTree := txn.Tree(ns.labelsInverse)

		for _, id := range ids {
			idKey := codec.EncodeUint64(id)

			rawLabels := dataLabelsTree.Get(idKey)
			if rawLabels == nil {
				continue // not present; idempotent no-op for this id
			}
			labelIDs, err := codec.DecodeUint64List(rawLabels)
			if err != nil {
				return err
			}

			if err := dataTree.Delete(idKey); err != nil {
				return err
			}
			if err := dataLabelsTree.Delete(idKey); err != nil {
				return err
			}

			for _, lid := range labelIDs {
				lidKey := codec.EncodeUint64(lid)

				objIDs, err := decodeUint64List(dataLabelsInverseTree.Get(lidKey))
				if err != nil {
					return err
				}
				objIDs = removeUint64(objIDs, id)

				if len(objIDs) == 0 {
					if err := dataLabelsInverseTree.Delete(lidKey); err != nil {
						return err
					}
					if text := labelsTree.Get(lidKey); text != nil {
						if err := labelsInverseTree.Delete(text); err != nil {
							return err
						}
						if err := labelsTree.Delete(lidKey); err != nil {
							return err
						}
					}
					continue
				}
				if err := dataLabelsInverseTree.Put(lidKey, codec.EncodeUint64List(objIDs)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return classifyUpdateErr(ns.name, "delete", err)
	}
	return nil
}

func removeUint64(vs []uint64, target uint64) []uint64 {
	out := vs[:0]
	for _, v := range vs {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
