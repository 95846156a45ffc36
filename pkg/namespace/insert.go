package namespace

import (
	"context"
	"fmt"

	"github.com/cuemby/chainsaw/pkg/codec"
	"github.com/cuemby/chainsaw/pkg/errs"
	"github.com/cuemby/chainsaw/pkg/kv"
	"github.com/cuemby/chainsaw/pkg/label"
)

// Insert stores blob under a freshly generated ObjectID, attaching labels
// (deduped by canonical text, order preserved), and returns that ID.
// Grounded on original_source/src/query/insert.rs's ExecuteTransaction,
// generalized from its RefCell-guarded single-use request into a plain
// method call against one bbolt write transaction.
func (ns *Namespace) Insert(ctx context.Context, blob []byte, labels []label.Label) (id uint64, err error) {
	defer recordOp("insert")(&err)
	if err = ns.checkOpen("insert"); err != nil {
		return 0, err
	}
	id, err = ns.db.GenerateID()
	if err != nil {
		return 0, errs.New(errs.Io, ns.name, "insert", err)
	}
	if err = ns.insertWithID(ctx, id, blob, labels, false); err != nil {
		return 0, err
	}
	return id, nil
}

// InsertWithID stores blob under a caller-supplied ObjectID, failing with
// KindAlreadyExists if id is already occupied in this namespace.
func (ns *Namespace) InsertWithID(ctx context.Context, id uint64, blob []byte, labels []label.Label) (err error) {
	defer recordOp("insert_with_id")(&err)
	if err = ns.checkOpen("insert"); err != nil {
		return err
	}
	return ns.insertWithID(ctx, id, blob, labels, true)
}

func (ns *Namespace) insertWithID(ctx context.Context, id uint64, blob []byte, labels []label.Label, rejectExisting bool) error {
	labels = label.Set(labels)
	idKey := codec.EncodeUint64(id)

	err := ns.db.Update(ctx, func(txn kv.Txn) error {
		dataTree := txn.Tree(ns.data)
		if rejectExisting && dataTree.Get(idKey) != nil {
			return errs.New(errs.AlreadyExists, ns.name, "insert", fmt.Errorf("object %d already exists", id))
		}

		if err := dataTree.Put(idKey, blob); err != nil {
			return err
		}

		labelIDs := make([]uint64, 0, len(labels))
		labelsTree := txn.Tree(ns.labels)
		labelsInverseTree := txn.Tree(ns.labelsInverse)
		dataLabelsInverseTree := txn.Tree(ns.dataLabelsInverse)

		for _, l := range labels {
			lid := l.ID()
			lidKey := codec.EncodeUint64(lid)
			labelIDs = append(labelIDs, lid)

			if labelsTree.Get(lidKey) == nil {
				if err := labelsTree.Put(lidKey, []byte(l.Text())); err != nil {
					return err
				}
				if err := labelsInverseTree.Put(codec.EncodeText(l.Text()), codec.EncodeUint64(lid)); err != nil {
					return err
				}
			}

			objIDs, err := decodeUint64List(dataLabelsInverseTree.Get(lidKey))
			if err != nil {
				return errs.New(errs.Encoding, ns.name, "insert", err)
			}
			objIDs = append(objIDs, id)
			if err := dataLabelsInverseTree.Put(lidKey, codec.EncodeUint64List(objIDs)); err != nil {
				return err
			}
		}

		if err := txn.Tree(ns.dataLabels).Put(idKey, codec.EncodeUint64List(labelIDs)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return classifyUpdateErr(ns.name, "insert", err)
	}
	return nil
}

func decodeUint64List(b []byte) ([]uint64, error) {
	if b == nil {
		return nil, nil
	}
	return codec.DecodeUint64List(b)
}

func classifyUpdateErr(namespace, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errs.KindOf(err); ok {
		return err
	}
	if cerr := asConflict(err); cerr != nil {
		return errs.New(errs.Conflict, namespace, op, cerr)
	}
	return errs.New(errs.Io, namespace, op, err)
}
