// Package chainsaw is the top-level handle on a label-indexed blob store:
// an embedded database file holding any number of independent namespaces.
// Grounded on the teacher's pkg/storage.NewBoltStore (one bbolt file per
// process) and original_source/src/db.rs (the Db type namespaces open
// against).
package chainsaw

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cuemby/chainsaw/pkg/kv"
	"github.com/cuemby/chainsaw/pkg/label"
	"github.com/cuemby/chainsaw/pkg/namespace"
)

// reserved names a namespace may not take, because they collide with
// chainsaw's own internal/bucket conventions.
var reserved = map[string]bool{
	"ext":        true,
	"namespace":  true,
	"namespaces": true,
}

// DB is a handle on one chainsaw database file.
type DB struct {
	kv *kv.Db
}

// Open opens (creating if absent) the database directory at path.
func Open(path string) (*DB, error) {
	db, err := kv.Open(path)
	if err != nil {
		return nil, newErr(KindIo, "", "open", err)
	}
	return &DB{kv: db}, nil
}

// Close releases the underlying file handle.
func (d *DB) Close() error {
	if err := d.kv.Close(); err != nil {
		return newErr(KindIo, "", "close", err)
	}
	return nil
}

// OpenNamespace opens (creating if absent) the namespace named name.
// Reserved names are rejected with KindBadNamespaceName.
func (d *DB) OpenNamespace(name string) (*namespace.Namespace, error) {
	if name == "" || reserved[name] {
		return nil, newErr(KindBadNamespaceName, name, "open_namespace", ErrBadNamespaceName)
	}
	if strings.Contains(name, label.Separator) {
		return nil, newErr(KindBadNamespaceName, name, "open_namespace",
			fmt.Errorf("namespace name must not contain the unit separator"))
	}
	ns, err := namespace.Open(d.kv, name)
	if err != nil {
		return nil, newErr(KindIo, name, "open_namespace", err)
	}
	return ns, nil
}

// DropNamespace opens then drops name's five trees.
func (d *DB) DropNamespace(name string) error {
	ns, err := d.OpenNamespace(name)
	if err != nil {
		return err
	}
	if err := ns.Drop(context.Background()); err != nil {
		return err
	}
	return nil
}

// ListNamespaces returns the distinct namespace names currently present in
// the database file, derived from its tree names by stripping each tree's
// role suffix and filtering the "__"-prefixed substrate-internal
// convention.
func (d *DB) ListNamespaces() ([]string, error) {
	names, err := d.kv.TreeNames()
	if err != nil {
		return nil, newErr(KindIo, "", "list_namespaces", err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		s := string(n)
		if strings.HasPrefix(s, "__") {
			continue
		}
		idx := strings.LastIndex(s, label.Separator)
		if idx < 0 {
			continue
		}
		ns := s[:idx]
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	sort.Strings(out)
	return out, nil
}

// NextID returns the database-global monotonic counter's next value,
// without consuming it against any particular namespace. Namespace.Insert
// calls the same counter internally; this is exposed for callers that need
// to pre-assign an ID, e.g. for Namespace.InsertWithID.
func (d *DB) NextID() (uint64, error) {
	id, err := d.kv.GenerateID()
	if err != nil {
		return 0, newErr(KindIo, "", "next_id", err)
	}
	return id, nil
}

// Flush forces a durability barrier and returns the database file's size
// in bytes.
func (d *DB) Flush() (int64, error) {
	size, err := d.kv.Flush()
	if err != nil {
		return 0, newErr(KindIo, "", "flush", err)
	}
	return size, nil
}

func newErr(kind Kind, namespace, op string, cause error) *Error {
	return &Error{Kind: kind, Namespace: namespace, Op: op, Cause: cause}
}
