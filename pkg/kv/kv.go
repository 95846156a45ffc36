// Package kv is the substrate layer spec.md §6 assumes: an embedded ordered
// key-value store with named sub-maps ("trees"), atomic multi-tree
// transactions, monotonic 64-bit ID generation, ordered prefix iteration,
// and durable flush. It is a thin adaptation of the bucket-per-entity idiom
// in the teacher's pkg/storage/boltdb.go, generalized from a fixed set of
// named buckets to arbitrary tree names chosen by the caller, backed by
// go.etcd.io/bbolt.
//
// bbolt already spans every bucket inside one *bolt.Tx, so the "multi-tree
// transaction" the original Rust substrate had to build explicitly falls
// out of Update for free: a body opens however many trees it needs from the
// one Txn and bbolt's single-writer lock makes the whole closure atomic.
package kv

import (
	"context"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// metaBucket holds chainsaw-internal bookkeeping, never a caller tree. Its
// name is prefixed with the double-underscore convention spec.md §4.1
// reserves for substrate-internal trees; TreeNames still lists it, and
// pkg/chainsaw.ListNamespaces skips it by that prefix.
var metaBucket = []byte("__meta__")

// Db is a handle on an open bbolt file.
type Db struct {
	bolt     *bolt.DB
	path     string
	openedAt time.Time
}

// Open creates the directory at path if absent and opens (or creates) the
// bbolt file within it named "chainsaw.db".
func Open(path string) (*Db, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}
	dbPath := filepath.Join(path, "chainsaw.db")
	b, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", dbPath, err)
	}
	if err := b.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	}); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("kv: init meta bucket: %w", err)
	}
	return &Db{bolt: b, path: path, openedAt: time.Now()}, nil
}

// Path returns the directory the database was opened at.
func (d *Db) Path() string { return d.path }

// OpenedAt returns the wall-clock time Open returned this handle, purely
// informational per spec.md §4.1.
func (d *Db) OpenedAt() time.Time { return d.openedAt }

// Close releases the underlying file handle.
func (d *Db) Close() error {
	return d.bolt.Close()
}

// GenerateID returns the next value of the database-global monotonic
// counter. It never returns the same value twice for the lifetime of the
// database file, satisfying P4 regardless of which namespace is asking.
func (d *Db) GenerateID() (uint64, error) {
	var id uint64
	err := d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(metaBucket)
		n, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("kv: generate id: %w", err)
	}
	return id, nil
}

// OpenTree ensures a bucket named name exists, creating it if absent, and
// returns a handle to it. Opening a tree is idempotent.
func (d *Db) OpenTree(name []byte) (*Tree, error) {
	if err := d.bolt.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	}); err != nil {
		return nil, fmt.Errorf("kv: open tree %s: %w", name, err)
	}
	return &Tree{db: d, name: name}, nil
}

// DropTree deletes the named bucket. Returns false if it did not exist.
func (d *Db) DropTree(name []byte) (bool, error) {
	existed := true
	err := d.bolt.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(name) == nil {
			existed = false
			return nil
		}
		return tx.DeleteBucket(name)
	})
	if err != nil {
		return false, fmt.Errorf("kv: drop tree %s: %w", name, err)
	}
	return existed, nil
}

// TreeNames lists every bucket in the database, including __meta__.
// Callers that care about the substrate-internal convention filter names
// starting with "__" themselves (pkg/chainsaw.ListNamespaces does this).
func (d *Db) TreeNames() ([][]byte, error) {
	var names [][]byte
	err := d.bolt.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			cp := make([]byte, len(name))
			copy(cp, name)
			names = append(names, cp)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("kv: list trees: %w", err)
	}
	return names, nil
}

// Flush forces a durability barrier by syncing the underlying file.
// bbolt already fsyncs on every committed Update, so Flush mainly exists to
// give callers the synchronous-barrier operation spec.md §4.1 requires and
// to report a size they can log.
func (d *Db) Flush() (int64, error) {
	if err := d.bolt.Sync(); err != nil {
		return 0, fmt.Errorf("kv: flush: %w", err)
	}
	info, err := os.Stat(d.bolt.Path())
	if err != nil {
		return 0, fmt.Errorf("kv: flush: stat: %w", err)
	}
	return info.Size(), nil
}

// Update runs fn inside one atomic bbolt write transaction. fn receives a
// Txn it can open any number of trees from; every Put/Delete against those
// trees commits together or not at all.
//
// ctx bounds how long Update will wait for the transaction to finish,
// including the wait for bbolt's single writer lock. If ctx is done before
// the transaction returns, Update returns ErrConflict rather than blocking
// indefinitely; the transaction itself is not aborted and may still commit
// after Update has returned. This is the closest
// real-world analogue to the spec's "retryable conflict" story once the
// substrate serializes writers instead of detecting write-write races
// after the fact (see DESIGN.md).
func (d *Db) Update(ctx context.Context, fn func(Txn) error) error {
	done := make(chan error, 1)
	go func() {
		done <- d.bolt.Update(func(tx *bolt.Tx) error {
			return fn(Txn{tx: tx})
		})
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("kv: update: %w: %v", ErrConflict, ctx.Err())
	}
}

// View runs fn inside one read-only bbolt transaction, giving a consistent
// snapshot across every tree it reads.
func (d *Db) View(fn func(Txn) error) error {
	return d.bolt.View(func(tx *bolt.Tx) error {
		return fn(Txn{tx: tx})
	})
}

// Txn is a handle into one bbolt transaction (read-only or read-write),
// from which any number of trees can be opened.
type Txn struct {
	tx *bolt.Tx
}

// Tree returns a handle to the named bucket within this transaction. The
// bucket must already exist (created by a prior OpenTree); Tree returns nil
// if it does not.
func (t Txn) Tree(name []byte) *TxnTree {
	b := t.tx.Bucket(name)
	if b == nil {
		return nil
	}
	return &TxnTree{bucket: b}
}

// TxnTree is a tree handle bound to one transaction.
type TxnTree struct {
	bucket *bolt.Bucket
}

func (t *TxnTree) Get(key []byte) []byte {
	v := t.bucket.Get(key)
	if v == nil {
		return nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp
}

func (t *TxnTree) Put(key, value []byte) error {
	return t.bucket.Put(key, value)
}

func (t *TxnTree) Delete(key []byte) error {
	return t.bucket.Delete(key)
}

// ScanPrefix iterates, in ascending byte order, every key beginning with
// prefix, calling fn with each key/value until fn returns false or the
// prefix is exhausted.
func (t *TxnTree) ScanPrefix(prefix []byte, fn func(key, value []byte) bool) {
	c := t.bucket.Cursor()
	for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
		if !fn(k, v) {
			return
		}
	}
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Tree is a standalone (non-transactional) handle to a bucket, used for
// reads that don't need to participate in a larger multi-tree transaction
// (Namespace.Get, Namespace.Stats).
type Tree struct {
	db   *Db
	name []byte
}

// Name returns the tree's bucket name.
func (t *Tree) Name() []byte { return t.name }

// Get reads key in its own read-only transaction.
func (t *Tree) Get(key []byte) ([]byte, error) {
	var out []byte
	err := t.db.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.name)
		if b == nil {
			return nil
		}
		v := b.Get(key)
		if v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("kv: get from %s: %w", t.name, err)
	}
	return out, nil
}

// ScanPrefix iterates key in its own read-only transaction.
func (t *Tree) ScanPrefix(prefix []byte, fn func(key, value []byte) bool) error {
	return t.db.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.name)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
			if !fn(k, v) {
				return nil
			}
		}
		return nil
	})
}

// Len returns the number of key/value pairs in the tree.
func (t *Tree) Len() (int, error) {
	n := 0
	err := t.db.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.name)
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("kv: len of %s: %w", t.name, err)
	}
	return n, nil
}

// Checksum folds every key and value in the tree, in iteration order, into
// a crc32 so Stats can report a cheap consistency fingerprint. bbolt does
// not expose a tree checksum itself (see DESIGN.md for why this stays on
// hash/crc32 instead of reaching for a pack dependency).
func (t *Tree) Checksum() (uint32, error) {
	h := crc32.NewIEEE()
	err := t.db.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.name)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			_, _ = h.Write(k)
			_, _ = h.Write(v)
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("kv: checksum of %s: %w", t.name, err)
	}
	return h.Sum32(), nil
}
