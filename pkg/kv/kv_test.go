package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDb(t *testing.T) *Db {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGenerateIDIsMonotonic(t *testing.T) {
	db := openTestDb(t)
	var last uint64
	for i := 0; i < 100; i++ {
		id, err := db.GenerateID()
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
}

func TestOpenTreeIsIdempotent(t *testing.T) {
	db := openTestDb(t)
	_, err := db.OpenTree([]byte("things"))
	require.NoError(t, err)
	_, err = db.OpenTree([]byte("things"))
	require.NoError(t, err)

	names, err := db.TreeNames()
	require.NoError(t, err)
	require.Contains(t, names, []byte("things"))
}

func TestDropTreeReportsExistence(t *testing.T) {
	db := openTestDb(t)
	_, err := db.OpenTree([]byte("things"))
	require.NoError(t, err)

	existed, err := db.DropTree([]byte("things"))
	require.NoError(t, err)
	require.True(t, existed)

	existed, err = db.DropTree([]byte("things"))
	require.NoError(t, err)
	require.False(t, existed)
}

func TestUpdateIsAtomicAcrossTrees(t *testing.T) {
	db := openTestDb(t)
	_, err := db.OpenTree([]byte("a"))
	require.NoError(t, err)
	_, err = db.OpenTree([]byte("b"))
	require.NoError(t, err)

	err = db.Update(context.Background(), func(txn Txn) error {
		require.NoError(t, txn.Tree([]byte("a")).Put([]byte("k"), []byte("1")))
		require.NoError(t, txn.Tree([]byte("b")).Put([]byte("k"), []byte("2")))
		return nil
	})
	require.NoError(t, err)

	a, err := (&Tree{db: db, name: []byte("a")}).Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), a)
}

func TestScanPrefixOrderedAndBounded(t *testing.T) {
	db := openTestDb(t)
	_, err := db.OpenTree([]byte("t"))
	require.NoError(t, err)

	err = db.Update(context.Background(), func(txn Txn) error {
		tr := txn.Tree([]byte("t"))
		for _, k := range []string{"a", "ab", "abc", "b", "ac"} {
			if err := tr.Put([]byte(k), []byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	tree := &Tree{db: db, name: []byte("t")}
	var got []string
	err = tree.ScanPrefix([]byte("a"), func(k, v []byte) bool {
		got = append(got, string(k))
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "ab", "abc", "ac"}, got)
}

func TestChecksumChangesWithContent(t *testing.T) {
	db := openTestDb(t)
	_, err := db.OpenTree([]byte("t"))
	require.NoError(t, err)
	tree := &Tree{db: db, name: []byte("t")}

	before, err := tree.Checksum()
	require.NoError(t, err)

	err = db.Update(context.Background(), func(txn Txn) error {
		return txn.Tree([]byte("t")).Put([]byte("k"), []byte("v"))
	})
	require.NoError(t, err)

	after, err := tree.Checksum()
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}
