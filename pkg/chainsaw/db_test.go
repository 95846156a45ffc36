package chainsaw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenNamespaceRejectsReservedNames(t *testing.T) {
	db := openTestDB(t)
	for _, name := range []string{"ext", "namespace", "namespaces", ""} {
		_, err := db.OpenNamespace(name)
		require.Error(t, err)
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, KindBadNamespaceName, kind)
	}
}

func TestOpenNamespaceIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	_, err := db.OpenNamespace("widgets")
	require.NoError(t, err)
	_, err = db.OpenNamespace("widgets")
	require.NoError(t, err)
}

func TestListNamespacesFiltersInternalTrees(t *testing.T) {
	db := openTestDB(t)
	_, err := db.OpenNamespace("widgets")
	require.NoError(t, err)
	_, err = db.OpenNamespace("gadgets")
	require.NoError(t, err)

	names, err := db.ListNamespaces()
	require.NoError(t, err)
	require.Equal(t, []string{"gadgets", "widgets"}, names)
}

func TestNextIDIsMonotonic(t *testing.T) {
	db := openTestDB(t)
	a, err := db.NextID()
	require.NoError(t, err)
	b, err := db.NextID()
	require.NoError(t, err)
	require.Greater(t, b, a)
}

func TestDropNamespaceRemovesItsTrees(t *testing.T) {
	db := openTestDB(t)
	ns, err := db.OpenNamespace("widgets")
	require.NoError(t, err)
	_, err = ns.Insert(context.Background(), []byte("x"), nil)
	require.NoError(t, err)

	require.NoError(t, db.DropNamespace("widgets"))

	names, err := db.ListNamespaces()
	require.NoError(t, err)
	require.NotContains(t, names, "widgets")
}
