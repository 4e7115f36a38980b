package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hookline/internal/registry"
	"hookline/internal/store"
	"hookline/internal/types"
)

func seedEnv(t *testing.T, dir string) (*registry.Registry, *store.Store, func()) {
	t.Helper()
	db, err := store.Open(filepath.Join(dir, "hookline.db"))
	require.NoError(t, err)

	reg, err := registry.New(db)
	require.NoError(t, err)
	st, err := store.New(db)
	require.NoError(t, err)
	return reg, st, func() { db.Close() }
}

func runCommand(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	rootCmd.SetArgs(nil)
}

func TestRemoveCommandDeletesStoredPosts(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { dataDirFlag = "" })

	reg, st, closeDB := seedEnv(t, dir)
	_, err := reg.Add("foo")
	require.NoError(t, err)
	require.NoError(t, st.SavePost(&types.Post{
		ID:          "1",
		Handle:      "foo",
		Caption:     "Top 5 things nobody tells you",
		IsSlideshow: true,
		Likes:       2000,
		Views:       40000,
		ScrapedAt:   time.Now(),
	}))
	closeDB()

	runCommand(t, "--data-dir", dir, "remove", "@Foo")

	reg, st, closeDB = seedEnv(t, dir)
	defer closeDB()

	_, err = reg.Get("foo")
	require.ErrorIs(t, err, registry.ErrNotFound)

	// No stale posts left to resurrect if the handle is re-added.
	n, err := st.CountByHandle("foo")
	require.NoError(t, err)
	require.Zero(t, n)
}
