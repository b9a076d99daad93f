package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
)

func TestRunTempSweep(t *testing.T) {
	deps, _, root := newTestDeps(t)
	ctx := logger.WithLogger(context.Background(), logger.NewTestLogger())

	writeJPEG(t, filepath.Join(root, "avatars_tmp", "a.jpg"), 32, 32)
	writeJPEG(t, filepath.Join(root, "user_photos_tmp", "b.jpg"), 32, 32)
	writeJPEG(t, filepath.Join(root, "user_photos_tmp", "c.jpg"), 32, 32)

	// Finished media and nested directories must survive the sweep.
	keep := filepath.Join(root, "user_photo", "keep.jpg")
	writeJPEG(t, keep, 32, 32)
	nested := filepath.Join(root, "post_images_tmp", "nested", "deep.jpg")
	writeJPEG(t, nested, 32, 32)

	stats, err := deps.RunTempSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.DeletedCount)
	assert.Len(t, stats.DeletedPaths, 3)
	assert.Equal(t, 0, stats.FailedCount)

	for _, p := range []string{
		filepath.Join(root, "avatars_tmp", "a.jpg"),
		filepath.Join(root, "user_photos_tmp", "b.jpg"),
		filepath.Join(root, "user_photos_tmp", "c.jpg"),
	} {
		_, statErr := os.Stat(p)
		assert.True(t, os.IsNotExist(statErr), "expected %s to be deleted", p)
	}

	_, err = os.Stat(keep)
	assert.NoError(t, err)
	_, err = os.Stat(nested)
	assert.NoError(t, err)
}

func TestRunTempSweepEmptyRoot(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	ctx := logger.WithLogger(context.Background(), logger.NewTestLogger())

	stats, err := deps.RunTempSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DeletedCount)
	assert.Empty(t, stats.DeletedPaths)
}

func TestRunTempSweepMissingRoot(t *testing.T) {
	deps, _, root := newTestDeps(t)
	deps.Paths = mediapath.NewResolver(filepath.Join(root, "does-not-exist"))
	ctx := logger.WithLogger(context.Background(), logger.NewTestLogger())

	stats, err := deps.RunTempSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DeletedCount)
}

func TestRunTempSweepSkipsNonTempDirs(t *testing.T) {
	deps, _, root := newTestDeps(t)
	ctx := logger.WithLogger(context.Background(), logger.NewTestLogger())

	writeJPEG(t, filepath.Join(root, "avatar", "1.jpg"), 32, 32)
	writeJPEG(t, filepath.Join(root, "comment_images_tmp", "x.jpg"), 32, 32)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	stats, err := deps.RunTempSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DeletedCount)
	assert.Equal(t, []string{filepath.Join(root, "comment_images_tmp", "x.jpg")}, stats.DeletedPaths)

	_, err = os.Stat(filepath.Join(root, "avatar", "1.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "stray.txt"))
	assert.NoError(t, err)
}
