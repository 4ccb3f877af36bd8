package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRefLister struct {
	urls []string
	err  error
}

func (s *stubRefLister) ListImageURLs(context.Context) ([]string, error) {
	return s.urls, s.err
}

func TestJanitorSweepRemovesOrphans(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	kept, err := store.Save("image/png", strings.NewReader("kept"))
	require.NoError(t, err)
	orphan, err := store.Save("image/png", strings.NewReader("orphan"))
	require.NoError(t, err)

	refs := &stubRefLister{urls: []string{"/uploads/" + kept.Filename}}
	janitor := NewJanitor(store, refs, zap.NewNop())

	result, err := janitor.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, []string{orphan.Filename}, result.Orphans)

	files, err := store.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{kept.Filename}, files)
}

func TestJanitorSweepNothingToDo(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	image, err := store.Save("image/png", strings.NewReader("kept"))
	require.NoError(t, err)

	refs := &stubRefLister{urls: []string{"http://cdn.example.com/uploads/" + image.Filename}}
	janitor := NewJanitor(store, refs, zap.NewNop())

	result, err := janitor.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Removed)
	assert.Empty(t, result.Orphans)
}

func TestJanitorSweepRefListerFailure(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	janitor := NewJanitor(store, &stubRefLister{err: assert.AnError}, zap.NewNop())

	_, err = janitor.Sweep(context.Background())
	assert.Error(t, err)
}
