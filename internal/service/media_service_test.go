package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestStoreAndRetrieveMediaFile(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	name, err := svc.StoreMediaFile(ctx, "_hello.txt", b64("hello world"), true)
	require.NoError(t, err)
	assert.Equal(t, "_hello.txt", name)

	data, err := svc.RetrieveMediaFile(ctx, "_hello.txt")
	require.NoError(t, err)
	assert.Equal(t, b64("hello world"), data)
}

func TestStoreMediaFileRejectsOversize(t *testing.T) {
	svc, ctx := newTestService(t, Config{MaxMediaBytes: 8})

	_, err := svc.StoreMediaFile(ctx, "big.txt", b64("well over eight bytes"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload size limit")

	// At or under the limit still stores.
	name, err := svc.StoreMediaFile(ctx, "small.txt", b64("tiny"), true)
	require.NoError(t, err)
	assert.Equal(t, "small.txt", name)
}

func TestStoreMediaFileKeepExisting(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	_, err := svc.StoreMediaFile(ctx, "note.txt", b64("first"), true)
	require.NoError(t, err)

	// Different content with replace off gets a suffixed name.
	name, err := svc.StoreMediaFile(ctx, "note.txt", b64("second"), false)
	require.NoError(t, err)
	assert.NotEqual(t, "note.txt", name)

	// Identical content with replace off keeps the original name.
	name, err = svc.StoreMediaFile(ctx, "note.txt", b64("first"), false)
	require.NoError(t, err)
	assert.Equal(t, "note.txt", name)

	original, err := svc.RetrieveMediaFile(ctx, "note.txt")
	require.NoError(t, err)
	assert.Equal(t, b64("first"), original)
}

func TestStoreMediaFileRejectsBadNames(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	for _, name := range []string{"", "../evil.txt", "a/b.txt", `a\b.txt`} {
		_, err := svc.StoreMediaFile(ctx, name, b64("x"), true)
		require.Error(t, err, "name %q", name)
	}
}

func TestStoreMediaFileRejectsBadBase64(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	_, err := svc.StoreMediaFile(ctx, "x.txt", "not base64!!!", true)
	require.Error(t, err)
}

func TestGetMediaFilesNames(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	for _, name := range []string{"a.jpg", "b.jpg", "c.txt"} {
		_, err := svc.StoreMediaFile(ctx, name, b64("x"), true)
		require.NoError(t, err)
	}

	all, err := svc.GetMediaFilesNames(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg", "c.txt"}, all)

	jpgs, err := svc.GetMediaFilesNames(ctx, "*.jpg")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, jpgs)
}

func TestDeleteMediaFile(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	_, err := svc.StoreMediaFile(ctx, "gone.txt", b64("x"), true)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMediaFile(ctx, "gone.txt"))
	_, err = svc.RetrieveMediaFile(ctx, "gone.txt")
	require.Error(t, err)

	// Deleting again is a no-op.
	require.NoError(t, svc.DeleteMediaFile(ctx, "gone.txt"))
}
