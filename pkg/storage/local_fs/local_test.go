package local_fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *LocalFS {
	t.Helper()
	fs, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)
	return fs
}

func TestSendContentRoundTrip(t *testing.T) {
	fs := newTestFS(t)

	key, err := fs.SendContent("card.png", []byte("png bytes"), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "card.png", key)

	data, err := fs.ReadContent("card.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestSendContentLeavesNoTempFile(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.SendContent("audio.mp3", []byte("mp3 bytes"), time.Time{})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(fs.getSavePath(), "audio.mp3.tmp"))
	assert.True(t, os.IsNotExist(err))

	keys, err := fs.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"audio.mp3"}, keys)
}

func TestSendContentRejectsTraversal(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.SendContent("../escape.txt", []byte("x"), time.Time{})
	require.NoError(t, err) // cleaned to escape.txt inside the save path

	data, err := fs.ReadContent("escape.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestDeleteMissingIsNoError(t *testing.T) {
	fs := newTestFS(t)
	assert.NoError(t, fs.Delete("never-stored.txt"))
}
