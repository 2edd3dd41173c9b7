package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrToInt(t *testing.T) {
	v, err := StrTo("42").Int()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	assert.Equal(t, 0, StrTo("not a number").MustInt())
	assert.Equal(t, int64(42), StrTo("42").MustInt64())
}

func TestStrToToSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"512", 512},
		{"512B", 512},
		{"4KB", 4 * 1024},
		{"100MB", 100 * 1024 * 1024},
		{" 2 MB ", 2 * 1024 * 1024},
		{"8kb", 8 * 1024},
	}
	for _, c := range cases {
		got, err := StrTo(c.in).ToSize()
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	_, err := StrTo("lots").ToSize()
	assert.Error(t, err)
}
