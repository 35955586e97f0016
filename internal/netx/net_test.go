package netx

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllWithLimit(t *testing.T) {
	t.Run("under limit", func(t *testing.T) {
		data, err := ReadAllWithLimit(strings.NewReader("12345"), 10)
		require.NoError(t, err)
		assert.Equal(t, "12345", string(data))
	})

	t.Run("exactly limit", func(t *testing.T) {
		data, err := ReadAllWithLimit(strings.NewReader("12345"), 5)
		require.NoError(t, err)
		assert.Equal(t, "12345", string(data))
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := ReadAllWithLimit(strings.NewReader("123456"), 5)
		require.Error(t, err)
		assert.True(t, IsResponseTooLarge(err))
		assert.Contains(t, err.Error(), "5 bytes")
	})

	t.Run("no limit", func(t *testing.T) {
		data, err := ReadAllWithLimit(strings.NewReader(strings.Repeat("a", 100)), 0)
		require.NoError(t, err)
		assert.Len(t, data, 100)
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcdef", 6, "abcdef"},
		{"cut", "abcdefghij", 8, "abcde..."},
		{"tiny max", "abcdef", 2, ".."},
		{"utf8 boundary", "ééééé", 7, "éé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.max)
		})
	}
}

func TestErrorBody(t *testing.T) {
	resp := &http.Response{Body: io.NopCloser(strings.NewReader("  " + strings.Repeat("x", 2000) + "\n"))}

	got := ErrorBody(resp)

	assert.Len(t, got, DisplayLimit)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Empty(t, ErrorBody(nil))
}
