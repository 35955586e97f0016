package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "my_game.rbxl", "my_game.rbxl"},
		{"traversal", "../../etc/passwd", "____etc_passwd"},
		{"windows path", `C:\games\x.rbxlx`, "C__games_x.rbxlx"},
		{"quotes and globs", `a"b|c?d*e<f>.rbxl`, "a_b_c_d_e_f_.rbxl"},
		{"spaces kept", "My Game.rbxl", "My Game.rbxl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_NoUnsafeSequencesAndCapped(t *testing.T) {
	inputs := []string{
		"../../etc/passwd",
		"x/../../etc/passwd.rbxl",
		strings.Repeat("../", 80) + "etc/passwd",
		strings.Repeat("a", 300) + ".rbxlx",
		strings.Repeat("é", 120) + ".rbxl",
		"." + strings.Repeat("b", 200),
	}

	for _, in := range inputs {
		got := Sanitize(in)
		assert.LessOrEqual(t, len(got), MaxFilenameLength, in)
		for _, seq := range unsafeSequences {
			assert.NotContains(t, got, seq, in)
		}
	}
}

func TestSanitize_LongNameKeepsExtension(t *testing.T) {
	got := Sanitize(strings.Repeat("a", 300) + ".rbxlx")

	assert.Len(t, got, MaxFilenameLength)
	assert.True(t, strings.HasSuffix(got, ".rbxlx"))
}

func TestNamer_NameFor(t *testing.T) {
	fixed := time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)
	n := &Namer{now: func() time.Time { return fixed }, suffix: func() string { return "abcd1234" }}

	got := n.NameFor("123456789", "../My Place.rbxl")

	assert.Equal(t, "123456789_20261017_093005_abcd1234___My Place.rbxl", got)
	assert.True(t, ValidateID(got))
}

func TestNamer_NoCollisionsAtSameInstant(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := NewNamer()
	n.now = func() time.Time { return fixed }

	const runs = 10000
	seen := make(map[string]struct{}, runs)
	for i := 0; i < runs; i++ {
		id := n.NameFor("42", "place.rbxl")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s after %d runs", id, i)
		seen[id] = struct{}{}
	}
}

func TestRandomSuffix(t *testing.T) {
	s := randomSuffix()
	assert.Len(t, s, suffixLength)
	assert.NotContains(t, s, "-")
}

func TestNameFor_Default(t *testing.T) {
	id := NameFor("7", "game.rbxlx")

	parts := strings.SplitN(id, "_", 5)
	require.Len(t, parts, 5)
	assert.Equal(t, "7", parts[0])
	assert.Len(t, parts[1], 8)
	assert.Len(t, parts[2], 6)
	assert.Len(t, parts[3], suffixLength)
	assert.Equal(t, "game.rbxlx", parts[4])
}

func TestValidateID(t *testing.T) {
	assert.True(t, ValidateID("1_20260101_000000_abcd1234_game.rbxl"))
	assert.False(t, ValidateID(""))
	assert.False(t, ValidateID(".gitkeep"))
	assert.False(t, ValidateID("../secret"))
	assert.False(t, ValidateID("a/b"))
	assert.False(t, ValidateID(`a\b`))
	assert.False(t, ValidateID("a\x00b"))
	assert.False(t, ValidateID(strings.Repeat("a", 256)))
}

func TestSanitize_CutStemDoesNotFormParentReference(t *testing.T) {
	in := strings.Repeat("a", 94) + "." + strings.Repeat("b", 50) + ".rbxl"

	got := Sanitize(in)

	assert.NotContains(t, got, "..")
	assert.True(t, strings.HasSuffix(got, ".rbxl"))
	assert.LessOrEqual(t, len(got), MaxFilenameLength)
}
