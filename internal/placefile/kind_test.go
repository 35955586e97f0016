package placefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Kind
	}{
		{"xml lower", "game.rbxlx", KindXML},
		{"xml upper", "GAME.RBXLX", KindXML},
		{"binary lower", "game.rbxl", KindBinary},
		{"binary mixed", "My Game.RbXl", KindBinary},
		{"model file", "tree.rbxm", KindUnknown},
		{"no extension", "rbxl", KindUnknown},
		{"suffix in middle", "game.rbxl.zip", KindUnknown},
		{"empty", "", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.filename))
		})
	}
}

func TestKind_Labels(t *testing.T) {
	assert.Equal(t, "RBXLX", KindXML.String())
	assert.Equal(t, "RBXL", KindBinary.String())
	assert.Equal(t, "UNKNOWN", KindUnknown.String())
	assert.Equal(t, "RBXL (Binary)", KindBinary.Label())
}
