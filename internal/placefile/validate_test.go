package placefile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeWithWorkspace = `<roblox version="4">
  <Item class="Workspace" referent="RBX0">
    <Properties>
      <string name="Name">MyGame</string>
    </Properties>
  </Item>
</roblox>`

func TestValidate_XML(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantIn    string
	}{
		{
			name:      "workspace with name",
			doc:       placeWithWorkspace,
			wantValid: true,
			wantIn:    ReasonValid,
		},
		{
			name:   "workspace renamed to model",
			doc:    strings.Replace(placeWithWorkspace, `class="Workspace"`, `class="Model"`, 1),
			wantIn: ReasonMissingWorkspace,
		},
		{
			name:   "empty root",
			doc:    `<roblox version="4"></roblox>`,
			wantIn: ReasonNoServices,
		},
		{
			name:   "wrong root",
			doc:    `<place><Item class="Workspace"/></place>`,
			wantIn: ReasonMissingRootTag,
		},
		{
			name:   "unclosed tag",
			doc:    `<roblox><Item class="Workspace">`,
			wantIn: ReasonInvalidMarkup,
		},
		{
			name:   "empty document",
			doc:    ``,
			wantIn: ReasonInvalidMarkup,
		},
		{
			name:   "second root element",
			doc:    `<roblox><Item class="Workspace"/></roblox><roblox/>`,
			wantIn: ReasonInvalidMarkup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate([]byte(tt.doc), "place.rbxlx")
			assert.Equal(t, tt.wantValid, v.Valid)
			assert.Contains(t, v.Reason, tt.wantIn)
			assert.Equal(t, KindXML, v.Metadata.FileType)
		})
	}
}

func TestValidate_XML_Metadata(t *testing.T) {
	v := Validate([]byte(placeWithWorkspace), "place.rbxlx")

	require.True(t, v.Valid)
	assert.Equal(t, "MyGame", v.Metadata.DeclaredName)
	assert.True(t, v.Metadata.HasWorkspaceService)
	assert.Equal(t, []string{"Workspace"}, v.Metadata.ServiceNames)
	assert.Equal(t, int64(len(placeWithWorkspace)), v.Metadata.SizeBytes)
}

func TestValidate_XML_RootTagIsCaseInsensitive(t *testing.T) {
	doc := strings.NewReplacer("<roblox", "<ROBLOX", "</roblox>", "</ROBLOX>").Replace(placeWithWorkspace)

	v := Validate([]byte(doc), "place.rbxlx")

	assert.True(t, v.Valid, v.Reason)
}

func TestValidate_XML_NameFallbacks(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "no name property",
			doc:  `<roblox><Item class="Workspace"><Properties/></Item></roblox>`,
		},
		{
			name: "blank name",
			doc:  `<roblox><Item class="Workspace"><Properties><string name="Name">  </string></Properties></Item></roblox>`,
		},
		{
			name: "name only on nested item",
			doc: `<roblox><Item class="Workspace">
				<Item class="Part"><Properties><string name="Name">Baseplate</string></Properties></Item>
			</Item></roblox>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate([]byte(tt.doc), "place.rbxlx")
			require.True(t, v.Valid, v.Reason)
			assert.Equal(t, DefaultDeclaredName, v.Metadata.DeclaredName)
		})
	}
}

func TestValidate_XML_CollectsDistinctServices(t *testing.T) {
	doc := `<roblox>
		<Item class="Workspace"><Item class="Part"/><Item class="Part"/></Item>
		<Item class="Lighting"/>
		<Item class="ReplicatedStorage"/>
		<Item/>
	</roblox>`

	v := Validate([]byte(doc), "place.rbxlx")

	require.True(t, v.Valid, v.Reason)
	assert.Equal(t, []string{"Lighting", "Part", "ReplicatedStorage", "Workspace"}, v.Metadata.ServiceNames)
}

func TestValidate_XML_Idempotent(t *testing.T) {
	doc := []byte(`<roblox><Item class="Lighting"/><Item class="Workspace"/><Item class="Players"/></roblox>`)

	first := Validate(doc, "a.rbxlx")
	second := Validate(doc, "a.rbxlx")

	assert.Equal(t, first, second)
}

func TestValidate_XML_EncodingError(t *testing.T) {
	data := []byte{'<', 'r', 'o', 'b', 'l', 'o', 'x', '>', 0xff, 0xfe, '<', '/', 'r', 'o', 'b', 'l', 'o', 'x', '>'}

	v := Validate(data, "place.rbxlx")

	assert.False(t, v.Valid)
	assert.Equal(t, ReasonEncoding, v.Reason)
}

func TestValidate_Binary(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantValid bool
	}{
		{"signature at offset zero", []byte("<roblox!\x89\xff\r\n\x1a\n\x00\x00"), true},
		{"signature upper case", []byte("<ROBLOX!\x00\x01"), true},
		{"brand token later in header", append(bytes.Repeat([]byte{0x01}, 100), []byte("RoBlOx")...), true},
		{"brand token beyond first kilobyte", append(bytes.Repeat([]byte{0x00}, 2048), []byte("roblox")...), false},
		{"random bytes", bytes.Repeat([]byte{0xAB, 0xCD}, 600), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.data, "place.rbxl")
			assert.Equal(t, tt.wantValid, v.Valid)
			assert.Equal(t, BinaryDeclaredName, v.Metadata.DeclaredName)
			assert.Equal(t, KindBinary, v.Metadata.FileType)
			if !tt.wantValid {
				assert.Equal(t, ReasonInvalidBinary, v.Reason)
			}
		})
	}
}

func TestValidate_UnknownFormat(t *testing.T) {
	for _, name := range []string{"place.rbxm", "notes.txt", "place", "place.rbxlx.bak"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, KindUnknown, Classify(name))

			v := Validate([]byte(placeWithWorkspace), name)
			assert.False(t, v.Valid)
			assert.Equal(t, ReasonUnsupportedFormat, v.Reason)
		})
	}
}

func TestCandidate_Validate(t *testing.T) {
	c := Candidate{Filename: "x.rbxlx", Size: int64(len(placeWithWorkspace)), Data: []byte(placeWithWorkspace)}

	assert.True(t, c.Validate().Valid)
}
