package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

func TestNewPane(t *testing.T) {
	s := types.Shelf{
		Encoding: types.SpecificEncoding{
			types.ChannelColor: {Field: "city"},
			"latitude":         {Field: "lat"},
		},
		AnyEncodings: []types.ShelfAnyEncodingDef{
			{Channel: types.AnyChannel, Index: 3, ShelfFieldDef: types.ShelfFieldDef{Field: "b"}},
			{Channel: types.AnyChannel, Index: 1, ShelfFieldDef: types.ShelfFieldDef{Field: "c"}},
		},
	}
	h := &recordingHandler{}

	pane := NewPane(s, h)

	require.Len(t, pane, len(types.Channels)+1+2+1)
	assert.Equal(t, types.ChannelID{Channel: types.ChannelX}, pane[0].ID)
	assert.Nil(t, pane[0].FieldDef)

	color := Find(pane, types.ChannelID{Channel: types.ChannelColor})
	require.NotNil(t, color)
	require.NotNil(t, color.FieldDef)
	assert.Equal(t, "city", color.FieldDef.Field)

	assert.Equal(t, types.ChannelID{Channel: "latitude"}, pane[len(types.Channels)].ID)

	wild := pane[len(pane)-3:]
	assert.Equal(t, 3, wild[0].ID.(types.WildcardChannelID).Index)
	assert.Equal(t, 1, wild[1].ID.(types.WildcardChannelID).Index)
	assert.Equal(t, "any", wild[2].Label())
	assert.Equal(t, 4, wild[2].ID.(types.WildcardChannelID).Index, "trailing shelf takes the next free index")
	assert.Nil(t, wild[2].FieldDef)

	for _, sh := range pane {
		assert.Same(t, h, sh.Handler.(*recordingHandler))
	}
}

func TestNewPane_EmptyShelf(t *testing.T) {
	pane := NewPane(types.NewShelf(), &recordingHandler{})
	require.Len(t, pane, len(types.Channels)+1)
	last := pane[len(pane)-1]
	assert.True(t, types.IsWildcardChannelID(last.ID))
	assert.Equal(t, 0, last.ID.(types.WildcardChannelID).Index)
	assert.Nil(t, Find(pane, types.ChannelID{Channel: "latitude"}))
}
