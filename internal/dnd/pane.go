package dnd

import "github.com/mesh-intelligence/shelves/pkg/types"

// NewPane lays out the drop targets of an encoding pane: one shelf per
// vocabulary channel in display order, one per wildcard entry in list
// order, and a trailing empty wildcard shelf at the next free index.
// Concrete channels outside the vocabulary that hold a field follow the
// vocabulary shelves.
func NewPane(s types.Shelf, h types.ActionHandler) []*EncodingShelf {
	pane := make([]*EncodingShelf, 0, len(types.Channels)+len(s.AnyEncodings)+1)
	for _, c := range types.Channels {
		pane = append(pane, newShelf(s, types.ChannelID{Channel: c}, h))
	}
	for _, c := range s.Encoding.SortedChannels() {
		if !c.Known() {
			pane = append(pane, newShelf(s, types.ChannelID{Channel: c}, h))
		}
	}
	for _, d := range s.AnyEncodings {
		pane = append(pane, newShelf(s, d.ShelfID(), h))
	}
	empty := types.WildcardChannelID{Channel: types.AnyChannel, Index: s.NextWildcardIndex()}
	return append(pane, &EncodingShelf{ID: empty, Handler: h})
}

// Find returns the shelf of pane addressed by id, or nil.
func Find(pane []*EncodingShelf, id types.ShelfID) *EncodingShelf {
	for _, sh := range pane {
		if types.SameShelf(sh.ID, id) {
			return sh
		}
	}
	return nil
}

func newShelf(s types.Shelf, id types.ShelfID, h types.ActionHandler) *EncodingShelf {
	sh := &EncodingShelf{ID: id, Handler: h}
	if fd, ok := s.Get(id); ok {
		sh.FieldDef = &fd
	}
	return sh
}
