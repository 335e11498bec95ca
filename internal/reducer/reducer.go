// Package reducer applies shelf actions to shelf state. Reduce is a pure
// transition function; Store wraps it with dispatch, history, listeners and
// an optional action journal.
package reducer

import "github.com/mesh-intelligence/shelves/pkg/types"

// Reduce returns the shelf that results from applying a to s. It never
// mutates s. MOVE, REMOVE and FUNCTION_CHANGE against an empty shelf are
// no-ops, so stale drag state from rapid interaction cannot crash dispatch.
func Reduce(s types.Shelf, a types.Action) types.Shelf {
	switch x := a.(type) {
	case types.FieldAdd:
		next := s.Clone()
		put(&next, x.ShelfID, x.FieldDef)
		return next

	case types.FieldMove:
		fd, ok := s.Get(x.From)
		if !ok || types.SameShelf(x.From, x.To) {
			return s
		}
		next := s.Clone()
		remove(&next, x.From)
		put(&next, x.To, fd)
		return next

	case types.FieldRemove:
		if _, ok := s.Get(x.ShelfID); !ok {
			return s
		}
		next := s.Clone()
		remove(&next, x.ShelfID)
		return next

	case types.FunctionChange:
		fd, ok := s.Get(x.ShelfID)
		if !ok {
			return s
		}
		fd.Fn = x.Fn
		next := s.Clone()
		put(&next, x.ShelfID, fd)
		return next
	}
	return s
}

// Replay folds actions over initial.
func Replay(initial types.Shelf, actions []types.Action) types.Shelf {
	s := initial.Clone()
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

// put stores fd on the shelf addressed by id. A wildcard id whose index is
// not on the shelf yet appends a new entry at the end of AnyEncodings.
func put(s *types.Shelf, id types.ShelfID, fd types.ShelfFieldDef) {
	switch x := id.(type) {
	case types.ChannelID:
		s.Encoding[x.Channel] = fd
	case types.WildcardChannelID:
		def := types.ShelfAnyEncodingDef{
			Channel:       x.Channel.Clone(),
			Index:         x.Index,
			ShelfFieldDef: fd,
		}
		if i := s.AnyIndex(x.Index); i >= 0 {
			s.AnyEncodings[i] = def
			return
		}
		s.AnyEncodings = append(s.AnyEncodings, def)
	}
}

// remove clears the shelf addressed by id, keeping the order of the other
// wildcard entries.
func remove(s *types.Shelf, id types.ShelfID) {
	switch x := id.(type) {
	case types.ChannelID:
		delete(s.Encoding, x.Channel)
	case types.WildcardChannelID:
		if i := s.AnyIndex(x.Index); i >= 0 {
			s.AnyEncodings = append(s.AnyEncodings[:i], s.AnyEncodings[i+1:]...)
		}
	}
}
