package types

import "fmt"

// Shelf is the state of the encoding pane. Concrete assignments live in
// Encoding; wildcard assignments live in AnyEncodings, whose order is the
// display order.
type Shelf struct {
	Mark         ShelfMark             `json:"mark"`
	Encoding     SpecificEncoding      `json:"encoding"`
	AnyEncodings []ShelfAnyEncodingDef `json:"anyEncodings"`
}

// NewShelf returns an empty shelf with a wildcard mark.
func NewShelf() Shelf {
	return Shelf{
		Mark:         MarkAny,
		Encoding:     SpecificEncoding{},
		AnyEncodings: []ShelfAnyEncodingDef{},
	}
}

// ShelfFromMixins builds a shelf with the given mark from converted
// encodings.
func ShelfFromMixins(mark ShelfMark, m EncodingMixins) Shelf {
	s := Shelf{Mark: mark, Encoding: m.Encoding, AnyEncodings: m.AnyEncodings}
	return s.Clone()
}

// Clone returns a deep copy of s. Nil collections clone to empty ones.
func (s Shelf) Clone() Shelf {
	out := Shelf{
		Mark:         s.Mark,
		Encoding:     s.Encoding.Clone(),
		AnyEncodings: make([]ShelfAnyEncodingDef, len(s.AnyEncodings)),
	}
	for i, d := range s.AnyEncodings {
		out.AnyEncodings[i] = d.Clone()
	}
	return out
}

// Mixins returns the encoding part of s.
func (s Shelf) Mixins() EncodingMixins {
	c := s.Clone()
	return EncodingMixins{Encoding: c.Encoding, AnyEncodings: c.AnyEncodings}
}

// Get returns the field def on the shelf addressed by id.
func (s Shelf) Get(id ShelfID) (ShelfFieldDef, bool) {
	switch x := id.(type) {
	case ChannelID:
		fd, ok := s.Encoding[x.Channel]
		return fd, ok
	case WildcardChannelID:
		if i := s.AnyIndex(x.Index); i >= 0 {
			return s.AnyEncodings[i].ShelfFieldDef, true
		}
	}
	return ShelfFieldDef{}, false
}

// AnyIndex returns the position in AnyEncodings of the wildcard shelf with
// the given index, or -1.
func (s Shelf) AnyIndex(index int) int {
	for i, d := range s.AnyEncodings {
		if d.Index == index {
			return i
		}
	}
	return -1
}

// ShelfIDs returns the ids of all occupied shelves: concrete shelves in
// display order, then wildcard shelves in list order.
func (s Shelf) ShelfIDs() []ShelfID {
	ids := make([]ShelfID, 0, len(s.Encoding)+len(s.AnyEncodings))
	for _, c := range s.Encoding.SortedChannels() {
		ids = append(ids, ChannelID{Channel: c})
	}
	for _, d := range s.AnyEncodings {
		ids = append(ids, d.ShelfID())
	}
	return ids
}

// NextWildcardIndex returns the index for a new wildcard shelf.
func (s Shelf) NextWildcardIndex() int {
	return NextWildcardIndex(s.ShelfIDs())
}

// Validate checks the wildcard index invariants: indexes are non-negative
// and unique. Concrete uniqueness holds by construction of the map.
func (s Shelf) Validate() error {
	seen := make(map[int]bool, len(s.AnyEncodings))
	for _, d := range s.AnyEncodings {
		if d.Index < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeWildcardIndex, d.Index)
		}
		if seen[d.Index] {
			return fmt.Errorf("%w: %d", ErrDuplicateWildcardIndex, d.Index)
		}
		seen[d.Index] = true
	}
	return nil
}
