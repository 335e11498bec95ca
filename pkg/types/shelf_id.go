package types

import "fmt"

// ShelfID identifies a shelf: either a concrete channel, or a wildcard
// channel with an index that tells wildcard shelves apart.
// ChannelID and WildcardChannelID are the only implementations.
type ShelfID interface {
	shelfID()
	// ChannelQuery returns the channel the shelf encodes.
	ChannelQuery() ChannelQuery
	String() string
}

// ChannelID is the id of a concrete channel shelf. Concrete shelves are
// unique per channel.
type ChannelID struct {
	Channel Channel
}

func (ChannelID) shelfID() {}

// ChannelQuery returns the concrete channel.
func (id ChannelID) ChannelQuery() ChannelQuery { return id.Channel }

func (id ChannelID) String() string { return string(id.Channel) }

// WildcardChannelID is the id of a wildcard shelf. Index is non-negative and
// unique among the wildcard shelves of one Shelf.
type WildcardChannelID struct {
	Channel WildcardChannel
	Index   int
}

func (WildcardChannelID) shelfID() {}

// ChannelQuery returns the wildcard channel.
func (id WildcardChannelID) ChannelQuery() ChannelQuery { return id.Channel }

func (id WildcardChannelID) String() string {
	return fmt.Sprintf("%s#%d", id.Channel, id.Index)
}

// IsWildcardChannelID reports whether id addresses a wildcard shelf, whether
// its channel is the short marker or a parameterized wildcard.
func IsWildcardChannelID(id ShelfID) bool {
	switch id.(type) {
	case WildcardChannelID:
		return true
	default:
		return false
	}
}

// SameShelf reports whether a and b address the same shelf. Concrete ids
// match by channel, wildcard ids match by index. Ids of different shapes
// never match.
func SameShelf(a, b ShelfID) bool {
	switch x := a.(type) {
	case ChannelID:
		y, ok := b.(ChannelID)
		return ok && x.Channel == y.Channel
	case WildcardChannelID:
		y, ok := b.(WildcardChannelID)
		return ok && x.Index == y.Index
	default:
		return false
	}
}

// NextWildcardIndex returns one more than the largest wildcard index in ids,
// or 0 when ids holds no wildcard shelf. Concrete ids are ignored: they come
// from the channel vocabulary and are never allocated.
func NextWildcardIndex(ids []ShelfID) int {
	next := 0
	for _, id := range ids {
		if w, ok := id.(WildcardChannelID); ok && w.Index >= next {
			next = w.Index + 1
		}
	}
	return next
}

// ChannelLabel returns the label shown on a shelf: "any" for wildcard
// shelves, the channel name otherwise.
func ChannelLabel(id ShelfID) string {
	if IsWildcardChannelID(id) {
		return "any"
	}
	return id.String()
}
