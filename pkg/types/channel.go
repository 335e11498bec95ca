package types

import "slices"

// ChannelQuery is the channel position of an encoding entry. It is either a
// concrete Channel or a WildcardChannel; no other implementations exist.
type ChannelQuery interface {
	channelQuery()
	String() string
}

func (Channel) channelQuery() {}

// String returns the channel name.
func (c Channel) String() string { return string(c) }

// WildcardChannel is an unresolved channel. An empty Enum is the short
// wildcard marker; a non-empty Enum restricts enumeration to those channels.
type WildcardChannel struct {
	Enum []Channel
}

func (WildcardChannel) channelQuery() {}

// String returns Wildcard for the short form and "?{a,b}" for a
// parameterized wildcard.
func (w WildcardChannel) String() string {
	if len(w.Enum) == 0 {
		return Wildcard
	}
	s := Wildcard + "{"
	for i, c := range w.Enum {
		if i > 0 {
			s += ","
		}
		s += string(c)
	}
	return s + "}"
}

// IsShort reports whether w is the bare wildcard marker.
func (w WildcardChannel) IsShort() bool { return len(w.Enum) == 0 }

// Equal reports whether w and o enumerate the same channels in the same order.
func (w WildcardChannel) Equal(o WildcardChannel) bool {
	return slices.Equal(w.Enum, o.Enum)
}

// Clone returns a copy of w that shares no memory with it.
func (w WildcardChannel) Clone() WildcardChannel {
	return WildcardChannel{Enum: slices.Clone(w.Enum)}
}

// AnyChannel is the short wildcard channel.
var AnyChannel = WildcardChannel{}

// IsWildcard reports whether c is the wildcard marker or a parameterized
// wildcard. It returns false for every concrete channel and for nil.
func IsWildcard(c ChannelQuery) bool {
	switch c.(type) {
	case WildcardChannel:
		return true
	default:
		return false
	}
}
