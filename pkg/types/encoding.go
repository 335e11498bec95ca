package types

import (
	"fmt"
	"sort"
)

// SpecificEncoding maps each used concrete channel to its field def. A
// channel absent from the map is unused.
type SpecificEncoding map[Channel]ShelfFieldDef

// Clone returns a copy of e. A nil encoding clones to an empty one.
func (e SpecificEncoding) Clone() SpecificEncoding {
	out := make(SpecificEncoding, len(e))
	for c, fd := range e {
		out[c] = fd
	}
	return out
}

// SortedChannels returns the channels of e in display order. Channels
// outside the vocabulary sort by name after the known ones.
func (e SpecificEncoding) SortedChannels() []Channel {
	chans := make([]Channel, 0, len(e))
	for c := range e {
		chans = append(chans, c)
	}
	sort.Slice(chans, func(i, j int) bool {
		ri, iok := channelRank[chans[i]]
		rj, jok := channelRank[chans[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return chans[i] < chans[j]
		}
	})
	return chans
}

// EncodingQuery is one entry of a free-form encoding list: a channel,
// concrete or wildcard, with its field def. Index only matters for wildcard
// channels, where it names the wildcard shelf.
type EncodingQuery struct {
	Channel ChannelQuery
	Index   int
	ShelfFieldDef
}

// EncodingMixins is the structured form of an encoding list: concrete
// channels keyed in Encoding, wildcard channels in AnyEncodings in order.
type EncodingMixins struct {
	Encoding     SpecificEncoding      `json:"encoding"`
	AnyEncodings []ShelfAnyEncodingDef `json:"anyEncodings"`
}

// FromEncodingQueries splits encodings in one left-to-right pass. Wildcard
// entries are appended to AnyEncodings in input order with their channel and
// index. Concrete entries are stored under Encoding[channel] with the channel
// stripped; a later entry for the same channel overwrites an earlier one.
// Every entry lands in exactly one of the two. An entry with a nil channel is
// a caller bug and panics.
func FromEncodingQueries(encodings []EncodingQuery) EncodingMixins {
	m := EncodingMixins{
		Encoding:     SpecificEncoding{},
		AnyEncodings: []ShelfAnyEncodingDef{},
	}
	for _, encQ := range encodings {
		switch ch := encQ.Channel.(type) {
		case WildcardChannel:
			m.AnyEncodings = append(m.AnyEncodings, ShelfAnyEncodingDef{
				Channel:       ch.Clone(),
				Index:         encQ.Index,
				ShelfFieldDef: encQ.ShelfFieldDef,
			})
		case Channel:
			m.Encoding[ch] = encQ.ShelfFieldDef
		default:
			panic(fmt.Sprintf("types: encoding query with unsupported channel %T", encQ.Channel))
		}
	}
	return m
}

// ToEncodingQueries flattens m back into an encoding list. Concrete entries
// come first in display order, then wildcard entries in list order. The
// order concrete entries had before FromEncodingQueries is not recoverable.
func ToEncodingQueries(m EncodingMixins) []EncodingQuery {
	out := make([]EncodingQuery, 0, len(m.Encoding)+len(m.AnyEncodings))
	for _, c := range m.Encoding.SortedChannels() {
		out = append(out, EncodingQuery{Channel: c, ShelfFieldDef: m.Encoding[c]})
	}
	for _, d := range m.AnyEncodings {
		out = append(out, EncodingQuery{
			Channel:       d.Channel.Clone(),
			Index:         d.Index,
			ShelfFieldDef: d.ShelfFieldDef,
		})
	}
	return out
}
