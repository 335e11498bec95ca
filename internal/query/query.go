// Package query converts shelf state to and from the spec query document
// handed to the enumeration engine. A function on a shelf is written as an
// aggregate, a time unit, or a bin flag depending on its vocabulary class.
package query

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// SpecQuery is the declarative query consumed by the enumeration engine.
type SpecQuery struct {
	Mark      types.ShelfMark `json:"mark"`
	Encodings []EncodingQuery `json:"encodings"`
}

// EncodingQuery is one encoding of a SpecQuery.
type EncodingQuery struct {
	Channel   types.ChannelQuery
	Index     *int
	Field     string
	Type      types.ExpandedType
	Aggregate types.ShelfFunction
	TimeUnit  types.ShelfFunction
	Bin       bool
	Title     string
}

type encodingJSON struct {
	Channel   json.RawMessage     `json:"channel"`
	Index     *int                `json:"index,omitempty"`
	Field     string              `json:"field,omitempty"`
	Type      types.ExpandedType  `json:"type,omitempty"`
	Aggregate types.ShelfFunction `json:"aggregate,omitempty"`
	TimeUnit  types.ShelfFunction `json:"timeUnit,omitempty"`
	Bin       bool                `json:"bin,omitempty"`
	Title     string              `json:"title,omitempty"`
}

// MarshalJSON writes the channel as a name, "?" or {"enum": [...]}.
func (e EncodingQuery) MarshalJSON() ([]byte, error) {
	ch, err := types.MarshalChannelQuery(e.Channel)
	if err != nil {
		return nil, err
	}
	return json.Marshal(encodingJSON{
		Channel:   ch,
		Index:     e.Index,
		Field:     e.Field,
		Type:      e.Type,
		Aggregate: e.Aggregate,
		TimeUnit:  e.TimeUnit,
		Bin:       e.Bin,
		Title:     e.Title,
	})
}

// UnmarshalJSON reads an encoding written by MarshalJSON.
func (e *EncodingQuery) UnmarshalJSON(data []byte) error {
	var raw encodingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ch, err := types.UnmarshalChannelQuery(raw.Channel)
	if err != nil {
		return err
	}
	*e = EncodingQuery{
		Channel:   ch,
		Index:     raw.Index,
		Field:     raw.Field,
		Type:      raw.Type,
		Aggregate: raw.Aggregate,
		TimeUnit:  raw.TimeUnit,
		Bin:       raw.Bin,
		Title:     raw.Title,
	}
	return nil
}

// FieldDef returns the shelf field def of e. Bin wins over a time unit,
// which wins over an aggregate.
func (e EncodingQuery) FieldDef() types.ShelfFieldDef {
	fd := types.ShelfFieldDef{Field: e.Field, Type: e.Type, Title: e.Title}
	switch {
	case e.Bin:
		fd.Fn = types.FunctionBin
	case e.TimeUnit != "":
		fd.Fn = e.TimeUnit
	case e.Aggregate != "":
		fd.Fn = e.Aggregate
	}
	return fd
}

// fromFieldDef builds an encoding for channel from a shelf field def.
// Functions outside the vocabulary are written as aggregates unchanged.
func fromFieldDef(channel types.ChannelQuery, fd types.ShelfFieldDef) EncodingQuery {
	e := EncodingQuery{Channel: channel, Field: fd.Field, Type: fd.Type, Title: fd.Title}
	switch {
	case fd.Fn == "":
	case fd.Fn.IsBin():
		e.Bin = true
	case fd.Fn.IsTimeUnit():
		e.TimeUnit = fd.Fn
	default:
		e.Aggregate = fd.Fn
	}
	return e
}

// FromShelf compiles shelf state into a spec query: concrete encodings in
// display order, then wildcard encodings in list order with their index.
func FromShelf(s types.Shelf) SpecQuery {
	q := SpecQuery{Mark: s.Mark, Encodings: []EncodingQuery{}}
	if q.Mark == "" {
		q.Mark = types.MarkAny
	}
	for _, encQ := range types.ToEncodingQueries(s.Mixins()) {
		e := fromFieldDef(encQ.Channel, encQ.ShelfFieldDef)
		if types.IsWildcard(encQ.Channel) {
			index := encQ.Index
			e.Index = &index
		}
		q.Encodings = append(q.Encodings, e)
	}
	return q
}

// ToShelf loads a spec query into shelf state. A wildcard encoding keeps
// its explicit index the first time that index appears. Encodings without
// an index, with a negative one, or repeating an index already taken are
// numbered after the largest explicit index in order of appearance, so the
// result always passes Shelf.Validate.
func ToShelf(q SpecQuery) types.Shelf {
	next := 0
	for _, e := range q.Encodings {
		if types.IsWildcard(e.Channel) && e.Index != nil && *e.Index >= next {
			next = *e.Index + 1
		}
	}

	taken := make(map[int]bool)
	encodings := make([]types.EncodingQuery, 0, len(q.Encodings))
	for _, e := range q.Encodings {
		encQ := types.EncodingQuery{Channel: e.Channel, ShelfFieldDef: e.FieldDef()}
		if types.IsWildcard(e.Channel) {
			if e.Index != nil && *e.Index >= 0 && !taken[*e.Index] {
				encQ.Index = *e.Index
			} else {
				encQ.Index = next
				next++
			}
			taken[encQ.Index] = true
		}
		encodings = append(encodings, encQ)
	}

	mark := q.Mark
	if mark == "" {
		mark = types.MarkAny
	}
	return types.ShelfFromMixins(mark, types.FromEncodingQueries(encodings))
}

// Decode reads a spec query. Every encoding must carry a channel.
func Decode(r io.Reader) (SpecQuery, error) {
	var q SpecQuery
	if err := json.NewDecoder(r).Decode(&q); err != nil {
		return SpecQuery{}, fmt.Errorf("decode spec query: %w", err)
	}
	return q, nil
}

// Encode writes q as indented JSON.
func Encode(w io.Writer, q SpecQuery) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(q)
}
