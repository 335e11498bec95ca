package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShelf(t *testing.T) {
	s := NewShelf()
	assert.Equal(t, MarkAny, s.Mark)
	assert.Empty(t, s.Encoding)
	assert.Empty(t, s.AnyEncodings)
	assert.Equal(t, 0, s.NextWildcardIndex())
	assert.NoError(t, s.Validate())
}

func TestShelfGet(t *testing.T) {
	s := Shelf{
		Encoding: SpecificEncoding{ChannelX: {Field: "a"}},
		AnyEncodings: []ShelfAnyEncodingDef{
			{Channel: AnyChannel, Index: 3, ShelfFieldDef: ShelfFieldDef{Field: "b"}},
		},
	}

	fd, ok := s.Get(ChannelID{ChannelX})
	require.True(t, ok)
	assert.Equal(t, "a", fd.Field)

	_, ok = s.Get(ChannelID{ChannelY})
	assert.False(t, ok)

	fd, ok = s.Get(WildcardChannelID{Channel: AnyChannel, Index: 3})
	require.True(t, ok)
	assert.Equal(t, "b", fd.Field)

	_, ok = s.Get(WildcardChannelID{Channel: AnyChannel, Index: 0})
	assert.False(t, ok)

	assert.Equal(t, 4, s.NextWildcardIndex())
}

func TestShelfCloneIsDeep(t *testing.T) {
	s := Shelf{
		Mark:     MarkBar,
		Encoding: SpecificEncoding{ChannelX: {Field: "a"}},
		AnyEncodings: []ShelfAnyEncodingDef{
			{Channel: WildcardChannel{Enum: []Channel{ChannelColor}}, Index: 0},
		},
	}
	c := s.Clone()
	c.Encoding[ChannelY] = ShelfFieldDef{Field: "b"}
	c.AnyEncodings[0].Channel.Enum[0] = ChannelShape
	c.AnyEncodings[0].Field = "changed"

	assert.NotContains(t, s.Encoding, ChannelY)
	assert.Equal(t, ChannelColor, s.AnyEncodings[0].Channel.Enum[0])
	assert.Empty(t, s.AnyEncodings[0].Field)
}

func TestShelfValidate(t *testing.T) {
	tests := []struct {
		name    string
		any     []ShelfAnyEncodingDef
		wantErr error
	}{
		{"unique indexes", []ShelfAnyEncodingDef{{Index: 0}, {Index: 2}}, nil},
		{"duplicate index", []ShelfAnyEncodingDef{{Index: 1}, {Index: 1}}, ErrDuplicateWildcardIndex},
		{"negative index", []ShelfAnyEncodingDef{{Index: -1}}, ErrNegativeWildcardIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Shelf{AnyEncodings: tt.any}.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestShelfFieldDefDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		fd   ShelfFieldDef
		want string
	}{
		{"title wins", ShelfFieldDef{Field: "a", Fn: AggregateSum, Title: "Total"}, "Total"},
		{"plain field", ShelfFieldDef{Field: "a"}, "a"},
		{"aggregate", ShelfFieldDef{Field: "price", Fn: AggregateMean}, "mean(price)"},
		{"count without field", ShelfFieldDef{Fn: AggregateCount}, "count(*)"},
		{"bin", ShelfFieldDef{Field: "age", Fn: FunctionBin}, "bin(age)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fd.DisplayTitle())
		})
	}
}

func TestShelfFunctionClasses(t *testing.T) {
	assert.True(t, AggregateMean.IsAggregate())
	assert.False(t, AggregateMean.IsTimeUnit())
	assert.True(t, TimeUnitYearMonth.IsTimeUnit())
	assert.True(t, FunctionBin.IsBin())
	assert.False(t, ShelfFunction("").IsAggregate())
	assert.True(t, ShelfFieldDef{}.IsPlaceholder())
	assert.True(t, ShelfFieldDef{Field: Wildcard}.IsWildcardField())
}
