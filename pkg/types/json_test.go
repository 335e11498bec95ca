package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalChannelQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ChannelQuery
		wantErr bool
	}{
		{"concrete", `"x"`, ChannelX, false},
		{"short wildcard", `"?"`, AnyChannel, false},
		{"enum wildcard", `{"enum":["color","shape"]}`, WildcardChannel{Enum: []Channel{ChannelColor, ChannelShape}}, false},
		{"null", `null`, nil, true},
		{"empty name", `""`, nil, true},
		{"number", `3`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalChannelQuery([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidChannel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalShelfID(t *testing.T) {
	id, err := UnmarshalShelfID([]byte(`{"channel":"y"}`))
	require.NoError(t, err)
	assert.Equal(t, ChannelID{ChannelY}, id)

	id, err = UnmarshalShelfID([]byte(`{"channel":"?","index":2}`))
	require.NoError(t, err)
	assert.Equal(t, WildcardChannelID{Channel: AnyChannel, Index: 2}, id)

	_, err = UnmarshalShelfID([]byte(`{"channel":"?"}`))
	assert.ErrorIs(t, err, ErrInvalidShelfID, "wildcard shelf requires an index")

	_, err = UnmarshalShelfID([]byte(`{"channel":"x","index":0}`))
	assert.ErrorIs(t, err, ErrInvalidShelfID, "concrete shelf carries no index")

	_, err = UnmarshalShelfID([]byte(`{"channel":"?","index":-1}`))
	assert.ErrorIs(t, err, ErrNegativeWildcardIndex)
}

func TestActionWireForm(t *testing.T) {
	data, err := MarshalAction(FieldRemove{ShelfID: ChannelID{ChannelColor}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"SHELF_FIELD_REMOVE","payload":{"channel":"color"}}`, string(data))

	data, err = MarshalAction(FieldMove{
		From: ChannelID{ChannelX},
		To:   WildcardChannelID{Channel: WildcardChannel{Enum: []Channel{ChannelRow, ChannelColumn}}, Index: 1},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"SHELF_FIELD_MOVE","payload":{
		"from":{"channel":"x"},
		"to":{"channel":{"enum":["row","column"]},"index":1}}}`, string(data))
}

func TestActionJSONRoundTrip(t *testing.T) {
	actions := []Action{
		FieldAdd{ShelfID: ChannelID{ChannelY}, FieldDef: ShelfFieldDef{Field: "temp", Type: TypeQuantitative}},
		FieldAdd{ShelfID: WildcardChannelID{Channel: AnyChannel, Index: 0}, FieldDef: ShelfFieldDef{Field: Wildcard}},
		FieldMove{From: WildcardChannelID{Channel: AnyChannel, Index: 0}, To: ChannelID{ChannelX}},
		FieldRemove{ShelfID: WildcardChannelID{Channel: AnyChannel, Index: 4}},
		FunctionChange{ShelfID: ChannelID{ChannelY}, Fn: AggregateMedian},
		FunctionChange{ShelfID: ChannelID{ChannelY}},
	}

	for _, a := range actions {
		t.Run(string(a.Type()), func(t *testing.T) {
			data, err := MarshalAction(a)
			require.NoError(t, err)
			got, err := UnmarshalAction(data)
			require.NoError(t, err)
			assert.Equal(t, a, got)
		})
	}
}

func TestUnmarshalActionErrors(t *testing.T) {
	inputs := []string{
		`{"type":"SHELF_MARK_CHANGE","payload":{}}`,
		`{"type":"SHELF_FIELD_ADD","payload":{"fieldDef":{"field":"a"}}}`,
		`{"type":"SHELF_FIELD_MOVE","payload":{"from":{"channel":"x"}}}`,
		`not json`,
	}
	for _, in := range inputs {
		_, err := UnmarshalAction([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidAction, in)
	}
}

func TestShelfJSON(t *testing.T) {
	s := Shelf{
		Mark:     MarkPoint,
		Encoding: SpecificEncoding{ChannelX: {Field: "a", Fn: FunctionBin}},
		AnyEncodings: []ShelfAnyEncodingDef{
			{Channel: WildcardChannel{Enum: []Channel{ChannelColor}}, Index: 0, ShelfFieldDef: ShelfFieldDef{Field: "b"}},
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mark":"point",
		"encoding":{"x":{"field":"a","fn":"bin"}},
		"anyEncodings":[{"channel":{"enum":["color"]},"index":0,"field":"b"}]}`, string(data))

	var back Shelf
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

func TestEncodingQueryJSON(t *testing.T) {
	var list []EncodingQuery
	err := json.Unmarshal([]byte(`[
		{"channel":"x","field":"a"},
		{"channel":"?","field":"b","index":0},
		{"channel":"x","field":"c"}]`), &list)
	require.NoError(t, err)

	got := FromEncodingQueries(list)
	assert.Equal(t, SpecificEncoding{ChannelX: {Field: "c"}}, got.Encoding)
	require.Len(t, got.AnyEncodings, 1)
	assert.Equal(t, "b", got.AnyEncodings[0].Field)

	data, err := json.Marshal(list[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel":"?","index":0,"field":"b"}`, string(data))
}

func TestActionRecordJSON(t *testing.T) {
	rec := ActionRecord{
		ActionID:  "a1",
		SessionID: "s1",
		Seq:       3,
		Action:    FunctionChange{ShelfID: WildcardChannelID{Channel: AnyChannel, Index: 1}, Fn: AggregateSum},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"action_id", "session_id", "seq", "type", "action", "created_at"} {
		assert.Contains(t, fields, key)
	}
	assert.JSONEq(t, `"SHELF_FUNCTION_CHANGE"`, string(fields["type"]))

	var got ActionRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rec, got)

	_, err = json.Marshal(ActionRecord{ActionID: "empty"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}
