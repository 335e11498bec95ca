package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MarshalJSON encodes the short wildcard as "?" and a parameterized
// wildcard as {"enum": [...]}.
func (w WildcardChannel) MarshalJSON() ([]byte, error) {
	if w.IsShort() {
		return json.Marshal(Wildcard)
	}
	return json.Marshal(struct {
		Enum []Channel `json:"enum"`
	}{w.Enum})
}

// UnmarshalJSON accepts "?" or {"enum": [...]}.
func (w *WildcardChannel) UnmarshalJSON(data []byte) error {
	c, err := UnmarshalChannelQuery(data)
	if err != nil {
		return err
	}
	wc, ok := c.(WildcardChannel)
	if !ok {
		return fmt.Errorf("%w: %q is not a wildcard", ErrInvalidChannel, c.String())
	}
	*w = wc
	return nil
}

// MarshalChannelQuery encodes a concrete channel as its name and a wildcard
// channel as WildcardChannel.MarshalJSON does.
func MarshalChannelQuery(c ChannelQuery) ([]byte, error) {
	switch ch := c.(type) {
	case Channel:
		return json.Marshal(string(ch))
	case WildcardChannel:
		return ch.MarshalJSON()
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidChannel, c)
	}
}

// UnmarshalChannelQuery decodes "x", "?" or {"enum": [...]}.
func UnmarshalChannelQuery(data []byte) (ChannelQuery, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("%w: missing channel", ErrInvalidChannel)
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidChannel, err)
		}
		switch name {
		case "":
			return nil, fmt.Errorf("%w: empty channel", ErrInvalidChannel)
		case Wildcard:
			return WildcardChannel{}, nil
		}
		return Channel(name), nil
	}
	var obj struct {
		Enum []Channel `json:"enum"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChannel, err)
	}
	return WildcardChannel{Enum: obj.Enum}, nil
}

type shelfIDJSON struct {
	Channel json.RawMessage `json:"channel"`
	Index   *int            `json:"index,omitempty"`
}

// MarshalJSON encodes {"channel": "x"}.
func (id ChannelID) MarshalJSON() ([]byte, error) {
	ch, err := json.Marshal(string(id.Channel))
	if err != nil {
		return nil, err
	}
	return json.Marshal(shelfIDJSON{Channel: ch})
}

// MarshalJSON encodes {"channel": "?", "index": 0}.
func (id WildcardChannelID) MarshalJSON() ([]byte, error) {
	ch, err := id.Channel.MarshalJSON()
	if err != nil {
		return nil, err
	}
	index := id.Index
	return json.Marshal(shelfIDJSON{Channel: ch, Index: &index})
}

// UnmarshalShelfID decodes a shelf id. A wildcard channel requires a
// non-negative index; a concrete channel must not carry one.
func UnmarshalShelfID(data []byte) (ShelfID, error) {
	var raw shelfIDJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShelfID, err)
	}
	ch, err := UnmarshalChannelQuery(raw.Channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShelfID, err)
	}
	switch c := ch.(type) {
	case WildcardChannel:
		if raw.Index == nil {
			return nil, fmt.Errorf("%w: wildcard shelf %s without index", ErrInvalidShelfID, c)
		}
		if *raw.Index < 0 {
			return nil, fmt.Errorf("%w: %w", ErrInvalidShelfID, ErrNegativeWildcardIndex)
		}
		return WildcardChannelID{Channel: c, Index: *raw.Index}, nil
	case Channel:
		if raw.Index != nil {
			return nil, fmt.Errorf("%w: concrete shelf %s with index", ErrInvalidShelfID, c)
		}
		return ChannelID{Channel: c}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidShelfID, data)
}

type encodingQueryJSON struct {
	Channel json.RawMessage `json:"channel"`
	Index   *int            `json:"index,omitempty"`
	ShelfFieldDef
}

// MarshalJSON encodes the entry flat: channel, index for wildcard
// channels, then the field def attributes.
func (q EncodingQuery) MarshalJSON() ([]byte, error) {
	ch, err := MarshalChannelQuery(q.Channel)
	if err != nil {
		return nil, err
	}
	out := encodingQueryJSON{Channel: ch, ShelfFieldDef: q.ShelfFieldDef}
	if IsWildcard(q.Channel) {
		index := q.Index
		out.Index = &index
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an entry written by MarshalJSON. A missing index on
// a wildcard entry decodes as 0.
func (q *EncodingQuery) UnmarshalJSON(data []byte) error {
	var raw encodingQueryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ch, err := UnmarshalChannelQuery(raw.Channel)
	if err != nil {
		return err
	}
	*q = EncodingQuery{Channel: ch, ShelfFieldDef: raw.ShelfFieldDef}
	if raw.Index != nil {
		q.Index = *raw.Index
	}
	return nil
}

type actionJSON struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type shelfPayloadJSON struct {
	ShelfID  json.RawMessage `json:"shelfId"`
	FieldDef *ShelfFieldDef  `json:"fieldDef,omitempty"`
	Fn       *ShelfFunction  `json:"fn,omitempty"`
}

type movePayloadJSON struct {
	From json.RawMessage `json:"from"`
	To   json.RawMessage `json:"to"`
}

// MarshalAction encodes a as {"type": ..., "payload": ...}. The payload of
// SHELF_FIELD_REMOVE is the shelf id itself.
func MarshalAction(a Action) ([]byte, error) {
	var payload any
	switch x := a.(type) {
	case FieldAdd:
		id, err := json.Marshal(x.ShelfID)
		if err != nil {
			return nil, err
		}
		fd := x.FieldDef
		payload = shelfPayloadJSON{ShelfID: id, FieldDef: &fd}
	case FieldMove:
		from, err := json.Marshal(x.From)
		if err != nil {
			return nil, err
		}
		to, err := json.Marshal(x.To)
		if err != nil {
			return nil, err
		}
		payload = movePayloadJSON{From: from, To: to}
	case FieldRemove:
		payload = x.ShelfID
	case FunctionChange:
		id, err := json.Marshal(x.ShelfID)
		if err != nil {
			return nil, err
		}
		fn := x.Fn
		payload = shelfPayloadJSON{ShelfID: id, Fn: &fn}
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidAction, a)
	}
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionJSON{Type: a.Type(), Payload: p})
}

// UnmarshalAction decodes an action written by MarshalAction.
func UnmarshalAction(data []byte) (Action, error) {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	switch raw.Type {
	case ShelfFieldAdd:
		var p shelfPayloadJSON
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		id, err := UnmarshalShelfID(p.ShelfID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		a := FieldAdd{ShelfID: id}
		if p.FieldDef != nil {
			a.FieldDef = *p.FieldDef
		}
		return a, nil
	case ShelfFieldMove:
		var p movePayloadJSON
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		from, err := UnmarshalShelfID(p.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from: %w", ErrInvalidAction, err)
		}
		to, err := UnmarshalShelfID(p.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to: %w", ErrInvalidAction, err)
		}
		return FieldMove{From: from, To: to}, nil
	case ShelfFieldRemove:
		id, err := UnmarshalShelfID(raw.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return FieldRemove{ShelfID: id}, nil
	case ShelfFunctionChange:
		var p shelfPayloadJSON
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		id, err := UnmarshalShelfID(p.ShelfID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		a := FunctionChange{ShelfID: id}
		if p.Fn != nil {
			a.Fn = *p.Fn
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAction, raw.Type)
	}
}

type actionRecordJSON struct {
	ActionID  string          `json:"action_id"`
	SessionID string          `json:"session_id"`
	Seq       int64           `json:"seq"`
	Type      ActionType      `json:"type"`
	Action    json.RawMessage `json:"action"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarshalJSON writes the record with its action in {"type", "payload"} form.
func (r ActionRecord) MarshalJSON() ([]byte, error) {
	if r.Action == nil {
		return nil, fmt.Errorf("%w: action record %s has no action", ErrInvalidAction, r.ActionID)
	}
	a, err := MarshalAction(r.Action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionRecordJSON{
		ActionID:  r.ActionID,
		SessionID: r.SessionID,
		Seq:       r.Seq,
		Type:      r.Action.Type(),
		Action:    a,
		CreatedAt: r.CreatedAt,
	})
}

// UnmarshalJSON decodes a record written by MarshalJSON.
func (r *ActionRecord) UnmarshalJSON(data []byte) error {
	var raw actionRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a, err := UnmarshalAction(raw.Action)
	if err != nil {
		return err
	}
	*r = ActionRecord{
		ActionID:  raw.ActionID,
		SessionID: raw.SessionID,
		Seq:       raw.Seq,
		Action:    a,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}
