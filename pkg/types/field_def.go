package types

// ShelfFieldDef is the field placed on a shelf. Every attribute is
// independently optional, so the zero value is a valid empty placeholder.
type ShelfFieldDef struct {
	// Field is the field name, Wildcard for "any field", or empty.
	Field string `json:"field,omitempty"`

	// Fn is the transform applied to the field; empty means none.
	Fn ShelfFunction `json:"fn,omitempty"`

	// Type is the declared or inferred semantic type; empty means unset.
	Type ExpandedType `json:"type,omitempty"`

	// Title is the display label, independent of Field.
	Title string `json:"title,omitempty"`
}

// IsWildcardField reports whether the field def asks for any field.
func (fd ShelfFieldDef) IsWildcardField() bool { return fd.Field == Wildcard }

// IsPlaceholder reports whether the field def has neither a field nor a
// function.
func (fd ShelfFieldDef) IsPlaceholder() bool { return fd.Field == "" && fd.Fn == "" }

// DisplayTitle returns Title when set, otherwise the field name decorated
// with its function, e.g. "mean(price)".
func (fd ShelfFieldDef) DisplayTitle() string {
	if fd.Title != "" {
		return fd.Title
	}
	field := fd.Field
	if field == "" && fd.Fn == AggregateCount {
		field = "*"
	}
	if fd.Fn == "" {
		return field
	}
	return string(fd.Fn) + "(" + field + ")"
}

// ShelfAnyEncodingDef is a field def placed on a wildcard shelf. It keeps
// the wildcard channel and the index of the shelf holding it.
type ShelfAnyEncodingDef struct {
	Channel WildcardChannel `json:"channel"`
	Index   int             `json:"index"`
	ShelfFieldDef
}

// ShelfID returns the id of the wildcard shelf holding the def.
func (d ShelfAnyEncodingDef) ShelfID() WildcardChannelID {
	return WildcardChannelID{Channel: d.Channel, Index: d.Index}
}

// Clone returns a copy of d that shares no memory with it.
func (d ShelfAnyEncodingDef) Clone() ShelfAnyEncodingDef {
	d.Channel = d.Channel.Clone()
	return d
}
