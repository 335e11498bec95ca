// Package dnd is the boundary between a drag-and-drop substrate and the
// shelf action protocol. An EncodingShelf is a drop target for one shelf:
// it resolves what was dropped on it into exactly one action and hands that
// action to an ActionHandler.
package dnd

import (
	"fmt"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// FieldParent describes where a dragged field came from. FieldListParent
// and EncodingShelfParent are the registered origins.
type FieldParent interface {
	fieldParent()
}

// FieldListParent is the free field list of the dataset.
type FieldListParent struct{}

// EncodingShelfParent is another encoding shelf.
type EncodingShelfParent struct {
	ID types.ShelfID
}

func (FieldListParent) fieldParent()     {}
func (EncodingShelfParent) fieldParent() {}

// DraggedField is the item being dragged.
type DraggedField struct {
	FieldDef types.ShelfFieldDef
	Parent   FieldParent
}

// DropMonitor is what the drag-and-drop substrate tells a drop target.
type DropMonitor interface {
	// Item returns the dragged field.
	Item() DraggedField
	// DidDrop reports whether a nested drop target already handled the drop.
	DidDrop() bool
}

// EncodingShelf is the drop target of one shelf.
type EncodingShelf struct {
	ID       types.ShelfID
	FieldDef *types.ShelfFieldDef
	Handler  types.ActionHandler
}

// Label returns the shelf label: "any" for wildcard shelves.
func (s *EncodingShelf) Label() string {
	return types.ChannelLabel(s.ID)
}

// Drop resolves a drop on the shelf. A field from the field list becomes a
// FieldAdd; a field from another shelf becomes a FieldMove. A drop already
// handled by a nested target emits nothing. Any other origin is a wiring
// defect: Drop returns an error wrapping types.ErrUnregisteredOrigin and
// emits nothing.
func (s *EncodingShelf) Drop(m DropMonitor) error {
	if m.DidDrop() {
		return nil
	}

	item := m.Item()
	switch parent := item.Parent.(type) {
	case FieldListParent:
		s.Handler.HandleAction(types.FieldAdd{ShelfID: s.ID, FieldDef: item.FieldDef})
	case EncodingShelfParent:
		s.Handler.HandleAction(types.FieldMove{From: parent.ID, To: s.ID})
	default:
		return fmt.Errorf("drop on %s: %w (%T)", s.ID, types.ErrUnregisteredOrigin, item.Parent)
	}
	return nil
}

// Remove clears the shelf.
func (s *EncodingShelf) Remove() {
	s.Handler.HandleAction(types.FieldRemove{ShelfID: s.ID})
}

// ChangeFunction replaces the function of the field on the shelf.
func (s *EncodingShelf) ChangeFunction(fn types.ShelfFunction) {
	s.Handler.HandleAction(types.FunctionChange{ShelfID: s.ID, Fn: fn})
}

// Placeholder style names for an empty shelf.
const (
	PlaceholderOver   = "placeholder-over"
	PlaceholderActive = "placeholder-active"
	Placeholder       = "placeholder"
)

// PlaceholderStyle returns the style of an empty shelf: highlighted while a
// field hovers over it, active while any field is being dragged.
func PlaceholderStyle(isOver, isActive bool) string {
	switch {
	case isOver:
		return PlaceholderOver
	case isActive:
		return PlaceholderActive
	default:
		return Placeholder
	}
}
