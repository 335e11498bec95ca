package types

// ActionType names a shelf action on the wire.
type ActionType string

// The closed set of shelf actions.
const (
	ShelfFieldAdd       ActionType = "SHELF_FIELD_ADD"
	ShelfFieldMove      ActionType = "SHELF_FIELD_MOVE"
	ShelfFieldRemove    ActionType = "SHELF_FIELD_REMOVE"
	ShelfFunctionChange ActionType = "SHELF_FUNCTION_CHANGE"
)

// Action mutates shelf state. FieldAdd, FieldMove, FieldRemove and
// FunctionChange are the only implementations.
type Action interface {
	Type() ActionType
	action()
}

// FieldAdd places FieldDef on ShelfID, overwriting what was there.
type FieldAdd struct {
	ShelfID  ShelfID
	FieldDef ShelfFieldDef
}

// FieldMove moves the field def at From to To. From becomes empty and the
// previous content of To is discarded.
type FieldMove struct {
	From ShelfID
	To   ShelfID
}

// FieldRemove clears the shelf at ShelfID.
type FieldRemove struct {
	ShelfID ShelfID
}

// FunctionChange replaces the function of the field def at ShelfID and
// leaves its field, type and title alone.
type FunctionChange struct {
	ShelfID ShelfID
	Fn      ShelfFunction
}

func (FieldAdd) Type() ActionType       { return ShelfFieldAdd }
func (FieldMove) Type() ActionType      { return ShelfFieldMove }
func (FieldRemove) Type() ActionType    { return ShelfFieldRemove }
func (FunctionChange) Type() ActionType { return ShelfFunctionChange }

func (FieldAdd) action()       {}
func (FieldMove) action()      {}
func (FieldRemove) action()    {}
func (FunctionChange) action() {}

// ActionHandler receives shelf actions. Dispatch is synchronous: the next
// read of state reflects the action.
type ActionHandler interface {
	HandleAction(a Action)
}

// ActionHandlerFunc adapts a function to ActionHandler.
type ActionHandlerFunc func(a Action)

// HandleAction calls f(a).
func (f ActionHandlerFunc) HandleAction(a Action) { f(a) }
