package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shelves/internal/dnd"
	"github.com/mesh-intelligence/shelves/internal/query"
	"github.com/mesh-intelligence/shelves/internal/reducer"
	"github.com/mesh-intelligence/shelves/internal/sqlite"
	"github.com/mesh-intelligence/shelves/pkg/types"
)

// script is a sequence of shelf edits applied to an initial spec query.
type script struct {
	Initial *query.SpecQuery `json:"initial,omitempty"`
	Steps   []scriptStep     `json:"steps"`
}

// scriptStep holds exactly one edit.
type scriptStep struct {
	// Action is dispatched as is, in {"type", "payload"} form.
	Action json.RawMessage `json:"action,omitempty"`
	// Drop drops a field on a shelf of the pane.
	Drop *dropStep `json:"drop,omitempty"`
	// Remove clears the addressed shelf.
	Remove json.RawMessage `json:"remove,omitempty"`
	// Function changes the function on a shelf.
	Function *functionStep `json:"function,omitempty"`
	Undo     bool          `json:"undo,omitempty"`
	Redo     bool          `json:"redo,omitempty"`
}

type dropStep struct {
	Shelf json.RawMessage     `json:"shelf"`
	Field types.ShelfFieldDef `json:"field"`
	// From is the shelf the field is dragged from; absent means the field list.
	From json.RawMessage `json:"from,omitempty"`
}

type functionStep struct {
	Shelf json.RawMessage     `json:"shelf"`
	Fn    types.ShelfFunction `json:"fn"`
}

// scriptDrop is the DropMonitor of a scripted drop.
type scriptDrop struct {
	item dnd.DraggedField
}

func (d scriptDrop) Item() dnd.DraggedField { return d.item }
func (d scriptDrop) DidDrop() bool          { return false }

// parseScript accepts YAML or JSON. YAML is decoded generically and
// re-encoded as JSON so shelf ids and actions share one decoder.
func parseScript(data []byte) (script, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return script{}, fmt.Errorf("parse script: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return script{}, fmt.Errorf("parse script: %w", err)
	}
	var s script
	if err := json.Unmarshal(raw, &s); err != nil {
		return script{}, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

func newApplyCmd(a *app) *cobra.Command {
	var record string

	cmd := &cobra.Command{
		Use:   "apply <script>",
		Short: "Apply a script of shelf edits and print the resulting query",
		Long: `Apply runs the steps of a YAML or JSON script against the shelves of
the script's initial spec query and prints the resulting query.

Each step is one of:
  action:   {type: SHELF_FIELD_ADD, payload: {...}}
  drop:     {shelf: <shelf>, field: {...}, from: <shelf>}
  remove:   <shelf>
  function: {shelf: <shelf>, fn: mean}
  undo: true
  redo: true

A shelf is {channel: x} or {channel: "?", index: 0}. A drop without
"from" comes from the field list.

With --record NAME the initial shelves and every dispatched action are
stored as a new history session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return userError(err)
			}
			s, err := parseScript(data)
			if err != nil {
				return userError(err)
			}

			initial := types.NewShelf()
			if s.Initial != nil {
				initial = query.ToShelf(*s.Initial)
			}

			opts := []reducer.Option{
				reducer.WithLogger(a.logger),
				reducer.WithHistoryLimit(a.config.GetInt(cfgKeyHistoryLimit)),
			}
			if record != "" {
				history, err := a.attachHistory()
				if err != nil {
					return err
				}
				defer history.Detach()

				session, err := history.CreateSession(record, initial)
				if err != nil {
					return userError(fmt.Errorf("create session: %w", err))
				}
				opts = append(opts, reducer.WithRecorder(sqlite.SessionRecorder{History: history, SessionID: session.SessionID}))
				fmt.Fprintf(cmd.ErrOrStderr(), "recording session %s\n", session.SessionID)
			}

			store := reducer.NewStore(initial, opts...)
			for i, step := range s.Steps {
				if err := applyStep(store, step); err != nil {
					return userError(fmt.Errorf("step %d: %w", i+1, err))
				}
			}
			a.logger.Debug("script applied", zap.Int("steps", len(s.Steps)))
			return query.Encode(cmd.OutOrStdout(), query.FromShelf(store.State()))
		},
	}

	cmd.Flags().StringVar(&record, "record", "", "record the edits as a history session with this name")
	return cmd
}

var errStepKind = errors.New("a step needs exactly one of action, drop, remove, function, undo, redo")

// applyStep dispatches one step. Shelf steps go through the drop target of
// the addressed shelf so they resolve exactly as an interactive edit would.
func applyStep(store *reducer.Store, step scriptStep) error {
	kinds := 0
	for _, set := range []bool{
		step.Action != nil, step.Drop != nil, step.Remove != nil,
		step.Function != nil, step.Undo, step.Redo,
	} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return errStepKind
	}

	switch {
	case step.Action != nil:
		act, err := types.UnmarshalAction(step.Action)
		if err != nil {
			return err
		}
		store.HandleAction(act)
	case step.Drop != nil:
		target, err := shelfFor(store, step.Drop.Shelf)
		if err != nil {
			return err
		}
		item := dnd.DraggedField{FieldDef: step.Drop.Field, Parent: dnd.FieldListParent{}}
		if step.Drop.From != nil {
			from, err := types.UnmarshalShelfID(step.Drop.From)
			if err != nil {
				return err
			}
			item.Parent = dnd.EncodingShelfParent{ID: from}
		}
		return target.Drop(scriptDrop{item: item})
	case step.Remove != nil:
		target, err := shelfFor(store, step.Remove)
		if err != nil {
			return err
		}
		target.Remove()
	case step.Function != nil:
		target, err := shelfFor(store, step.Function.Shelf)
		if err != nil {
			return err
		}
		target.ChangeFunction(step.Function.Fn)
	case step.Undo:
		store.Undo()
	case step.Redo:
		store.Redo()
	}
	return nil
}

// shelfFor returns the drop target addressed by raw in the pane of the
// current state. Wildcard shelves outside the pane are created on demand.
func shelfFor(store *reducer.Store, raw json.RawMessage) (*dnd.EncodingShelf, error) {
	id, err := types.UnmarshalShelfID(raw)
	if err != nil {
		return nil, err
	}
	if sh := dnd.Find(dnd.NewPane(store.State(), store), id); sh != nil {
		return sh, nil
	}
	return &dnd.EncodingShelf{ID: id, Handler: store}, nil
}
