package reducer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// DefaultHistoryLimit bounds the undo stack when no limit is configured.
const DefaultHistoryLimit = 100

// Recorder journals dispatched actions.
type Recorder interface {
	Record(a types.Action) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(a types.Action) error

// Record calls f(a).
func (f RecorderFunc) Record(a types.Action) error { return f(a) }

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dispatch and journaling messages.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder journals every dispatched action to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithHistoryLimit bounds the number of undo steps kept. Zero or less
// disables undo.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.limit = n }
}

// Store owns the shelf state of one editing context. All mutation goes
// through HandleAction; the next State call reflects it.
//
// Transitions are serialized end to end: a transition is journaled and its
// listeners are notified before the next one is applied, so the journal and
// listeners see transitions in the order they were applied. Recorders and
// listeners must not dispatch to the same Store.
type Store struct {
	// dispatch is held across a whole transition; mu guards the fields.
	dispatch  sync.Mutex
	mu        sync.Mutex
	state     types.Shelf
	past      []types.Shelf
	future    []types.Shelf
	limit     int
	listeners []func(types.Shelf)
	recorder  Recorder
	logger    *zap.Logger
}

// NewStore returns a store holding initial.
func NewStore(initial types.Shelf, opts ...Option) *Store {
	s := &Store{
		state:  initial.Clone(),
		limit:  DefaultHistoryLimit,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current shelf.
func (s *Store) State() types.Shelf {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// HandleAction applies a synchronously. A journaling failure is logged and
// does not undo the transition.
func (s *Store) HandleAction(a types.Action) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = Reduce(prev, a)
	s.pushPast(prev)
	s.future = nil
	next := s.state.Clone()
	listeners := append([]func(types.Shelf){}, s.listeners...)
	recorder := s.recorder
	s.mu.Unlock()

	s.logger.Debug("shelf action",
		zap.String("type", string(a.Type())),
		zap.Int("encodings", len(next.Encoding)),
		zap.Int("any_encodings", len(next.AnyEncodings)))

	if recorder != nil {
		if err := recorder.Record(a); err != nil {
			s.logger.Warn("record shelf action", zap.String("type", string(a.Type())), zap.Error(err))
		}
	}
	notify(listeners, next)
}

// Undo restores the state before the last dispatched action. It reports
// false when there is nothing to undo.
func (s *Store) Undo() bool {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	if len(s.past) == 0 {
		s.mu.Unlock()
		return false
	}
	last := len(s.past) - 1
	s.future = append(s.future, s.state)
	s.state = s.past[last]
	s.past = s.past[:last]
	next := s.state.Clone()
	listeners := append([]func(types.Shelf){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Debug("shelf undo")
	notify(listeners, next)
	return true
}

// Redo re-applies the last undone transition. It reports false when there
// is nothing to redo.
func (s *Store) Redo() bool {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	if len(s.future) == 0 {
		s.mu.Unlock()
		return false
	}
	last := len(s.future) - 1
	s.pushPast(s.state)
	s.state = s.future[last]
	s.future = s.future[:last]
	next := s.state.Clone()
	listeners := append([]func(types.Shelf){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Debug("shelf redo")
	notify(listeners, next)
	return true
}

// Reset replaces the state wholesale, as when a new dataset or
// specification is loaded, and clears undo history.
func (s *Store) Reset(shelf types.Shelf) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	s.state = shelf.Clone()
	s.past = nil
	s.future = nil
	next := s.state.Clone()
	listeners := append([]func(types.Shelf){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Debug("shelf reset")
	notify(listeners, next)
}

// Subscribe registers fn to be called with the new state after every
// transition.
func (s *Store) Subscribe(fn func(types.Shelf)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// pushPast appends prev to the undo stack, dropping the oldest entry past
// the limit. Caller holds s.mu.
func (s *Store) pushPast(prev types.Shelf) {
	if s.limit <= 0 {
		return
	}
	s.past = append(s.past, prev)
	if over := len(s.past) - s.limit; over > 0 {
		s.past = append([]types.Shelf(nil), s.past[over:]...)
	}
}

func notify(listeners []func(types.Shelf), state types.Shelf) {
	for _, fn := range listeners {
		fn(state)
	}
}
