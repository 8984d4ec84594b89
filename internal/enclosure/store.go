package enclosure

import (
	"context"
	"sync"
	"time"

	"github.com/shelfmon/shelfmon/internal/errors"
	"github.com/shelfmon/shelfmon/internal/logger"
	"github.com/shelfmon/shelfmon/internal/report"
	"github.com/shelfmon/shelfmon/pkg/wsrpc"
)

// minLoadingDelay is the minimum time the loading flag stays up during
// the initial load, so the indicator doesn't flicker on fast responses.
const minLoadingDelay = 100 * time.Millisecond

// Notifier is the disk-update pub/sub facility the store listens on.
type Notifier interface {
	Subscribe(fn func(), replayLatest bool) string
	Unsubscribe(id string)
}

// State is an immutable snapshot of the store. Mutations produce a new
// value, so consumers can detect change by pointer comparison.
type State struct {
	Enclosures             []Enclosure
	IsLoading              bool
	SelectedEnclosureIndex int
	SelectedSlot           *Slot
	SelectedView           ViewKind
	SelectedSide           Side
}

func defaultState() *State {
	return &State{
		Enclosures:             []Enclosure{},
		IsLoading:              true,
		SelectedEnclosureIndex: 0,
		SelectedSlot:           nil,
		SelectedView:           ViewPools,
		SelectedSide:           SideUnset,
	}
}

// clone returns a shallow copy with its own Enclosures slice header.
func (st *State) clone() *State {
	next := *st
	return &next
}

// SelectedEnclosure returns the enclosure at the selected index, or nil
// when the index is out of range.
func (st *State) SelectedEnclosure() *Enclosure {
	if st.SelectedEnclosureIndex < 0 || st.SelectedEnclosureIndex >= len(st.Enclosures) {
		return nil
	}
	return &st.Enclosures[st.SelectedEnclosureIndex]
}

// SelectedEnclosureSlots returns the selected enclosure's array-device
// slots, empty when nothing is selected.
func (st *State) SelectedEnclosureSlots() []Slot {
	return st.SelectedEnclosure().Slots()
}

// EnclosureLabel returns the formatted label of the selected enclosure.
func (st *State) EnclosureLabel() string {
	return FormatLabel(st.SelectedEnclosure())
}

// Store is the enclosure state container. One instance belongs to one
// dashboard view; Close ties its teardown to the view's lifetime.
type Store struct {
	gateway  wsrpc.Caller
	notifier Notifier
	reporter report.Reporter
	log      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	cur *State

	// Per-operation generation counters: only the latest call of each
	// kind lands. Initiate bumps both, so a full reload invalidates any
	// in-flight refresh, but a refresh can never cancel the reload that
	// owns the loading cycle.
	initGen    uint64
	refreshGen uint64

	subID      string // disk-update subscription id, "" when not subscribed
	listeners  []func(*State)
	closed     bool
	minLoading time.Duration
}

// New creates a store with default state. Nothing is loaded until
// Initiate is called.
func New(gateway wsrpc.Caller, notifier Notifier, reporter report.Reporter, log logger.Logger) *Store {
	if log == nil {
		log = logger.Noop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		gateway:    gateway,
		notifier:   notifier,
		reporter:   reporter,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		cur:        defaultState(),
		minLoading: minLoadingDelay,
	}
}

// Snapshot returns the current state. The returned value is immutable;
// successive calls return the same pointer until a mutation lands.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// OnChange registers fn to run after every state transition, with the
// new snapshot. Callbacks run outside the store lock.
func (s *Store) OnChange(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(st *State) {
	s.mu.Lock()
	fns := make([]func(*State), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

// Initiate resets the store to defaults and starts a fresh dashboard
// load. Re-invoking supersedes any in-flight load: only the most
// recently started load's result is applied, and any in-flight refresh
// is invalidated too. The loading flag stays up for at least
// minLoadingDelay regardless of outcome.
func (s *Store) Initiate() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.initGen++
	s.refreshGen++
	gen := s.initGen
	s.cur = defaultState()
	st := s.cur
	delay := s.minLoading
	s.mu.Unlock()
	s.notify(st)

	started := time.Now()
	go func() {
		var encs []Enclosure
		err := s.gateway.Call(s.ctx, MethodDashboard, nil, &encs)

		if remain := delay - time.Since(started); remain > 0 {
			time.Sleep(remain)
		}

		s.mu.Lock()
		if s.closed || gen != s.initGen {
			s.mu.Unlock()
			return
		}
		next := s.cur.clone()
		if err == nil {
			next.Enclosures = encs
		}
		next.IsLoading = false
		s.cur = next
		s.mu.Unlock()

		if err != nil && s.ctx.Err() == nil {
			s.reporter.Report(errors.WrapWithCode(err, errors.ErrAPI,
				"Couldn't load the enclosure dashboard",
				"The middleware call failed; the dashboard will retry on the next disk update"))
		}
		s.notify(next)
	}()
}

// Update silently refreshes the enclosure list: no state reset, no
// loading flag. On failure the previous data is kept and the error is
// routed to the reporter.
func (s *Store) Update() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.refreshGen++
	gen := s.refreshGen
	s.mu.Unlock()

	go func() {
		var encs []Enclosure
		err := s.gateway.Call(s.ctx, MethodDashboard, nil, &encs)

		s.mu.Lock()
		if s.closed || gen != s.refreshGen {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.mu.Unlock()
			if s.ctx.Err() == nil {
				s.reporter.Report(errors.WrapWithCode(err, errors.ErrAPI,
					"Couldn't refresh the enclosure dashboard", ""))
			}
			return
		}
		next := s.cur.clone()
		next.Enclosures = encs
		reconcileSelection(next)
		s.cur = next
		s.mu.Unlock()
		s.notify(next)
	}()
}

// reconcileSelection re-validates the selection against freshly fetched
// data. An enclosure removed server-side resets the selection to
// defaults; a surviving selected slot is re-pointed at the new record,
// a vanished one is cleared.
func reconcileSelection(st *State) {
	if st.SelectedEnclosureIndex >= len(st.Enclosures) {
		st.SelectedEnclosureIndex = 0
		st.SelectedSlot = nil
		st.SelectedSide = SideUnset
		st.SelectedView = ViewPools
		return
	}
	if st.SelectedSlot == nil {
		return
	}
	for _, slot := range st.SelectedEnclosureSlots() {
		if slot.Number == st.SelectedSlot.Number {
			refreshed := slot
			st.SelectedSlot = &refreshed
			return
		}
	}
	st.SelectedSlot = nil
}

// AddListenerForDiskUpdates subscribes the store to the disk-update
// notifier; each notification triggers one Update. Idempotent: a second
// call while subscribed is a no-op.
func (s *Store) AddListenerForDiskUpdates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.subID != "" {
		return
	}
	s.subID = s.notifier.Subscribe(s.Update, false)
	s.log.Debug("subscribed to disk updates (%s)", s.subID)
}

// RemoveListenerForDiskUpdates drops the disk-update subscription.
// Safe to call when not subscribed.
func (s *Store) RemoveListenerForDiskUpdates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subID == "" {
		return
	}
	s.notifier.Unsubscribe(s.subID)
	s.subID = ""
}

// SelectEnclosure selects the enclosure with the given id. Selecting
// the already-selected enclosure leaves the snapshot untouched. An
// unknown id is rejected: the selection invariant (index always valid)
// beats a -1 sentinel here.
func (s *Store) SelectEnclosure(id string) {
	s.mu.Lock()
	idx := -1
	for i := range s.cur.Enclosures {
		if s.cur.Enclosures[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 || idx == s.cur.SelectedEnclosureIndex {
		s.mu.Unlock()
		return
	}
	next := s.cur.clone()
	next.SelectedEnclosureIndex = idx
	next.SelectedSlot = nil
	next.SelectedSide = SideUnset
	next.SelectedView = ViewPools
	s.cur = next
	s.mu.Unlock()
	s.notify(next)
}

// RenameSelectedEnclosure replaces the label of the selected enclosure.
// Everything else, including the other enclosures, is untouched.
func (s *Store) RenameSelectedEnclosure(label string) {
	s.mu.Lock()
	idx := s.cur.SelectedEnclosureIndex
	if idx < 0 || idx >= len(s.cur.Enclosures) {
		s.mu.Unlock()
		return
	}
	next := s.cur.clone()
	next.Enclosures = make([]Enclosure, len(s.cur.Enclosures))
	copy(next.Enclosures, s.cur.Enclosures)
	next.Enclosures[idx].Label = label
	s.cur = next
	s.mu.Unlock()
	s.notify(next)
}

// SelectSlot sets the selected slot unconditionally.
func (s *Store) SelectSlot(slot Slot) {
	s.mu.Lock()
	next := s.cur.clone()
	next.SelectedSlot = &slot
	s.cur = next
	s.mu.Unlock()
	s.notify(next)
}

// ClearSlot drops the slot selection.
func (s *Store) ClearSlot() {
	s.mu.Lock()
	if s.cur.SelectedSlot == nil {
		s.mu.Unlock()
		return
	}
	next := s.cur.clone()
	next.SelectedSlot = nil
	s.cur = next
	s.mu.Unlock()
	s.notify(next)
}

// SelectView sets the dashboard view unconditionally.
func (s *Store) SelectView(view ViewKind) {
	s.mu.Lock()
	next := s.cur.clone()
	next.SelectedView = view
	s.cur = next
	s.mu.Unlock()
	s.notify(next)
}

// SelectSide switches the visualized enclosure face. A no-op when the
// side is unchanged; otherwise the slot selection is cleared, since a
// slot is only meaningful relative to one side.
func (s *Store) SelectSide(side Side) {
	s.mu.Lock()
	if side == s.cur.SelectedSide {
		s.mu.Unlock()
		return
	}
	next := s.cur.clone()
	next.SelectedSide = side
	next.SelectedSlot = nil
	s.cur = next
	s.mu.Unlock()
	s.notify(next)
}

// Close tears the store down: the disk-update subscription is dropped,
// in-flight loads are abandoned, and all further mutation is refused.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.subID != "" {
		s.notifier.Unsubscribe(s.subID)
		s.subID = ""
	}
	s.mu.Unlock()
	s.cancel()
}
