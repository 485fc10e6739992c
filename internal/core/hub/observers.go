package hub

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

var (
	ErrObserverIsNil           = errors.New("observer must not be nil")
	ErrObserverIsNotComparable = errors.New("observer must be a comparable handle, such as a pointer")
)

// Observer receives order board snapshots. Picker stations and tracker displays
// implement it. OnSnapshot runs on a goroutine owned by the hub, one per
// registered observer, and calls for one observer never overlap.
type Observer interface {
	OnSnapshot(snapshot Snapshot)
}

// Mailbox holds the newest snapshot not yet delivered to one observer and runs
// the goroutine that delivers it.
type Mailbox struct {
	observer Observer
	logger   *slog.Logger

	mu          sync.Mutex
	pending     Snapshot
	hasPending  bool
	accepted    uint64
	hasAccepted bool

	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newMailbox(observer Observer, logger *slog.Logger) *Mailbox {
	m := &Mailbox{
		observer: observer,
		logger:   logger,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go m.run()
	return m
}

// Offer queues s for delivery unless a snapshot with the same or a newer revision
// was already accepted. It never blocks and reports whether s was queued.
func (m *Mailbox) Offer(s Snapshot) bool {
	m.mu.Lock()
	if m.hasAccepted && s.Revision <= m.accepted {
		m.mu.Unlock()
		return false
	}
	m.pending = s
	m.hasPending = true
	m.accepted = s.Revision
	m.hasAccepted = true
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return true
}

// Observer returns the handle this mailbox delivers to.
func (m *Mailbox) Observer() Observer {
	return m.observer
}

func (m *Mailbox) run() {
	for {
		select {
		case <-m.done:
			return
		case <-m.wake:
		}

		m.mu.Lock()
		s, ok := m.pending, m.hasPending
		m.pending, m.hasPending = Snapshot{}, false
		m.mu.Unlock()

		if ok {
			m.deliver(s)
		}
	}
}

func (m *Mailbox) deliver(s Snapshot) {
	select {
	case <-m.done:
		return
	default:
	}

	// Observers share one broadcast; each gets entries it may keep or modify.
	s.Entries = slices.Clone(s.Entries)

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Observer panicked while handling snapshot",
				"revision", s.Revision,
				"panic", fmt.Sprint(r),
			)
		}
	}()
	m.observer.OnSnapshot(s)
}

func (m *Mailbox) stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// ObserverSet tracks the registered observers. Registration is keyed by the
// handle itself, so adding the same handle twice keeps one entry.
type ObserverSet struct {
	mu     sync.RWMutex
	boxes  map[Observer]*Mailbox
	logger *slog.Logger
}

// NewObserverSet returns an empty set.
func NewObserverSet(logger *slog.Logger) *ObserverSet {
	return &ObserverSet{
		boxes:  make(map[Observer]*Mailbox),
		logger: logger,
	}
}

// Add registers o and starts its delivery goroutine. It returns the observer's
// mailbox and whether o was newly added.
func (s *ObserverSet) Add(o Observer) (*Mailbox, bool, error) {
	if err := checkHandle(o); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if box, ok := s.boxes[o]; ok {
		return box, false, nil
	}
	box := newMailbox(o, s.logger)
	s.boxes[o] = box
	return box, true, nil
}

// Remove unregisters o and stops its delivery goroutine. Unknown handles are ignored.
// It reports whether o was registered.
func (s *ObserverSet) Remove(o Observer) bool {
	if checkHandle(o) != nil {
		return false
	}

	s.mu.Lock()
	box, ok := s.boxes[o]
	delete(s.boxes, o)
	s.mu.Unlock()

	if ok {
		box.stop()
	}
	return ok
}

// ForEach calls visit for every mailbox registered at the time of the call.
// visit runs without the set's lock held, so it may add or remove observers.
func (s *ObserverSet) ForEach(visit func(*Mailbox)) {
	s.mu.RLock()
	boxes := make([]*Mailbox, 0, len(s.boxes))
	for _, box := range s.boxes {
		boxes = append(boxes, box)
	}
	s.mu.RUnlock()

	for _, box := range boxes {
		visit(box)
	}
}

// Len returns the number of registered observers.
func (s *ObserverSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boxes)
}

// Clear removes every observer.
func (s *ObserverSet) Clear() {
	s.mu.Lock()
	boxes := s.boxes
	s.boxes = make(map[Observer]*Mailbox)
	s.mu.Unlock()

	for _, box := range boxes {
		box.stop()
	}
}

func checkHandle(o Observer) error {
	if o == nil {
		return ErrObserverIsNil
	}
	if !reflect.TypeOf(o).Comparable() {
		return ErrObserverIsNotComparable
	}
	return nil
}
