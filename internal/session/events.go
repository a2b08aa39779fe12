package session

// EventKind identifies what changed.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventTabChanged
	EventCredentialsChanged
	EventValidationFailed
	EventNotification
	EventNavigate
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventTabChanged:
		return "tab_changed"
	case EventCredentialsChanged:
		return "credentials_changed"
	case EventValidationFailed:
		return "validation_failed"
	case EventNotification:
		return "notification"
	case EventNavigate:
		return "navigate"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind
	State       State
	Tab         Tab
	Message     string
	Success     bool
	Destination Destination
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Callbacks run outside the session lock, one event at a
// time, on whichever goroutine is draining the event queue.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// emit queues events and delivers them. Events are delivered one at a time
// in the order they were queued, which is the order of the state changes
// they describe, even when several goroutines change the session at once.
func (s *Session) emit(events ...Event) {
	s.mu.Lock()
	s.queueLocked(events...)
	s.mu.Unlock()
	s.dispatch()
}

// queueLocked must be called with s.mu held, in the same critical section as
// the change the events describe. Call dispatch after unlocking.
func (s *Session) queueLocked(events ...Event) {
	s.queue = append(s.queue, events...)
}

// dispatch drains the queue unless another goroutine is already doing so, in
// which case that goroutine delivers our events too. Subscribers may call back
// into the session; their events are queued behind the current one.
func (s *Session) dispatch() {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	for len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		subs := make([]subscriber, len(s.subscribers))
		copy(subs, s.subscribers)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(ev)
		}

		s.mu.Lock()
	}
	s.dispatching = false
	s.mu.Unlock()
}
