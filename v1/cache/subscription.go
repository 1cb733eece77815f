package cache

// Subscription is one consumer's interest in a key
type Subscription struct {
	entry   *entry
	updates chan Snapshot
	current Snapshot
	closed  bool
}

// Key returns the subscribed key
func (s *Subscription) Key() Key {
	return s.entry.key
}

// Current returns the latest snapshot seen by this subscription
func (s *Subscription) Current() Snapshot {
	s.entry.mu.Lock()
	defer s.entry.mu.Unlock()
	return s.current
}

// Updates delivers a snapshot after each completed fetch. The channel is
// closed by Close or when the cache shuts down.
func (s *Subscription) Updates() <-chan Snapshot {
	return s.updates
}

// Close detaches the subscription. A fetch still in flight completes, but its
// result is discarded if no other consumer remains.
func (s *Subscription) Close() {
	s.entry.mu.Lock()
	defer s.entry.mu.Unlock()
	delete(s.entry.subs, s)
	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.updates)
}

// deliverLocked records snap and sends it without blocking, dropping the
// oldest pending snapshot when the consumer is behind
func (s *Subscription) deliverLocked(snap Snapshot) {
	if s.closed {
		return
	}
	s.current = snap
	select {
	case s.updates <- snap:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}
