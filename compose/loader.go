package compose

// SequenceGate orders async completions. Each request takes the next
// sequence number; a completion is admitted only if no newer request
// has started since. Stale responses are discarded instead of
// overwriting fresher state.
type SequenceGate struct {
	next   uint64
	latest uint64
}

// Begin registers a new request and returns its sequence number.
func (g *SequenceGate) Begin() uint64 {
	g.next++
	g.latest = g.next
	return g.next
}

// Admit reports whether a completion with the given sequence number is
// still current.
func (g *SequenceGate) Admit(seq uint64) bool {
	return seq == g.latest
}

// LoadGuard suppresses re-entrant or pointless load-more triggers: a
// load already in flight, or a timeline already exhausted, swallows
// the trigger.
type LoadGuard struct {
	inFlight  bool
	exhausted bool
}

// TryBegin reports whether a load may start, and marks it in flight if
// so.
func (g *LoadGuard) TryBegin() bool {
	if g.inFlight || g.exhausted {
		return false
	}
	g.inFlight = true
	return true
}

// Finish completes the in-flight load. done marks the timeline
// exhausted, ending all future loads until Reset.
func (g *LoadGuard) Finish(done bool) {
	g.inFlight = false
	if done {
		g.exhausted = true
	}
}

// Reset clears the guard for a fresh traversal.
func (g *LoadGuard) Reset() {
	g.inFlight = false
	g.exhausted = false
}

func (g *LoadGuard) InFlight() bool  { return g.inFlight }
func (g *LoadGuard) Exhausted() bool { return g.exhausted }
