package analysis

import "sync"

// draftGuard allows one outstanding analysis per submission draft.
type draftGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newDraftGuard() *draftGuard {
	return &draftGuard{active: make(map[string]struct{})}
}

// acquire reserves draftID and returns its release func. An empty draft id
// is never guarded.
func (g *draftGuard) acquire(draftID string) (func(), error) {
	if draftID == "" {
		return func() {}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[draftID]; busy {
		return nil, ErrAnalysisInFlight
	}
	g.active[draftID] = struct{}{}

	return func() {
		g.mu.Lock()
		delete(g.active, draftID)
		g.mu.Unlock()
	}, nil
}
