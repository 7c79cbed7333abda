package mediasync

import "sync"

// guard tracks assets the engine is deleting itself. Deletion events for a
// held asset are the engine's own echoes and must not start a cascade.
type guard struct {
	mu   sync.Mutex
	held map[string]int
}

func newGuard() *guard {
	return &guard{held: make(map[string]int)}
}

// acquire marks assetID as held until the returned release is called.
// Release is idempotent.
func (g *guard) acquire(assetID string) (release func()) {
	g.mu.Lock()
	g.held[assetID]++
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.held[assetID] <= 1 {
				delete(g.held, assetID)
				return
			}
			g.held[assetID]--
		})
	}
}

func (g *guard) holds(assetID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held[assetID] > 0
}
