package media

import (
	"context"
	"slices"
	"sync"
)

// DeletionHook is called when a store accepts the deletion of an asset. Hooks
// run before the asset is purged, so the asset is still readable from inside
// the hook.
type DeletionHook func(ctx context.Context, assetID string)

type hookRegistry struct {
	mu    sync.RWMutex
	next  int
	hooks map[int]DeletionHook
}

func newHookRegistry() *hookRegistry {
	return &hookRegistry{hooks: make(map[int]DeletionHook)}
}

// register adds hook and returns a function that removes it.
func (r *hookRegistry) register(hook DeletionHook) func() {
	if hook == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.next
	r.next++
	r.hooks[id] = hook
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.hooks, id)
		r.mu.Unlock()
	}
}

// fire calls every registered hook in registration order. The lock is not
// held while hooks run since a hook may delete further assets.
func (r *hookRegistry) fire(ctx context.Context, assetID string) {
	r.mu.RLock()
	ids := make([]int, 0, len(r.hooks))
	for id := range r.hooks {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		r.mu.RLock()
		hook, ok := r.hooks[id]
		r.mu.RUnlock()
		if ok {
			hook(ctx, assetID)
		}
	}
}
