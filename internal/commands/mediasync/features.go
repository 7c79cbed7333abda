package mediasynccmd

// FeatureGates exposes the runtime toggles consulted by the sync commands.
type FeatureGates struct {
	// SyncEnabled returns true when cascade deletion is switched on.
	SyncEnabled func() bool
}

func (g FeatureGates) syncEnabled() bool {
	if g.SyncEnabled == nil {
		return true
	}
	return g.SyncEnabled()
}
