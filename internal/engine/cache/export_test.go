package cache

import "time"

// SetNow replaces the clock used for freshness checks.
// This is exported for testing purposes only.
func (m *Manager) SetNow(now func() time.Time) {
	m.now = now
}
