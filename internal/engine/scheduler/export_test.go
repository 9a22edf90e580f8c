package scheduler

import (
	"maps"

	"go.trai.ch/autoload/internal/core/domain"
)

// GetModuleStatusMap returns a copy of the internal module status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetModuleStatusMap() map[string]domain.ModuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.moduleStatus)
}
