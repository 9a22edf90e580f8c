package domain

import "time"

// Snapshot is a persisted copy of scanned declarations.
type Snapshot struct {
	Batch
	WrittenAt time.Time
}

// NewSnapshot wraps a batch with its write time.
func NewSnapshot(b Batch, writtenAt time.Time) *Snapshot {
	return &Snapshot{Batch: b, WrittenAt: writtenAt}
}

// ModuleSummary counts what one module contributed to a rebuild.
type ModuleSummary struct {
	Name        string
	Classes     int
	Interfaces  int
	Status      ModuleStatus
	Diagnostics int
}

// Summary is the outcome of a bulk rebuild, in module order.
type Summary struct {
	Modules []ModuleSummary
}

// Totals returns the total class and interface counts.
func (s Summary) Totals() (classes, interfaces int) {
	for _, m := range s.Modules {
		classes += m.Classes
		interfaces += m.Interfaces
	}
	return classes, interfaces
}
