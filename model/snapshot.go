package model

import "time"

// Snapshot is a flat, consistent view of the process table at one instant.
// Procs is keyed by pid; Order preserves the provider's insertion order so
// that one snapshot always renders the same way (order across runs is not
// guaranteed).
type Snapshot struct {
	TakenAt time.Time
	Procs   map[PID]ProcessRecord
	Order   []PID
}

// NewSnapshot returns an empty snapshot stamped with t.
func NewSnapshot(t time.Time) *Snapshot {
	return &Snapshot{
		TakenAt: t,
		Procs:   make(map[PID]ProcessRecord),
	}
}

// Add appends a record. A pid already present is ignored: the pid set of a
// snapshot has no duplicates.
func (s *Snapshot) Add(rec ProcessRecord) {
	if _, ok := s.Procs[rec.PID]; ok {
		return
	}
	s.Procs[rec.PID] = rec
	s.Order = append(s.Order, rec.PID)
}

// Get returns the record for pid, if present.
func (s *Snapshot) Get(pid PID) (ProcessRecord, bool) {
	rec, ok := s.Procs[pid]
	return rec, ok
}

// Len returns the number of captured processes.
func (s *Snapshot) Len() int {
	return len(s.Order)
}
