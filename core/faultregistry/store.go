// Package faultregistry tracks the vehicles that failed during a run.
package faultregistry

import (
	"sort"
	"sync"

	"github.com/kilianp07/fleetrent/core/model"
)

// Store is the shared faulty-vehicle registry. Register is called from
// concurrent simulation tasks; Snapshot serves reporting consumers after
// the run.
type Store interface {
	Register(v *model.Vehicle)
	Get(id string) (*model.Vehicle, bool)
	Snapshot() []*model.Vehicle
}

// MemoryStore keeps faulty vehicles in a mutex-guarded map keyed by vehicle
// id. The last writer wins on repeated faults of the same vehicle.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*model.Vehicle
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]*model.Vehicle{}}
}

func (s *MemoryStore) Register(v *model.Vehicle) {
	if v == nil {
		return
	}
	s.mu.Lock()
	s.data[v.ID] = v
	s.mu.Unlock()
}

func (s *MemoryStore) Get(id string) (*model.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[id]
	return v, ok
}

// Snapshot returns the registered vehicles sorted by id.
func (s *MemoryStore) Snapshot() []*model.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*model.Vehicle, 0, len(s.data))
	for _, v := range s.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}
