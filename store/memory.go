// Package store keeps the visited resources of a crawl
package store

import (
	"sync"

	"github.com/foomo/exporter/vo"
)

// MemoryStore keeps resources in the order they were added
type MemoryStore struct {
	lock      sync.RWMutex
	resources []vo.VisitedResource
	index     map[string]int
	bodies    map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index:  map[string]int{},
		bodies: map[string]string{},
	}
}

// Add a resource, adding the same UqID again replaces it in place
func (s *MemoryStore) Add(res vo.VisitedResource, body string, hasBody bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if i, ok := s.index[res.UqID]; ok {
		s.resources[i] = res
	} else {
		s.index[res.UqID] = len(s.resources)
		s.resources = append(s.resources, res)
	}
	if hasBody {
		s.bodies[res.UqID] = body
	} else {
		delete(s.bodies, res.UqID)
	}
}

func (s *MemoryStore) All() []vo.VisitedResource {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]vo.VisitedResource{}, s.resources...)
}

func (s *MemoryStore) Body(uqID string) (body string, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	body, ok = s.bodies[uqID]
	return
}

func (s *MemoryStore) URLByID(uqID string) (u string, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	i, ok := s.index[uqID]
	if !ok {
		return "", false
	}
	return s.resources[i].URL, true
}
