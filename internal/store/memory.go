package store

import (
	"sync"
	"time"

	"tubescribe/pkg/models"
)

// MemoryStore implements Store with a mutex-guarded map. Growth is bounded
// two ways: entries expire a fixed TTL after creation, and when the registry
// is full the oldest entry is evicted to admit a new one. Eviction runs
// lazily on Create and Get so no background goroutine is needed.
type MemoryStore struct {
	mu       sync.RWMutex
	jobs     map[string]*models.Job
	order    []string // insertion order, oldest first
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore evicting jobs ttl after creation and
// holding at most capacity entries.
func NewMemoryStore(ttl time.Duration, capacity int) *MemoryStore {
	return &MemoryStore{
		jobs:     make(map[string]*models.Job),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(id string) *models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()

	job := &models.Job{
		ID:        id,
		Status:    models.StatusSubmitted,
		CreatedAt: s.now().UTC(),
	}
	s.jobs[id] = job
	s.order = append(s.order, id)

	cp := *job
	return &cp
}

func (s *MemoryStore) Update(id string, fields ...Field) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Completed {
		return
	}
	for _, f := range fields {
		f(job)
	}
}

func (s *MemoryStore) Get(id string) (*models.Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	if ok && s.expired(job) {
		ok = false
	}
	if !ok {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	cp := *job
	s.mu.RUnlock()
	return &cp, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, job := range s.jobs {
		if !s.expired(job) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(job *models.Job) bool {
	return s.now().Sub(job.CreatedAt) >= s.ttl
}

// evictLocked drops expired entries and, if still at capacity, the oldest
// entry. Caller holds the write lock.
func (s *MemoryStore) evictLocked() {
	kept := s.order[:0]
	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok && s.expired(job) {
			delete(s.jobs, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept

	for len(s.jobs) >= s.capacity && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.jobs, oldest)
	}
}

var _ Store = (*MemoryStore)(nil)
