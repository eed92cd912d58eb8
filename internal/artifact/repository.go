package artifact

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of artifacts kept when no capacity is given.
const DefaultCapacity = 256

// ErrNotFound is returned when an artifact ID is unknown or already evicted.
var ErrNotFound = errors.New("artifact not found")

// Repository is a concurrency-safe, bounded artifact registry. Once capacity
// is reached the oldest artifact is evicted for each new one, so memory stays
// flat however long the process runs.
type Repository struct {
	mu       sync.RWMutex
	store    Store
	order    []ID
	capacity int
	now      func() time.Time
}

// NewRepository constructs a repository over a fresh InMemoryStore.
func NewRepository(capacity int) *Repository {
	return NewRepositoryWithStore(NewInMemoryStore(), capacity)
}

// NewRepositoryWithStore constructs a repository that uses the given Store.
// If capacity <= 0, DefaultCapacity is used.
func NewRepositoryWithStore(store Store, capacity int) *Repository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Repository{
		store:    store,
		capacity: capacity,
		now:      time.Now,
	}
}

// Put stores data under a new random ID and returns that ID.
func (r *Repository) Put(contentType string, data []byte) ID {
	a := Artifact{
		ID:          ID(uuid.NewString()),
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a.CreatedAt = r.now().UTC()
	r.store.Set(a)
	r.order = append(r.order, a.ID)

	for len(r.order) > r.capacity {
		r.store.Delete(r.order[0])
		r.order = r.order[1:]
	}
	return a.ID
}

// Get returns a copy of the artifact with the given ID.
func (r *Repository) Get(id ID) (Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.store.Get(id)
	if !ok {
		return Artifact{}, ErrNotFound
	}
	a.Data = append([]byte(nil), a.Data...)
	return a, nil
}

// Count returns the number of artifacts currently held. Used for metrics.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Len()
}
