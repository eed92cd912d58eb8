package artifact

// Store is the persistence abstraction for rendered artifacts.
// Implementations can be in-memory, file-based, or remote.
// The Repository uses Store for all reads and writes and owns locking and
// eviction; Store implementations need not be concurrency-safe.
type Store interface {
	Get(id ID) (Artifact, bool)
	Set(a Artifact)
	Delete(id ID)
	Len() int
}

// InMemoryStore is an in-memory implementation of Store.
type InMemoryStore struct {
	artifacts map[ID]Artifact
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		artifacts: make(map[ID]Artifact),
	}
}

// Get implements Store.Get.
func (s *InMemoryStore) Get(id ID) (Artifact, bool) {
	a, ok := s.artifacts[id]
	return a, ok
}

// Set implements Store.Set.
func (s *InMemoryStore) Set(a Artifact) {
	s.artifacts[a.ID] = a
}

// Delete implements Store.Delete.
func (s *InMemoryStore) Delete(id ID) {
	delete(s.artifacts, id)
}

// Len implements Store.Len.
func (s *InMemoryStore) Len() int {
	return len(s.artifacts)
}
