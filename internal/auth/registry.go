package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the refresh tokens that are currently valid. Implementations
// must make Remove an atomic check-and-evict so that a token handed to two
// concurrent refresh calls is honored at most once.
type Registry interface {
	Put(token string, userID uuid.UUID)
	// Remove evicts the token and reports the user it belonged to.
	Remove(token string) (uuid.UUID, bool)
}

// MemoryRegistry is the in-process Registry used for single-instance
// deployments. Tokens do not survive a restart, which doubles as a crude
// revoke-everything switch. Multi-instance deployments need a shared store
// behind the same interface instead.
type MemoryRegistry struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

var _ Registry = (*MemoryRegistry)(nil)

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tokens: make(map[string]uuid.UUID)}
}

func (r *MemoryRegistry) Put(token string, userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
}

func (r *MemoryRegistry) Remove(token string) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.tokens[token]
	if ok {
		delete(r.tokens, token)
	}
	return userID, ok
}
