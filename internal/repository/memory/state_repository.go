package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// StateRepository holds OAuth state nonces between the consent redirect and
// the provider callback. Nonces are single-use and expire on their own.
type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository() *StateRepository {
	// Handshakes finish within minutes; purge leftovers regularly
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &StateRepository{
		cache: c,
	}
}

func (r *StateRepository) Save(state string) {
	r.cache.Set(state, struct{}{}, cache.DefaultExpiration)
}

// Consume reports whether the state was issued by us and invalidates it so
// a replayed callback fails.
func (r *StateRepository) Consume(state string) bool {
	if _, found := r.cache.Get(state); !found {
		return false
	}
	r.cache.Delete(state)
	return true
}
