package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TopicRepository holds the per-session last-detected conversation topic.
// Entries expire with the session recency window so the map stays bounded
// even on a long-lived process.
type TopicRepository struct {
	cache *cache.Cache
}

func NewTopicRepository() *TopicRepository {
	// 24h TTL matches the session reactivation window; expired entries are
	// purged hourly.
	return &TopicRepository{
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}
}

func (r *TopicRepository) Save(sessionID, topic string) {
	r.cache.Set(sessionID, topic, cache.DefaultExpiration)
}

func (r *TopicRepository) Get(sessionID string) (string, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(string), true
	}
	return "", false
}

func (r *TopicRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
