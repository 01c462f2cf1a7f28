package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicRepositoryRoundTrip(t *testing.T) {
	repo := NewTopicRepository()

	_, found := repo.Get("s1")
	assert.False(t, found)

	repo.Save("s1", "pricing")
	topic, found := repo.Get("s1")
	assert.True(t, found)
	assert.Equal(t, "pricing", topic)

	// Later triggers overwrite, keeping only the last topic.
	repo.Save("s1", "features")
	topic, _ = repo.Get("s1")
	assert.Equal(t, "features", topic)

	repo.Delete("s1")
	_, found = repo.Get("s1")
	assert.False(t, found)
}

func TestTopicRepositoryIsolatesSessions(t *testing.T) {
	repo := NewTopicRepository()

	repo.Save("s1", "pricing")

	_, found := repo.Get("s2")
	assert.False(t, found)
}
