package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mapTopicStore struct {
	topics map[string]string
}

func newMapTopicStore() *mapTopicStore {
	return &mapTopicStore{topics: make(map[string]string)}
}

func (s *mapTopicStore) Get(sessionID string) (string, bool) {
	topic, ok := s.topics[sessionID]
	return topic, ok
}

func (s *mapTopicStore) Save(sessionID, topic string) {
	s.topics[sessionID] = topic
}

// weekdayNoon is a Wednesday at 12:00 in New York, well inside business hours.
var weekdayNoon = time.Date(2025, 6, 11, 16, 0, 0, 0, time.UTC)

// saturdayNoon is always after-hours regardless of the hour.
var saturdayNoon = time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC)

func newTestResponder(topics TopicStore, now time.Time, pick int) *Responder {
	return NewResponder(topics,
		WithClock(func() time.Time { return now }),
		WithChoice(func(n int) int { return pick % n }),
	)
}

func TestGenerateResponseIntentTier(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 0)

	result := r.GenerateResponse("hello", "s1", nil)

	assert.Equal(t, IntentMatched, result.Intent)
	assert.Equal(t, ConfidenceIntent, result.Confidence)
	assert.Contains(t, intentRules[0].Replies, result.Response)
}

func TestGenerateResponseIntentReplyFollowsChoice(t *testing.T) {
	store := newMapTopicStore()
	for pick := range intentRules[0].Replies {
		r := newTestResponder(store, weekdayNoon, pick)
		result := r.GenerateResponse("hi there", "s1", nil)
		assert.Equal(t, intentRules[0].Replies[pick], result.Response)
	}
}

func TestGenerateResponseFAQTier(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 0)

	// Two keyword hits: "forgot" and "password".
	result := r.GenerateResponse("forgot my password", "s1", nil)

	assert.Equal(t, IntentFAQ, result.Intent)
	assert.Equal(t, ConfidenceFAQ, result.Confidence)
	assert.Equal(t, faqEntries[0].Answer, result.Response)
}

func TestGenerateResponseSmallTalkTier(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 0)

	result := r.GenerateResponse("are you a robot", "s1", nil)

	assert.Equal(t, IntentSmallTalk, result.Intent)
	assert.Equal(t, ConfidenceSmallTalk, result.Confidence)
}

func TestGenerateResponseContextualFollowUp(t *testing.T) {
	store := newMapTopicStore()
	r := newTestResponder(store, weekdayNoon, 0)

	first := r.GenerateResponse("what is your pricing?", "s1", nil)
	assert.Equal(t, IntentMatched, first.Intent)
	assert.Equal(t, TopicPricing, store.topics["s1"])

	followUp := r.GenerateResponse("tell me more", "s1", nil)
	assert.Equal(t, IntentContextual, followUp.Intent)
	assert.Equal(t, ConfidenceContextual, followUp.Confidence)
	assert.Equal(t, topicFollowUps[TopicPricing], followUp.Response)
}

func TestGenerateResponseContextualWithoutTopicFallsThrough(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 0)

	result := r.GenerateResponse("tell me more", "fresh-session", nil)

	assert.Equal(t, IntentFallback, result.Intent)
	assert.Equal(t, ConfidenceFallback, result.Confidence)
}

func TestTopicMemoryIsPerSession(t *testing.T) {
	store := newMapTopicStore()
	r := newTestResponder(store, weekdayNoon, 0)

	r.GenerateResponse("what is your pricing?", "s1", nil)

	result := r.GenerateResponse("tell me more", "s2", nil)
	assert.Equal(t, IntentFallback, result.Intent)
}

func TestUpdateTopicPricingBeatsFeatures(t *testing.T) {
	store := newMapTopicStore()
	r := newTestResponder(store, weekdayNoon, 0)

	// Both triggers present; at most one topic is recorded per call and the
	// pricing trigger is checked first.
	r.GenerateResponse("what does the cost of the features look like", "s1", nil)

	assert.Equal(t, TopicPricing, store.topics["s1"])
}

func TestGenerateResponseAfterHoursGate(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), saturdayNoon, 0)

	result := r.GenerateResponse("is anyone there right now", "s1", nil)

	assert.Equal(t, IntentAfterHours, result.Intent)
	assert.Equal(t, ConfidenceAfterHours, result.Confidence)
	assert.Equal(t, afterHoursReply, result.Response)
}

func TestGenerateResponseAfterHoursRequiresNow(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), saturdayNoon, 0)

	result := r.GenerateResponse("is anyone actually there today", "s1", nil)

	assert.Equal(t, IntentFallback, result.Intent)
}

func TestGenerateResponseBusinessHoursSkipsGate(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 0)

	result := r.GenerateResponse("is anyone there right now", "s1", nil)

	assert.Equal(t, IntentFallback, result.Intent)
}

func TestGenerateResponseShortMessageFallback(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 3)

	result := r.GenerateResponse("ok", "s1", nil)

	assert.Equal(t, IntentFallback, result.Intent)
	assert.Equal(t, ConfidenceFallback, result.Confidence)
	assert.Equal(t, shortMessageFallback, result.Response)
}

func TestGenerateResponseRandomFallback(t *testing.T) {
	r := newTestResponder(newMapTopicStore(), weekdayNoon, 2)

	result := r.GenerateResponse("purple elephants quantum dance ensemble", "s1", nil)

	assert.Equal(t, IntentFallback, result.Intent)
	assert.Equal(t, fallbackReplies[2], result.Response)
}
