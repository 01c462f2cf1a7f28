package bot

import (
	"strings"
	"time"
)

// Confidence values are fixed per tier. Downstream consumers key thresholds
// off these exact numbers, so they are constants rather than computed scores.
const (
	ConfidenceIntent     = 0.9
	ConfidenceFAQ        = 0.85
	ConfidenceSmallTalk  = 0.7
	ConfidenceContextual = 0.75
	ConfidenceAfterHours = 0.6
	ConfidenceFallback   = 0.3
)

// Intent labels attached to generated responses.
const (
	IntentMatched    = "matched"
	IntentFAQ        = "faq"
	IntentSmallTalk  = "small_talk"
	IntentContextual = "contextual"
	IntentAfterHours = "after_hours"
	IntentFallback   = "fallback"
)

// Remembered conversation topics.
const (
	TopicPricing  = "pricing"
	TopicFeatures = "features"
)

// Result is the outcome of one response-generation turn.
type Result struct {
	Response   string
	Intent     string
	Confidence float64
}

// TopicStore remembers the last detected topic per session so elliptical
// follow-ups ("tell me more") can be answered.
type TopicStore interface {
	Get(sessionID string) (string, bool)
	Save(sessionID, topic string)
}

// Responder turns a raw visitor message into a reply. It owns the classifier
// and the per-session topic memory; randomness and the clock are injectable
// so tests can pin both.
type Responder struct {
	classifier *Classifier
	topics     TopicStore
	pick       func(n int) int
	now        func() time.Time
	location   *time.Location
}

// Option customizes a Responder.
type Option func(*Responder)

// WithChoice replaces the uniform-choice function used to pick a reply from
// a candidate pool. pick(n) must return a value in [0, n).
func WithChoice(pick func(n int) int) Option {
	return func(r *Responder) { r.pick = pick }
}

// WithClock replaces the time source used by the after-hours gate.
func WithClock(now func() time.Time) Option {
	return func(r *Responder) { r.now = now }
}

// WithTimezone anchors the after-hours gate to a named zone. Unknown names
// keep the default.
func WithTimezone(name string) Option {
	return func(r *Responder) {
		if loc, err := time.LoadLocation(name); err == nil {
			r.location = loc
		}
	}
}

func NewResponder(topics TopicStore, opts ...Option) *Responder {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	r := &Responder{
		classifier: NewClassifier(),
		topics:     topics,
		pick:       defaultChoice,
		now:        time.Now,
		location:   loc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateResponse runs the response cascade for one message. Each step
// short-circuits on first success; see the tier confidence constants for the
// scores attached at each level. history is accepted for parity with the REST
// path but the rule cascade does not currently consume it.
func (r *Responder) GenerateResponse(message, sessionID string, history []string) Result {
	lower := strings.ToLower(strings.TrimSpace(message))

	r.updateTopic(sessionID, message)

	if m := r.classifier.MatchIntent(message); m != nil {
		return Result{Response: r.choose(m.Replies), Intent: IntentMatched, Confidence: ConfidenceIntent}
	}

	if m := r.classifier.MatchFAQ(lower); m != nil {
		return Result{Response: m.Replies[0], Intent: IntentFAQ, Confidence: ConfidenceFAQ}
	}

	if m := r.classifier.MatchSmallTalk(message); m != nil {
		return Result{Response: r.choose(m.Replies), Intent: IntentSmallTalk, Confidence: ConfidenceSmallTalk}
	}

	if reply := r.contextualReply(sessionID, lower); reply != "" {
		return Result{Response: reply, Intent: IntentContextual, Confidence: ConfidenceContextual}
	}

	if r.isAfterHours() && strings.Contains(lower, "now") {
		return Result{Response: afterHoursReply, Intent: IntentAfterHours, Confidence: ConfidenceAfterHours}
	}

	return Result{Response: r.fallbackReply(message), Intent: IntentFallback, Confidence: ConfidenceFallback}
}

// updateTopic records at most one topic per call; the pricing trigger is
// checked before the features trigger.
func (r *Responder) updateTopic(sessionID, message string) {
	switch {
	case topicPricingPattern.MatchString(message):
		r.topics.Save(sessionID, TopicPricing)
	case topicFeaturesPattern.MatchString(message):
		r.topics.Save(sessionID, TopicFeatures)
	}
}

func (r *Responder) contextualReply(sessionID, lowerMessage string) string {
	if !strings.Contains(lowerMessage, "more") && !strings.Contains(lowerMessage, "else") {
		return ""
	}
	topic, ok := r.topics.Get(sessionID)
	if !ok {
		return ""
	}
	return topicFollowUps[topic]
}

func (r *Responder) fallbackReply(message string) string {
	if len(strings.Fields(message)) <= 2 {
		return shortMessageFallback
	}
	return r.choose(fallbackReplies)
}

// isAfterHours reports whether the current time falls outside weekday
// 9:00–18:00 in the service's reference timezone. Weekends are always
// after-hours.
func (r *Responder) isAfterHours() bool {
	now := r.now().In(r.location)
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return true
	}
	return now.Hour() < 9 || now.Hour() >= 18
}

func (r *Responder) choose(replies []string) string {
	if len(replies) == 1 {
		return replies[0]
	}
	return replies[r.pick(len(replies))]
}
