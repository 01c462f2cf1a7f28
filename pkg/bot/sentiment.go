package bot

import (
	"math/rand"
	"regexp"
)

// Sentiment labels, strongest first. Marker sets are evaluated in this
// priority order and the first set that matches wins.
const (
	SentimentUrgent   = "urgent"
	SentimentNegative = "negative"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
)

var (
	urgentMarkers   = regexp.MustCompile(`(?i)(urgent|emergency|asap|immediately|now|help!)`)
	negativeMarkers = regexp.MustCompile(`(?i)(😞|😠|😡|😤|bad|terrible|awful|hate|worst|horrible|sucks)`)
	positiveMarkers = regexp.MustCompile(`(?i)(😊|😄|🙂|😃|great|excellent|good|thanks|love|awesome|perfect)`)

	humanRequestPattern   = regexp.MustCompile(`(?i)(human|agent|representative|person|real person|speak to|talk to someone)`)
	sensitiveIssuePattern = regexp.MustCompile(`(?i)(refund|legal|lawsuit|injured|emergency|urgent.*help)`)
)

// AnalyzeSentiment classifies a message via marker-word and emoji sets.
func AnalyzeSentiment(message string) string {
	switch {
	case urgentMarkers.MatchString(message):
		return SentimentUrgent
	case negativeMarkers.MatchString(message):
		return SentimentNegative
	case positiveMarkers.MatchString(message):
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}

// NeedsHumanAgent decides whether a turn should be escalated to a person:
// explicit human-request language, legally or medically sensitive terms,
// urgent sentiment, or a long negative message.
func NeedsHumanAgent(message, sentiment string) bool {
	return humanRequestPattern.MatchString(message) ||
		sensitiveIssuePattern.MatchString(message) ||
		sentiment == SentimentUrgent ||
		(sentiment == SentimentNegative && len(message) > 100)
}

func defaultChoice(n int) int {
	return rand.Intn(n)
}
