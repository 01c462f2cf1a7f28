package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "urgent keyword", message: "this is URGENT, the widget is down", want: SentimentUrgent},
		{name: "now counts as urgent", message: "I need this fixed now", want: SentimentUrgent},
		{name: "negative keyword", message: "this is terrible", want: SentimentNegative},
		{name: "negative emoji", message: "😡 what is going on", want: SentimentNegative},
		{name: "positive keyword", message: "that was excellent, thanks", want: SentimentPositive},
		{name: "urgent beats negative", message: "urgent: this is terrible", want: SentimentUrgent},
		{name: "negative beats positive", message: "the bad parts outweigh the good", want: SentimentNegative},
		{name: "neutral default", message: "can you explain the widget setup", want: SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeSentiment(tt.message))
		})
	}
}

func TestNeedsHumanAgent(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		sentiment string
		want      bool
	}{
		{name: "explicit human request", message: "I want to speak to a human", sentiment: SentimentNeutral, want: true},
		{name: "agent request", message: "connect me with an agent please", sentiment: SentimentNeutral, want: true},
		{name: "sensitive refund term", message: "I would like a refund", sentiment: SentimentNeutral, want: true},
		{name: "sensitive legal term", message: "my lawyer mentioned a lawsuit", sentiment: SentimentNeutral, want: true},
		{name: "urgent sentiment alone", message: "everything stopped working", sentiment: SentimentUrgent, want: true},
		{name: "long negative message", message: strings.Repeat("this keeps failing ", 8), sentiment: SentimentNegative, want: true},
		{name: "short negative message", message: "this is bad", sentiment: SentimentNegative, want: false},
		{name: "neutral question", message: "how do I change my widget color", sentiment: SentimentNeutral, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsHumanAgent(tt.message, tt.sentiment))
		})
	}
}

func TestHumanRequestOverridesSentiment(t *testing.T) {
	// Escalates regardless of how calm the message reads.
	message := "everything is great but I'd like to speak to a human"
	assert.True(t, NeedsHumanAgent(message, AnalyzeSentiment(message)))
}
