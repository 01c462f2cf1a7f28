package bot

import "strings"

// Match kinds returned by the classifier tiers.
const (
	KindIntent    = "intent"
	KindFAQ       = "faq"
	KindSmallTalk = "small_talk"
)

// Match is the result of one classifier tier: the tier that fired, the rule
// label within it, and the candidate replies the caller may choose from.
type Match struct {
	Kind    string
	Label   string
	Replies []string
}

// Classifier is a stateless pattern matcher over the ordered rule tables.
// Tiers are checked in strict priority order: intents, then FAQ, then small
// talk. Within a tier the first matching rule wins.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify runs all tiers in priority order and returns the first match,
// or nil when nothing fires.
func (c *Classifier) Classify(message string) *Match {
	if m := c.MatchIntent(message); m != nil {
		return m
	}
	if m := c.MatchFAQ(strings.ToLower(message)); m != nil {
		return m
	}
	return c.MatchSmallTalk(message)
}

// MatchIntent checks the ordered intent rules against the raw message.
func (c *Classifier) MatchIntent(message string) *Match {
	for _, rule := range intentRules {
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(message) {
				return &Match{Kind: KindIntent, Label: rule.Name, Replies: rule.Replies}
			}
		}
	}
	return nil
}

// MatchFAQ checks the FAQ entries against an already-lowercased message.
// An entry matches on two keyword hits, or on a single hit when the message
// is short enough (≤5 tokens) that one keyword is considered corroboration.
func (c *Classifier) MatchFAQ(lowerMessage string) *Match {
	tokens := len(strings.Fields(lowerMessage))
	for _, faq := range faqEntries {
		hits := 0
		for _, keyword := range faq.Keywords {
			if strings.Contains(lowerMessage, keyword) {
				hits++
			}
		}
		if hits >= 2 || (hits == 1 && tokens <= 5) {
			return &Match{Kind: KindFAQ, Label: faq.Keywords[0], Replies: []string{faq.Answer}}
		}
	}
	return nil
}

// MatchSmallTalk checks the ordered small-talk rules against the raw message.
func (c *Classifier) MatchSmallTalk(message string) *Match {
	for _, talk := range smallTalkRules {
		if talk.Pattern.MatchString(message) {
			return &Match{Kind: KindSmallTalk, Label: talk.Pattern.String(), Replies: talk.Replies}
		}
	}
	return nil
}
