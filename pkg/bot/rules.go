package bot

import "regexp"

// intentRule maps one recognized intent to its recognition patterns and reply pool.
// Rules are evaluated in declaration order, first match wins, so the ordering of
// the intentRules slice is part of the contract — do not sort it.
type intentRule struct {
	Name     string
	Patterns []*regexp.Regexp
	Replies  []string
}

// faqEntry matches when at least two keywords appear in the lowercased message,
// or exactly one keyword appears and the message has five tokens or fewer.
type faqEntry struct {
	Keywords []string
	Answer   string
}

// smallTalkRule covers conversational fillers that are not product questions.
type smallTalkRule struct {
	Pattern *regexp.Regexp
	Replies []string
}

var intentRules = []intentRule{
	{
		Name: "greeting",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(hi|hello|hey|howdy|greetings|good morning|good afternoon|good evening)`),
			regexp.MustCompile(`(?i)^(what'?s up|sup|yo)`),
			regexp.MustCompile(`(?i)^(how are you|how do you do)`),
		},
		Replies: []string{
			"Hello! How can I help you today?",
			"Hi there! What can I assist you with?",
			"Welcome! How may I help you?",
			"Hello! I'm here to help. What do you need assistance with?",
		},
	},
	{
		Name: "goodbye",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(bye|goodbye|see you|farewell|take care|ciao|later)`),
			regexp.MustCompile(`(?i)^(thanks? bye|thank you,? bye)`),
			regexp.MustCompile(`(?i)^(have a good|have a nice)`),
		},
		Replies: []string{
			"Goodbye! Have a great day!",
			"Thank you for chatting with us. Take care!",
			"See you later! Feel free to return if you need more help.",
			"Bye! Don't hesitate to reach out if you need anything else.",
		},
	},
	{
		Name: "thanks",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(thanks?|thank you|thx|ty)`),
			regexp.MustCompile(`(?i)^(appreciate|grateful)`),
			regexp.MustCompile(`(?i)^(you'?re? (the )?best|you rock|awesome)`),
		},
		Replies: []string{
			"You're welcome! Happy to help!",
			"My pleasure! Is there anything else I can help with?",
			"Glad I could assist! Let me know if you need anything else.",
			"You're very welcome! 😊",
		},
	},
	{
		Name: "help",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(help|need help|can you help|help me)`),
			regexp.MustCompile(`(?i)^(what can you do|how can you help)`),
			regexp.MustCompile(`(?i)^(support|assistance|i need)`),
		},
		Replies: []string{
			"I'm here to help! I can answer questions about our products, services, pricing, or help with technical issues. What would you like to know?",
			"I'd be happy to help! You can ask me about:\n• Product information\n• Pricing and plans\n• Technical support\n• Account questions\n\nWhat do you need help with?",
			"Sure, I can help! What specific information are you looking for?",
		},
	},
	{
		Name: "pricing",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(price|pricing|cost|how much|plans?|subscription)`),
			regexp.MustCompile(`(?i)(free trial|trial|demo)`),
			regexp.MustCompile(`(?i)(payment|billing|invoice)`),
		},
		Replies: []string{
			"We offer several pricing plans:\n\n• **Free Plan**: Perfect for small teams (up to 100 chats/month)\n• **Pro Plan**: $29/month for unlimited chats\n• **Business Plan**: $99/month with advanced features\n• **Enterprise**: Custom pricing\n\nAll paid plans include a 14-day free trial. Would you like more details about any specific plan?",
		},
	},
	{
		Name: "features",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(features?|functionality|what.*(do|offer)|capabilities)`),
			regexp.MustCompile(`(?i)(integration|api|customize|customization)`),
			regexp.MustCompile(`(?i)(analytics|reports?|dashboard)`),
		},
		Replies: []string{
			"Our chat platform includes:\n\n✨ **Core Features**:\n• Real-time messaging\n• AI-powered responses\n• Conversation history\n• File sharing\n• Mobile responsive\n\n📊 **Analytics**:\n• Chat metrics\n• Response times\n• Customer satisfaction\n\n🔧 **Integrations**:\n• REST API\n• Webhooks\n• Slack/Teams\n• CRM systems\n\nWhat feature interests you most?",
		},
	},
	{
		Name: "technical",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(not working|broken|error|bug|issue|problem)`),
			regexp.MustCompile(`(?i)(can'?t|cannot|unable to|won'?t)`),
			regexp.MustCompile(`(?i)(install|setup|configure|integration)`),
		},
		Replies: []string{
			"I'm sorry you're experiencing issues. Let me help you troubleshoot:\n\n1. What specific problem are you encountering?\n2. When did this start happening?\n3. Have you tried refreshing the page?\n\nYou can also email our technical team at support@neochat.com for immediate assistance.",
		},
	},
	{
		Name: "contact",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(contact|email|phone|call|reach|get in touch)`),
			regexp.MustCompile(`(?i)(human|agent|representative|person|support team)`),
			regexp.MustCompile(`(?i)(sales|demo|meeting|schedule)`),
		},
		Replies: []string{
			"Here's how to reach our team:\n\n📧 **Email**: support@neochat.com\n📞 **Phone**: 1-800-NEO-CHAT\n💬 **Live Support**: Available Mon-Fri, 9AM-6PM EST\n\nFor sales inquiries: sales@neochat.com\n\nWould you like me to connect you with a human agent now?",
		},
	},
	{
		Name: "business_hours",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(hours|open|closed|available|business hours)`),
			regexp.MustCompile(`(?i)(when.*available|support hours)`),
			regexp.MustCompile(`(?i)(weekend|after hours|24.7)`),
		},
		Replies: []string{
			"Our support hours are:\n\n🕐 **Monday-Friday**: 9:00 AM - 6:00 PM EST\n🕐 **Saturday**: 10:00 AM - 4:00 PM EST\n🕐 **Sunday**: Closed\n\nOur AI assistant (that's me!) is available 24/7 to help with common questions. For urgent issues outside business hours, please email urgent@neochat.com",
		},
	},
}

var faqEntries = []faqEntry{
	{
		Keywords: []string{"reset", "password", "forgot", "login"},
		Answer:   "To reset your password:\n1. Go to the login page\n2. Click 'Forgot Password'\n3. Enter your email\n4. Check your email for reset instructions\n\nIf you don't receive the email within 5 minutes, check your spam folder.",
	},
	{
		Keywords: []string{"widget", "install", "embed", "website", "add"},
		Answer:   "To install the chat widget on your website:\n\n```html\n<script src=\"https://neochat.com/widget.js\" \n  data-customer-id=\"YOUR_ID\"\n  async>\n</script>\n```\n\nJust add this code before the closing </body> tag. Need help with a specific platform?",
	},
	{
		Keywords: []string{"data", "privacy", "gdpr", "security", "encryption"},
		Answer:   "We take data security seriously:\n\n🔒 **Encryption**: All data is encrypted in transit and at rest\n🛡️ **Compliance**: GDPR, CCPA, and SOC 2 compliant\n🔐 **Security**: Regular security audits and penetration testing\n📊 **Your Data**: You own your data and can export/delete it anytime\n\nRead our full privacy policy at neochat.com/privacy",
	},
	{
		Keywords: []string{"cancel", "refund", "subscription", "unsubscribe"},
		Answer:   "You can cancel your subscription anytime:\n\n1. Log into your dashboard\n2. Go to Settings → Billing\n3. Click 'Cancel Subscription'\n\nWe offer a 30-day money-back guarantee. If you cancel within 30 days, you'll receive a full refund. No questions asked!",
	},
	{
		Keywords: []string{"api", "developers", "documentation", "integrate"},
		Answer:   "For developers, we offer:\n\n📚 **API Documentation**: api.neochat.com/docs\n🔧 **SDKs**: JavaScript, Python, Ruby, PHP\n🎯 **Webhooks**: Real-time event notifications\n💻 **GraphQL API**: For advanced queries\n\nNeed help with integration? Check our developer guide or email developers@neochat.com",
	},
}

var smallTalkRules = []smallTalkRule{
	{
		Pattern: regexp.MustCompile(`(?i)how are you`),
		Replies: []string{
			"I'm doing great, thanks for asking! How can I help you today?",
			"I'm here and ready to help! What can I do for you?",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)what'?s your name`),
		Replies: []string{
			"I'm Neo, your AI assistant! How can I help you today?",
			"You can call me Neo! I'm here to assist with any questions you have.",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)are you (a )?robot`),
		Replies: []string{
			"I'm an AI assistant designed to help answer your questions! While I am automated, I'm here to provide real help. What can I assist you with?",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)weather`),
		Replies: []string{
			"I'm focused on helping with our chat platform, but for weather updates, I'd recommend checking weather.com! Is there anything about our service I can help with?",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)joke`),
		Replies: []string{
			"Why don't programmers like nature? It has too many bugs! 😄 Now, what can I help you with today?",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)(who made|who created|who built)`),
		Replies: []string{
			"I was created by the Neo LiveChat team to help answer your questions! Speaking of which, what would you like to know?",
		},
	},
}

var fallbackReplies = []string{
	"I'm not quite sure about that. Could you rephrase your question? Or would you like to speak with a human agent?",
	"I don't have a specific answer for that, but I'd be happy to connect you with our support team who can help!",
	"That's a great question! For the most accurate answer, let me connect you with our support team. Would you like me to do that?",
	"I want to make sure you get the right information. You can either rephrase your question, or I can connect you with a specialist. What would you prefer?",
}

const shortMessageFallback = "Could you tell me a bit more about what you need help with? I'm here to assist with questions about our chat platform, pricing, features, or technical support."

const afterHoursReply = "I'm here to help! While our human support team is currently offline (business hours: Mon-Fri 9AM-6PM EST), I can assist with most questions. What do you need help with?"

// Expanded answers served for elliptical follow-ups ("tell me more") once a
// topic has been remembered for the session.
var topicFollowUps = map[string]string{
	TopicPricing:  "Here are more details about our pricing:\n\n• **Free Plan**: 100 chats/month, 1 agent, basic features\n• **Pro Plan**: Unlimited chats, 5 agents, API access, priority support\n• **Business Plan**: Everything in Pro + custom branding, advanced analytics, SLA\n\nWould you like to start a free trial?",
	TopicFeatures: "Additional features include:\n\n• **Automation**: Set up auto-responses and chat flows\n• **Team Collaboration**: Internal notes and agent handoff\n• **Custom Fields**: Collect specific customer information\n• **Export Options**: Download chat transcripts and analytics\n• **White Label**: Remove our branding on Business plan\n\nAnything specific you'd like to explore?",
}

var (
	topicPricingPattern  = regexp.MustCompile(`(?i)(pric|cost|plan|subscription)`)
	topicFeaturesPattern = regexp.MustCompile(`(?i)(feature|function|capabilit)`)
)
