package constants

import "time"

const (
	ChatProviderOpenAI = "openai"
	ChatProviderGemini = "gemini"

	DefaultChatProvider    = ChatProviderOpenAI
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultGeminiModel     = "gemini-2.0-flash"
	DefaultChatTemperature = 0.7
	DefaultChatMaxTokens   = 500
	DefaultChatTimeout     = 30 * time.Second
	DefaultListenAddr      = "127.0.0.1:8787"
	ChatLockfileName       = "learnnova-chat.lock"

	// ChatSystemPrompt frames the assistant as a Marathi speaking study coach
	ChatSystemPrompt = "तू Learnnova नावाचा मराठी बोलणारा अभ्यास सहाय्यक आहेस. विद्यार्थ्यांना अभ्यास, झोप आणि सवयींबद्दल समजून घेऊन व्यावहारिक टिप्स दे."

	// Fallback replies, returned with a success status
	ChatFallbackUnavailable = "माफ करा, AI सेवा सध्या उपलब्ध नाही. कृपया प्रशासकाशी संपर्क साधा."
	ChatFallbackEmpty       = "सध्या उत्तर उपलब्ध नाही. कृपया पुन्हा प्रयत्न करा."
	ChatFallbackFailed      = "AI प्रतिसादात अडथळा निर्माण झाला आहे. कृपया पुन्हा प्रयत्न करा."
)
