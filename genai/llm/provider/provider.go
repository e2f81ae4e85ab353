package provider

const (
	// ProviderOpenAI identifies OpenAI API
	ProviderOpenAI = "openai"

	// ProviderOpenAICompatible identifies any endpoint speaking the OpenAI chat completions protocol
	ProviderOpenAICompatible = "openai-compatible"
)
