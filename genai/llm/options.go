package llm

type Options struct {
	// Model is the model to use.
	Model string `json:"model" yaml:"model"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the temperature for sampling, between 0 and 2.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// TopP is the cumulative probability for top-p sampling.
	TopP float64 `json:"top_p" yaml:"top_p"`

	// N is how many chat completion choices to generate for each input message.
	N int `json:"n" yaml:"n"`
}
