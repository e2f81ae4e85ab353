package llm

import "context"

// Model generates a single chat completion.
type Model interface {
	Generate(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error)
}
