package openai

import (
	"github.com/viant/mbrewrite/genai/llm"
)

// ToRequest converts an llm.GenerateRequest to a Request
func ToRequest(request *llm.GenerateRequest) *Request {
	req := &Request{}
	if request == nil {
		return req
	}
	if opts := request.Options; opts != nil {
		req.Model = opts.Model
		if opts.MaxTokens > 0 {
			req.MaxTokens = opts.MaxTokens
		}
		if opts.TopP > 0 {
			req.TopP = opts.TopP
		}
		// Set temperature only when explicitly specified (>0)
		if opts.Temperature > 0 {
			temperature := opts.Temperature
			req.Temperature = &temperature
		}
		if opts.N > 0 {
			req.N = opts.N
		}
	}
	req.Messages = make([]Message, 0, len(request.Messages))
	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, Message{
			Role:    msg.Role.String(),
			Content: msg.Content,
			Name:    msg.Name,
		})
	}
	return req
}

// ToLLMSResponse converts a Response to an llm.GenerateResponse
func ToLLMSResponse(resp *Response) *llm.GenerateResponse {
	result := &llm.GenerateResponse{
		Choices:    make([]llm.Choice, 0, len(resp.Choices)),
		Model:      resp.Model,
		ResponseID: resp.ID,
	}
	for _, choice := range resp.Choices {
		result.Choices = append(result.Choices, llm.Choice{
			Index: choice.Index,
			Message: llm.Message{
				Role:    llm.MessageRole(choice.Message.Role),
				Content: choice.Message.Content,
				Name:    choice.Message.Name,
			},
			FinishReason: choice.FinishReason,
		})
	}
	if resp.Usage.TotalTokens > 0 || resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		result.Usage = &llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return result
}
