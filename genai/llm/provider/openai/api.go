package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/viant/mbrewrite/genai/llm"
	elog "github.com/viant/mbrewrite/internal/log"
)

// maxResponseSize caps the response body read from the API.
const maxResponseSize = 8 << 20

// Generate sends a chat request to the OpenAI API and returns the response.
// Failures are reported as *llm.AuthError, *llm.TransportError or
// *llm.UpstreamError.
func (c *Client) Generate(ctx context.Context, request *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	apiKey, err := c.apiKey(ctx)
	if err != nil {
		return nil, &llm.AuthError{Message: fmt.Sprintf("failed to resolve API key: %v", err)}
	}
	if apiKey == "" {
		return nil, &llm.AuthError{}
	}
	req, err := c.prepareChatRequest(request)
	if err != nil {
		return nil, err
	}
	payload, err := c.marshalRequestBody(req)
	if err != nil {
		return nil, err
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	httpReq, err := c.createHTTPChatRequest(ctx, apiKey, payload)
	if err != nil {
		return nil, err
	}
	elog.Publish(elog.LLMInput, json.RawMessage(payload))

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &llm.TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, &llm.TransportError{Op: "read response body", Err: err}
	}
	if len(respBytes) > maxResponseSize {
		return nil, &llm.UpstreamError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("response body exceeds %d bytes", maxResponseSize)}
	}
	elog.Publish(elog.LLMOutput, map[string]interface{}{"model": req.Model, "status": resp.StatusCode, "body": string(respBytes)})

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &llm.AuthError{StatusCode: resp.StatusCode, Message: errorMessage(respBytes)}
	case resp.StatusCode != http.StatusOK:
		c.logf("openai: %s returned status %d", req.Model, resp.StatusCode)
		return nil, &llm.UpstreamError{StatusCode: resp.StatusCode, Message: errorMessage(respBytes)}
	}
	return c.parseGenerateResponse(req.Model, respBytes)
}

// prepareChatRequest converts a generic request and applies client defaults.
func (c *Client) prepareChatRequest(request *llm.GenerateRequest) (*Request, error) {
	req := ToRequest(request)
	if req.Model == "" {
		req.Model = c.Model
	}
	if req.MaxTokens == 0 && c.MaxTokens > 0 {
		req.MaxTokens = c.MaxTokens
	}
	if req.Temperature == nil && c.Temperature != nil {
		temperature := *c.Temperature
		req.Temperature = &temperature
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	return req, nil
}

func (c *Client) marshalRequestBody(req *Request) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return data, nil
}

func (c *Client) createHTTPChatRequest(ctx context.Context, apiKey string, data []byte) (*http.Request, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (c *Client) parseGenerateResponse(model string, respBytes []byte) (*llm.GenerateResponse, error) {
	var apiResp Response
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, &llm.UpstreamError{Message: "invalid response from OpenAI API", Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	llmResp := ToLLMSResponse(&apiResp)
	if _, ok := llmResp.FirstContent(); !ok {
		return nil, &llm.UpstreamError{Message: "invalid response from OpenAI API", Err: errors.New("missing choices[0].message.content")}
	}
	if llmResp.Model == "" {
		llmResp.Model = model
	}
	if c.UsageListener != nil && llmResp.Usage != nil && llmResp.Usage.TotalTokens > 0 {
		c.UsageListener.OnUsage(llmResp.Model, llmResp.Usage)
	}
	return llmResp, nil
}

// errorMessage extracts error.message from an OpenAI error body, falling back to the raw body.
func errorMessage(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return strings.TrimSpace(string(body))
}
