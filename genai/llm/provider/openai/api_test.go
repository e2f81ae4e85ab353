package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mbrewrite/genai/llm"
)

// roundTripFunc allows using a function as an HTTP RoundTripper.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(apiKey string, transport roundTripFunc, options ...ClientOption) *Client {
	options = append(options,
		WithBaseURL("http://localhost/v1"),
		WithHTTPClient(&http.Client{Transport: transport}),
		WithLoggingEnabled(false),
	)
	return NewClient(apiKey, "test-model", options...)
}

func respond(status int, body string) roundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	}
}

func TestGenerate_UsageListener(t *testing.T) {
	testCases := []struct {
		name          string
		respBody      string
		expectedModel string
		expectedUsage llm.Usage
	}{
		{
			name:          "basic usage",
			respBody:      `{"id":"id","object":"chat.completion","created":0,"model":"test-model","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":""}],"usage":{"prompt_tokens":5,"completion_tokens":6,"total_tokens":11}}`,
			expectedModel: "test-model",
			expectedUsage: llm.Usage{PromptTokens: 5, CompletionTokens: 6, TotalTokens: 11},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			client := newTestClient("apiKey", respond(http.StatusOK, tc.respBody),
				WithUsageListener(func(model string, usage *llm.Usage) {
					called = true
					assert.EqualValues(t, tc.expectedModel, model)
					assert.EqualValues(t, &tc.expectedUsage, usage)
				}),
			)
			resp, err := client.Generate(context.Background(), &llm.GenerateRequest{Messages: []llm.Message{llm.NewUserMessage("hello")}})
			assert.NoError(t, err)
			assert.True(t, called, "usage listener should be called")
			assert.NotNil(t, resp.Usage)
			assert.EqualValues(t, tc.expectedUsage, *resp.Usage)
		})
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	var captured Request
	var auth, url string
	transport := func(req *http.Request) (*http.Response, error) {
		auth = req.Header.Get("Authorization")
		url = req.URL.String()
		data, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(data, &captured)
		return respond(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)(req)
	}
	client := newTestClient("secret", transport, WithTemperature(0.7), WithMaxTokens(500), WithModel("gpt-4"))
	_, err := client.Generate(context.Background(), &llm.GenerateRequest{Messages: []llm.Message{
		llm.NewSystemMessage("system"),
		llm.NewUserMessage("user"),
	}})
	require.NoError(t, err)
	assert.EqualValues(t, "Bearer secret", auth)
	assert.EqualValues(t, "http://localhost/v1/chat/completions", url)
	assert.EqualValues(t, "gpt-4", captured.Model)
	assert.EqualValues(t, 500, captured.MaxTokens)
	require.NotNil(t, captured.Temperature)
	assert.EqualValues(t, 0.7, *captured.Temperature)
	assert.EqualValues(t, []Message{{Role: "system", Content: "system"}, {Role: "user", Content: "user"}}, captured.Messages)
}

func TestGenerate_Errors(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	testCases := []struct {
		name      string
		apiKey    string
		transport roundTripFunc
		check     func(t *testing.T, err error)
	}{
		{
			name:      "missing credential",
			apiKey:    "",
			transport: respond(http.StatusOK, `{}`),
			check: func(t *testing.T, err error) {
				var authErr *llm.AuthError
				assert.True(t, errors.As(err, &authErr))
			},
		},
		{
			name:      "rejected credential",
			apiKey:    "bad",
			transport: respond(http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`),
			check: func(t *testing.T, err error) {
				var authErr *llm.AuthError
				require.True(t, errors.As(err, &authErr))
				assert.EqualValues(t, http.StatusUnauthorized, authErr.StatusCode)
				assert.Contains(t, err.Error(), "Incorrect API key provided")
			},
		},
		{
			name:   "network failure",
			apiKey: "key",
			transport: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			check: func(t *testing.T, err error) {
				var transportErr *llm.TransportError
				assert.True(t, errors.As(err, &transportErr))
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
		{
			name:      "error status",
			apiKey:    "key",
			transport: respond(http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`),
			check: func(t *testing.T, err error) {
				var upstreamErr *llm.UpstreamError
				require.True(t, errors.As(err, &upstreamErr))
				assert.EqualValues(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
				assert.EqualValues(t, "rate limited", upstreamErr.Message)
			},
		},
		{
			name:      "unparsable body",
			apiKey:    "key",
			transport: respond(http.StatusOK, `not json`),
			check: func(t *testing.T, err error) {
				var upstreamErr *llm.UpstreamError
				assert.True(t, errors.As(err, &upstreamErr))
			},
		},
		{
			name:      "oversized body",
			apiKey:    "key",
			transport: respond(http.StatusOK, `{"choices":[{"message":{"content":"`+strings.Repeat("x", maxResponseSize)+`"}}]}`),
			check: func(t *testing.T, err error) {
				var upstreamErr *llm.UpstreamError
				require.True(t, errors.As(err, &upstreamErr))
				assert.Contains(t, err.Error(), "response body exceeds")
			},
		},
		{
			name:      "missing first choice content",
			apiKey:    "key",
			transport: respond(http.StatusOK, `{"choices":[]}`),
			check: func(t *testing.T, err error) {
				var upstreamErr *llm.UpstreamError
				require.True(t, errors.As(err, &upstreamErr))
				assert.EqualValues(t, "invalid response from OpenAI API", err.Error())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(tc.apiKey, tc.transport)
			resp, err := client.Generate(context.Background(), &llm.GenerateRequest{Messages: []llm.Message{llm.NewUserMessage("hello")}})
			assert.Nil(t, resp)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	transport := func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}
	client := newTestClient("key", transport)
	client.Timeout = 20 * time.Millisecond
	_, err := client.Generate(context.Background(), &llm.GenerateRequest{Messages: []llm.Message{llm.NewUserMessage("hello")}})
	var transportErr *llm.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGenerate_APIKeyProvider(t *testing.T) {
	var auth string
	transport := func(req *http.Request) (*http.Response, error) {
		auth = req.Header.Get("Authorization")
		return respond(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)(req)
	}
	client := newTestClient("", transport, WithAPIKeyProvider(func(ctx context.Context) (string, error) {
		return " stored-key ", nil
	}))
	_, err := client.Generate(context.Background(), &llm.GenerateRequest{Messages: []llm.Message{llm.NewUserMessage("hello")}})
	require.NoError(t, err)
	assert.EqualValues(t, "Bearer stored-key", auth)
}
