package llm

// MessageRole represents the role of the message sender.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (m MessageRole) String() string {
	return string(m)
}

// Message is a single chat turn.
type Message struct {
	// Role of the sender (user, assistant, system)
	Role MessageRole `json:"role"`

	// Name is the optional sender name.
	Name string `json:"name,omitempty"`

	Content string `json:"content,omitempty"`
}

// GenerateRequest represents a request to a chat-based LLM.
type GenerateRequest struct {
	// Messages is the list of messages in the conversation.
	Messages []Message `json:"messages"`

	// Options contains additional options for the request.
	Options *Options `json:"options,omitempty"`
}

// GenerateResponse represents a response from a chat-based LLM.
type GenerateResponse struct {
	// Choices contains the generated responses.
	Choices []Choice `json:"choices"`

	// Usage contains token usage information.
	Usage *Usage `json:"usage,omitempty"`
	Model string `json:"model,omitempty"`

	// ResponseID is a provider response identifier when available.
	ResponseID string `json:"response_id,omitempty"`
}

// FirstContent returns the content of the first choice and whether it was present.
func (r *GenerateResponse) FirstContent() (string, bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	content := r.Choices[0].Message.Content
	if content == "" {
		return "", false
	}
	return content, true
}

// Choice represents a single response choice from a chat-based LLM.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`

	// Message is the generated message.
	Message Message `json:"message"`

	// FinishReason is the reason why the generation stopped.
	FinishReason string `json:"finish_reason,omitempty"`
}

// Usage contains token usage information.
type Usage struct {
	// PromptTokens is the number of tokens used in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens used in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

type Messages []Message

func (m *Messages) Append(msg Message) {
	*m = append(*m, msg)
}

// NewUserMessage creates a new message with the "user" role.
func NewUserMessage(content string) Message {
	return NewTextMessage(RoleUser, content)
}

// NewSystemMessage creates a new message with the "system" role.
func NewSystemMessage(content string) Message {
	return NewTextMessage(RoleSystem, content)
}

// NewAssistantMessage creates a new message with the "assistant" role.
func NewAssistantMessage(content string) Message {
	return NewTextMessage(RoleAssistant, content)
}

// NewTextMessage creates a text-only message for the given role.
func NewTextMessage(role MessageRole, content string) Message {
	return Message{Role: role, Content: content}
}
