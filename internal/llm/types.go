package llm

import (
	"encoding/json"
	"strings"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a message with the user role.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// Payload is the request body for the chat completions endpoint.
// MaxTokens is omitted when zero. Stream is a pointer so an explicit false
// reaches the wire while an unset value is left out.
type Payload struct {
	Messages  []Message `json:"messages"`
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    *bool     `json:"stream,omitempty"`
}

// Choice represents a single choice in the chat response.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Response is the outcome of one query. It holds either the parsed choices
// or a failure message, never both. Raw keeps the body as received, if any.
type Response struct {
	Choices []Choice
	Error   string
	Raw     json.RawMessage
}

// Failure builds a failed response.
func Failure(msg string, raw []byte) Response {
	if msg == "" {
		msg = "unknown error"
	}
	return Response{Error: msg, Raw: raw}
}

// OK reports whether the response carries at least one choice.
func (r Response) OK() bool {
	return r.Error == "" && len(r.Choices) > 0
}

// Message returns the first choice's message.
func (r Response) Message() Message {
	if len(r.Choices) == 0 {
		return Message{}
	}
	return r.Choices[0].Message
}

// Answer returns the first choice's content with surrounding whitespace removed.
func (r Response) Answer() string {
	return strings.TrimSpace(r.Message().Content)
}

// Bool returns a pointer to v, for optional payload fields.
func Bool(v bool) *bool {
	return &v
}
