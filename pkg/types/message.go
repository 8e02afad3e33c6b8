// Package types holds the shared data model: execution plans, action steps,
// and the message types exchanged with LLM providers.
package types

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ImageAttachment is an inline image carried alongside message text, used for
// vision grounding requests.
type ImageAttachment struct {
	// MediaType is the MIME type, e.g. "image/png".
	MediaType string

	// Data is the raw image bytes. Providers handle base64 encoding.
	Data []byte
}

// Message is a single conversation turn sent to or received from a provider.
type Message struct {
	Role    Role
	Content string
	Images  []ImageAttachment
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewVisionMessage creates a user message carrying one or more PNG
// screenshots for the model to look at.
func NewVisionMessage(content string, images ...[]byte) *Message {
	msg := &Message{Role: RoleUser, Content: content}
	for _, img := range images {
		msg.Images = append(msg.Images, ImageAttachment{MediaType: "image/png", Data: img})
	}
	return msg
}
