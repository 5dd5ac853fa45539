package model

import "github.com/google/uuid"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message in the conversation.
// Attachments are optional and consumed once per provider call;
// providers never retain them.
type Message struct {
	Role        Role
	Content     string
	Attachments []Attachment
}

// Attachment is a file (typically an image) associated with a chat message,
// sent inline to the vendor API. Data holds the base64-encoded payload;
// an attachment whose Data is empty has not been loaded yet.
type Attachment struct {
	ID       string
	MimeType string
	Data     string
}

// NewAttachment creates an attachment with a generated id.
func NewAttachment(mimeType, data string) Attachment {
	return Attachment{
		ID:       uuid.NewString(),
		MimeType: mimeType,
		Data:     data,
	}
}

// AttachmentFailure records why a single attachment could not be sent.
type AttachmentFailure struct {
	ID    string
	Error string
}

// AttachmentResult reports the outcome of attachment classification for one
// call. Every attachment id from the input appears in exactly one of Sent
// or Failed.
type AttachmentResult struct {
	Sent   []string
	Failed []AttachmentFailure
}

// Empty reports whether no attachments were classified at all.
func (r AttachmentResult) Empty() bool {
	return len(r.Sent) == 0 && len(r.Failed) == 0
}
