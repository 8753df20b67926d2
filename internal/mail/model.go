package mail

import "time"

// MailboxResponse is one recipient or sender entry
type MailboxResponse struct {
	Name         string `json:"name,omitempty"`
	EmailAddress string `json:"email_address"`
}

// AttachmentResponse describes one attachment without its content
type AttachmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageSummary is the list-view projection of a message
type MessageSummary struct {
	ID               string    `json:"id"`
	ChangeKey        string    `json:"change_key"`
	Subject          string    `json:"subject"`
	IsRead           bool      `json:"is_read"`
	HasAttachments   bool      `json:"has_attachments"`
	DateTimeReceived time.Time `json:"date_time_received,omitempty"`
}

// ListMessagesResponse wraps a folder listing
type ListMessagesResponse struct {
	Messages []MessageSummary `json:"messages"`
	Folder   string           `json:"folder"`
	Count    int              `json:"count"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// MessageDetailResponse is the full projection of a message
type MessageDetailResponse struct {
	MessageSummary
	Body         string               `json:"body"`
	BodyType     string               `json:"body_type"`
	From         *MailboxResponse     `json:"from,omitempty"`
	ToRecipients []MailboxResponse    `json:"to_recipients"`
	CcRecipients []MailboxResponse    `json:"cc_recipients"`
	Attachments  []AttachmentResponse `json:"attachments"`
}

// CreateMessageRequest creates a draft in a folder
type CreateMessageRequest struct {
	FolderID     string   `json:"folder_id"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	BodyType     string   `json:"body_type"` // "Text" (default) or "HTML"
	ToRecipients []string `json:"to_recipients"`
	CcRecipients []string `json:"cc_recipients"`
}

// FolderRequest targets a destination folder for move and copy
type FolderRequest struct {
	FolderID string `json:"folder_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
