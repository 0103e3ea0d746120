package model

import "time"

// Message is a dispatch message between console users.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageDraft is the payload for sending a message.
type MessageDraft struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
}
