package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Only the Read and Replied flags are mutable after creation.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Replied   bool      `json:"replied"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageUpdate carries a partial update of a contact message.
// A nil field means "leave unchanged".
type MessageUpdate struct {
	Read    *bool `json:"read"`
	Replied *bool `json:"replied"`
}
