package models

import (
	"encoding/json"
	"strings"
)

// WebhookPayload is the body Help Scout posts to a dynamic app endpoint.
type WebhookPayload struct {
	Ticket   Ticket   `json:"ticket"`
	Customer Customer `json:"customer"`
	User     User     `json:"user"`
	Mailbox  Mailbox  `json:"mailbox"`
}

// Ticket identifies the conversation being viewed in the sidebar.
// Help Scout sends ids as numbers in some payloads and strings in
// others, so both fields decode through json.Number.
type Ticket struct {
	ID      json.Number `json:"id"`
	Number  json.Number `json:"number"`
	Subject string      `json:"subject"`
	Type    string      `json:"type"`
	Source  Source      `json:"source"`
}

type Source struct {
	Type string `json:"type"`
	Via  string `json:"via"`
}

type Customer struct {
	ID    json.Number `json:"id"`
	FName string      `json:"fname"`
	LName string      `json:"lname"`
	Email string      `json:"email"`
}

type User struct {
	ID    json.Number `json:"id"`
	FName string      `json:"fname"`
	LName string      `json:"lname"`
	Email string      `json:"email"`
}

type Mailbox struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// IsChat reports whether the ticket came through a live-chat channel.
// Chat transcripts are a different beast and are never evaluated.
func (t Ticket) IsChat() bool {
	return strings.EqualFold(t.Type, "chat") || strings.EqualFold(t.Source.Type, "chat")
}
