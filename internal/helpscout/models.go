package helpscout

import (
	"encoding/json"
	"strings"
	"time"
)

// Author is the normalized author classification for a thread. Help
// Scout calls team members "user", so the raw marker is collapsed into
// this enum once at the API boundary and never re-inspected downstream.
type Author string

const (
	AuthorCustomer Author = "customer"
	AuthorTeam     Author = "team"
	AuthorSystem   Author = "system"
	AuthorUnknown  Author = "unknown"
)

// Tag is one label applied to a conversation.
type Tag struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Conversation bundles the pieces of a conversation the evaluation
// pipeline reads: its threads and its tags.
type Conversation struct {
	ID      json.Number
	Subject string
	Tags    []Tag
	Threads []Thread
}

// Thread is one message or note inside a conversation.
type Thread struct {
	ID        json.Number `json:"id"`
	Type      string      `json:"type"`
	Body      string      `json:"body"`
	CreatedBy AuthorRef   `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Author returns the normalized author of the thread.
func (t Thread) Author() Author {
	if t.CreatedBy.Author == "" {
		return AuthorUnknown
	}
	return t.CreatedBy.Author
}

// IsMessage reports whether the thread is a customer-visible message.
// Older conversations use "message", newer ones "reply"; notes and
// lineitems never qualify.
func (t Thread) IsMessage() bool {
	return t.Type == "message" || t.Type == "reply"
}

// IsConversational reports whether the thread carries dialogue text.
// Customer messages come through with their own "customer" type.
func (t Thread) IsConversational() bool {
	return t.IsMessage() || t.Type == "customer"
}

// AuthorRef absorbs the two shapes createdBy arrives in: a bare string
// ("user", "customer") or an object with a type field.
type AuthorRef struct {
	Author Author
}

func (r *AuthorRef) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err == nil {
		r.Author = classifyAuthor(marker)
		return nil
	}

	var obj struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		r.Author = AuthorUnknown
		return nil
	}
	r.Author = classifyAuthor(obj.Type)
	return nil
}

func classifyAuthor(marker string) Author {
	switch strings.ToLower(marker) {
	case "user", "team":
		return AuthorTeam
	case "customer":
		return AuthorCustomer
	case "system", "api":
		return AuthorSystem
	default:
		return AuthorUnknown
	}
}

// Wire types

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type conversationResponse struct {
	ID       json.Number `json:"id"`
	Subject  string      `json:"subject"`
	Embedded struct {
		Threads []Thread `json:"threads"`
		Tags    []Tag    `json:"tags"`
	} `json:"_embedded"`
}

type userResponse struct {
	ID        json.Number `json:"id"`
	FirstName string      `json:"firstName"`
}
