package render

import (
	"html/template"
	"strings"
)

// Fixed degraded-state fragments. Everything interpolated goes through
// html/template escaping; ticket numbers come from the webhook payload
// and are not trusted either.

// ChatNotSupportedMessage is the fixed live-chat short-circuit text.
const ChatNotSupportedMessage = "Response evaluation is not available for chat conversations."

var fragmentTemplate = template.Must(template.New("fragment").Parse(`<div style="padding: 20px; font-family: Arial, sans-serif;">
  <h3 style="font-size: 14px; color: #2c5aa0; margin: 0 0 12px 0;">Response Evaluator</h3>
  <p style="font-size: 12px; margin: 4px 0;">{{.Message}}</p>
{{if .Ticket}}  <p style="font-size: 11px; color: #999; margin: 4px 0;">Ticket: #{{.Ticket}}</p>
{{end}}</div>`))

type fragmentView struct {
	Message string
	Ticket  string
}

func fragment(message, ticket string) string {
	var sb strings.Builder
	if err := fragmentTemplate.Execute(&sb, fragmentView{Message: message, Ticket: ticket}); err != nil {
		return `<div style="padding: 20px;"><p>Response Evaluator</p></div>`
	}
	return sb.String()
}

// ChatNotSupported is returned for live-chat tickets without touching
// any upstream API.
func ChatNotSupported() string {
	return fragment(ChatNotSupportedMessage, "")
}

// NoTicket handles a malformed webhook payload.
func NoTicket() string {
	return fragment("No ticket data received.", "")
}

// FetchFailed covers auth and transport failures against Help Scout.
func FetchFailed(ticketNumber string) string {
	return fragment("Could not fetch conversation data.", ticketNumber)
}

// NoReply means the conversation holds no team-authored message yet.
func NoReply(ticketNumber string) string {
	return fragment("No team response found to evaluate.", ticketNumber)
}

// Processing is shown while an evaluation is still running, either
// because it outlived the webhook timeout or because another request
// already started it.
func Processing(ticketNumber string) string {
	return fragment("Evaluation in progress - reload the sidebar in a few seconds.", ticketNumber)
}

// RateLimited keeps the 200/{html} contract even when shedding load.
func RateLimited() string {
	return fragment("Too many requests - wait a moment and reload the sidebar.", "")
}

// Widget is the static GET /widget test page body.
func Widget(timestamp string) string {
	return fragment("Evaluator is running. Help Scout calls POST / with ticket data. Time: "+timestamp, "")
}
