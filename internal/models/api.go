package models

// WebhookResponse is the only shape Help Scout accepts back from a
// dynamic app: a JSON object with the sidebar HTML. Always sent with
// HTTP 200, the iframe cannot react to anything else.
type WebhookResponse struct {
	HTML string `json:"html"`
}
