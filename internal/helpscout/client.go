package helpscout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the Help Scout Mailbox API. A static access token
// takes precedence when configured; otherwise a client-credentials
// token is fetched on demand and reused until shortly before expiry.
type Client struct {
	baseURL     string
	appID       string
	appSecret   string
	staticToken string
	httpClient  *http.Client
	logger      *logrus.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(baseURL, appID, appSecret, staticToken string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		appID:       appID,
		appSecret:   appSecret,
		staticToken: staticToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GetConversation returns a conversation with its threads and tags
// embedded in one call. Any auth, transport or API failure comes back
// as an error the caller degrades to a "conversation unavailable"
// state.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation id is empty")
	}

	var response conversationResponse
	endpoint := fmt.Sprintf("/v2/conversations/%s?embed=threads,tags", conversationID)
	if err := c.makeRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"thread_count":    len(response.Embedded.Threads),
		"tag_count":       len(response.Embedded.Tags),
	}).Debug("Fetched conversation")

	return &Conversation{
		ID:      response.ID,
		Subject: response.Subject,
		Tags:    response.Embedded.Tags,
		Threads: response.Embedded.Threads,
	}, nil
}

// Ping verifies API reachability and token validity.
func (c *Client) Ping(ctx context.Context) error {
	var me userResponse
	return c.makeRequest(ctx, "GET", "/v2/users/me", nil, &me)
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.staticToken != "" {
		return c.staticToken, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	c.logger.Debug("Requesting Help Scout OAuth token")

	payload := tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     c.appID,
		ClientSecret: c.appSecret,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v2/oauth2/token", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response carried no access token")
	}

	c.accessToken = token.AccessToken
	// Refresh a minute early so an in-flight request never races expiry
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)

	c.logger.WithField("expires_in", token.ExpiresIn).Debug("Help Scout OAuth token acquired")

	return c.accessToken, nil
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	accessToken, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("auth failed: %w", err)
	}

	url := c.baseURL + endpoint

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
	}).Debug("Making Help Scout API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"method":        method,
		"url":           url,
		"response_size": len(responseBody),
	}).Debug("Help Scout API response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	if result != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
