package helpscout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/v2/conversations/42", r.URL.Path)
		assert.Equal(t, "threads,tags", r.URL.Query().Get("embed"))
		assert.Equal(t, "Bearer static-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      42,
			"subject": "Export limit",
			"_embedded": map[string]interface{}{
				"threads": []map[string]interface{}{
					{
						"id":        101,
						"type":      "message",
						"body":      "<p>Thanks for reaching out!</p>",
						"createdBy": map[string]string{"type": "user"},
						"createdAt": "2026-08-01T10:00:00Z",
					},
					{
						"id":        100,
						"type":      "customer",
						"body":      "It does not work",
						"createdBy": "customer",
						"createdAt": "2026-08-01T09:00:00Z",
					},
				},
				"tags": []map[string]interface{}{
					{"id": 5, "name": "Shopify"},
					{"id": 6, "name": "billing"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", "static-token", logrus.New())

	conv, err := client.GetConversation(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, conv.Threads, 2)

	assert.Equal(t, "42", conv.ID.String())
	assert.Equal(t, "Export limit", conv.Subject)
	assert.Equal(t, AuthorTeam, conv.Threads[0].Author())
	assert.Equal(t, "101", conv.Threads[0].ID.String())
	assert.Equal(t, AuthorCustomer, conv.Threads[1].Author())

	require.Len(t, conv.Tags, 2)
	assert.Equal(t, "Shopify", conv.Tags[0].Name)
	assert.Equal(t, "billing", conv.Tags[1].Name)
}

func TestClient_GetConversation_NoTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":        7,
			"_embedded": map[string]interface{}{"threads": []interface{}{}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", "token", logrus.New())

	conv, err := client.GetConversation(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, conv.Tags)
	assert.Empty(t, conv.Threads)
}

func TestClient_GetConversation_OAuthExchange(t *testing.T) {
	tokenCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/oauth2/token":
			tokenCalls++
			var req tokenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "client_credentials", req.GrantType)
			assert.Equal(t, "app-id", req.ClientID)
			assert.Equal(t, "app-secret", req.ClientSecret)

			json.NewEncoder(w).Encode(tokenResponse{
				AccessToken: "fresh-token",
				TokenType:   "bearer",
				ExpiresIn:   7200,
			})
		case "/v2/conversations/7":
			assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"_embedded": map[string]interface{}{"threads": []interface{}{}},
			})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "app-id", "app-secret", "", logrus.New())

	_, err := client.GetConversation(context.Background(), "7")
	require.NoError(t, err)

	// Token is cached for the second call
	_, err = client.GetConversation(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestClient_GetConversation_TokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-id", "bad-secret", "", logrus.New())

	_, err := client.GetConversation(context.Background(), "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth failed")
}

func TestClient_GetConversation_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", "token", logrus.New())

	_, err := client.GetConversation(context.Background(), "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_GetConversation_EmptyID(t *testing.T) {
	client := NewClient("http://unused", "", "", "token", logrus.New())

	_, err := client.GetConversation(context.Background(), "")
	assert.Error(t, err)
}

func TestAuthorRef_BothShapes(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected Author
	}{
		{"object user", `{"createdBy": {"type": "user"}}`, AuthorTeam},
		{"string user", `{"createdBy": "user"}`, AuthorTeam},
		{"object customer", `{"createdBy": {"type": "customer"}}`, AuthorCustomer},
		{"string customer", `{"createdBy": "customer"}`, AuthorCustomer},
		{"string system", `{"createdBy": "system"}`, AuthorSystem},
		{"unrecognized", `{"createdBy": "robot"}`, AuthorUnknown},
		{"missing", `{}`, AuthorUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var thread Thread
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &thread))
			assert.Equal(t, tc.expected, thread.Author())
		})
	}
}
