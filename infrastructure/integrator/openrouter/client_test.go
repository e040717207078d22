package openrouter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therrabiz/therrabiz-api/internal/config"
)

func testClientConfig(url string) *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouter{
			URL:            url,
			APIKey:         "test-key",
			Model:          "test-model",
			SiteURL:        "http://localhost:3000",
			SiteName:       "Test Dashboard",
			TimeoutSeconds: 5,
		},
	}
}

func TestChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:3000", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Test Dashboard", r.Header.Get("X-Title"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req completionRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 0.7, req.Temperature)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, RoleUser, req.Messages[0].Role)

		w.Write([]byte(`{"choices":[{"message":{"content":"halo!"}}]}`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL))

	response, err := client.ChatCompletion(context.Background(),
		[]Message{{Role: RoleUser, Content: "halo"}}, 0.7)

	require.NoError(t, err)
	assert.Equal(t, "halo!", response)
}

func TestChatCompletion_MissingAPIKey(t *testing.T) {
	cfg := testClientConfig("http://unused")
	cfg.OpenRouter.APIKey = ""

	client := NewClient(cfg)

	_, err := client.ChatCompletion(context.Background(), nil, 0)
	assert.Error(t, err)
}

func TestChatCompletion_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL))

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: RoleUser, Content: "halo"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestChatCompletion_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL))

	response, err := client.ChatCompletion(context.Background(), []Message{{Role: RoleUser, Content: "halo"}}, 0)
	require.NoError(t, err)
	assert.Empty(t, response)
}
