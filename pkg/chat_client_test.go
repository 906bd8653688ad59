package pkg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var received ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []ChatChoice{
				{Message: ResponseMessage{Role: "assistant", Content: "hello there"}},
			},
		})
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "test-model", 1000)
	reply, err := client.Complete(context.Background(), []RequestMessage{
		{Role: "user", Content: "hi"},
	}, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)

	assert.Equal(t, "test-model", received.Model)
	assert.Equal(t, uint32(1000), received.MaxTokens)
	require.NotNil(t, received.Temperature)
	assert.InDelta(t, 0.7, *received.Temperature, 1e-6)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, "hi", received.Messages[0].Content)
}

func TestCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "test-model", 1000)
	_, err := client.Complete(context.Background(), nil, 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "test-model", 1000)
	_, err := client.Complete(context.Background(), nil, 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestCompleteContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewChatClient(server.URL, "test-key", "test-model", 1000)
	_, err := client.Complete(ctx, nil, 0.7)
	require.Error(t, err)
}
