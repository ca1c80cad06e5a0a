package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, status int, content string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
}

func TestOpenAIClient_Complete(t *testing.T) {
	var calls atomic.Int32
	srv := completionServer(t, http.StatusOK, "  The food was good  ", &calls)
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", "test-model", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), "fix spelling", "The foood was goood")
	require.NoError(t, err)
	assert.Equal(t, "The food was good", got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIClient_CompleteRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	srv := completionServer(t, http.StatusBadRequest, "", &calls)
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", "test-model", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "fix spelling", "text")
	assert.Error(t, err)
	assert.Equal(t, int32(MAX_RETRIES), calls.Load())
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "test-model")
	assert.Error(t, err)
}
