package amicaapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&config.ClientConfig{APIURL: server.URL + "/"})
}

func TestClient_Chat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domainChat.TurnRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "riassunto", req.ConversationSummary)
		assert.Len(t, req.Messages, 1)

		_, _ = w.Write([]byte(`{"message":"Ciao!","webAccess":true,"cycleCount":1,"conversationSummary":"riassunto"}`))
	})

	result, err := client.Chat(context.Background(), &domainChat.TurnRequest{
		Messages:            []domainChat.Message{{Role: domainChat.RoleUser, Content: "ciao"}},
		ConversationSummary: "riassunto",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ciao!", result.Message)
	assert.True(t, result.WebAccess)
	assert.Equal(t, 1, result.CycleCount)
}

func TestClient_ChatError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"OpenAI API error","details":{"error":{"message":"rate limited"}}}`))
	})

	_, err := client.Chat(context.Background(), &domainChat.TurnRequest{})
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusTooManyRequests, respErr.StatusCode)
	assert.Equal(t, "OpenAI API error", respErr.Message)
	assert.JSONEq(t, `{"error":{"message":"rate limited"}}`, string(respErr.Details))
}

func TestClient_ChatNonJSONError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Chat(context.Background(), &domainChat.TurnRequest{})
	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusBadGateway, respErr.StatusCode)
	assert.Empty(t, respErr.Message)
}

func TestClient_Speak(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tts", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buongiorno", body["text"])

		// "mp3-bytes" 的 base64
		_, _ = w.Write([]byte(`{"audio":"bXAzLWJ5dGVz","format":"mp3"}`))
	})

	audio, format, err := client.Speak(context.Background(), "buongiorno")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "mp3", format)
}

func TestClient_SpeakInvalidAudio(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"audio":"%%%","format":"mp3"}`))
	})

	_, _, err := client.Speak(context.Background(), "x")
	assert.Error(t, err)
}
