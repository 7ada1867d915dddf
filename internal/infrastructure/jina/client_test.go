package jina

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amica/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(&config.JinaConfig{
		ReaderURL: server.URL + "/read",
		SearchURL: server.URL + "/search",
	})
	client.retryDelay = time.Millisecond
	return client
}

func TestRead_PlainText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/read/https://example.com/news", r.URL.Path)
		_, _ = io.WriteString(w, "Title: Example\n\nContenuto della pagina")
	})

	text, err := client.Read(context.Background(), "https://example.com/news")
	require.NoError(t, err)
	assert.Contains(t, text, "Contenuto della pagina")
}

func TestRead_HTMLIsConvertedToText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, `<html><head><title>x</title><style>p{}</style></head>
<body><script>alert(1)</script><h1>Notizie</h1><p>Oggi   piove a Milano.</p></body></html>`)
	})

	text, err := client.Read(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Contains(t, text, "Notizie")
	assert.Contains(t, text, "Oggi piove a Milano.")
	assert.NotContains(t, text, "alert")
}

func TestRead_TruncatesLongPages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("à", MaxContentChars+500))
	})

	text, err := client.Read(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, MaxContentChars, len([]rune(text)))
}

func TestRead_NoRetryOnFailure(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Read(context.Background(), "https://example.com")
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "/search/meteo Roma", r.URL.Path)
		_, _ = io.WriteString(w, "Roma: 21°C, sereno")
	})

	text, ok := client.Search(context.Background(), "meteo Roma")
	assert.True(t, ok)
	assert.Equal(t, "Roma: 21°C, sereno", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSearch_GivesUpAfterTwoRetries(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	text, ok := client.Search(context.Background(), "meteo Roma")
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "1 次请求 + 2 次重试")
}

func TestSearch_SendsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jina-key", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	client := NewClient(&config.JinaConfig{APIKey: "jina-key", SearchURL: server.URL})
	_, ok := client.Search(context.Background(), "q")
	assert.True(t, ok)
}
