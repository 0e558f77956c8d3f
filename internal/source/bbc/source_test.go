package bbc

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>BBC News</title>
    <link>https://www.bbc.co.uk/news</link>
    <description>BBC News - UK</description>
    <item>
      <title>Headline one</title>
      <link>https://www.bbc.co.uk/news/1</link>
      <description>First summary.</description>
      <pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Headline two</title>
      <link>https://www.bbc.co.uk/news/2</link>
      <description>Second summary.</description>
      <pubDate>Wed, 01 May 2024 11:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	src := New(Config{FeedURL: srv.URL, Timeout: 2 * time.Second}, testLogger())

	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://www.bbc.co.uk/news/1", items[0]["link"])
	assert.Equal(t, "Headline one", items[0]["title"])
	assert.Equal(t, "First summary.", items[0]["contentSnippet"])
	assert.Equal(t, "2024-05-01T10:00:00Z", items[0]["isoDate"])
	assert.Equal(t, "Headline two", items[1]["title"])
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := New(Config{FeedURL: srv.URL, Timeout: time.Second}, testLogger())

	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	src := New(Config{FeedURL: srv.URL, Timeout: 20 * time.Millisecond}, testLogger())

	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
