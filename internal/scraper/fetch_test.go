package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "filmharvest-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer server.Close()

	client := NewClient(ClientOptions{UserAgent: "filmharvest-test"})
	body, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ok")
}

func TestClientFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{UserAgent: "filmharvest-test"})
	_, err := client.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
