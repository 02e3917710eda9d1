package scopus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAbstract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/abstract/eid/2-s2.0-1", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-ELS-APIKey"))
		fmt.Fprint(w, `{"abstracts-retrieval-response":{"coredata":{"dc:description":"Ein Abstract"}}}`)
	}))
	defer server.Close()

	fetcher := testFetcher(server.URL, 2)
	abstract, err := fetcher.FetchAbstract(context.Background(), "2-s2.0-1")
	require.NoError(t, err)
	assert.Equal(t, "Ein Abstract", abstract)
}

func TestFetchAbstractMissingDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"abstracts-retrieval-response":{"coredata":{}}}`)
	}))
	defer server.Close()

	fetcher := testFetcher(server.URL, 2)
	abstract, err := fetcher.FetchAbstract(context.Background(), "2-s2.0-1")
	require.NoError(t, err)
	assert.Equal(t, "", abstract)
}

func TestFetchAbstractReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "RESOURCE_NOT_FOUND")
	}))
	defer server.Close()

	fetcher := testFetcher(server.URL, 2)
	_, err := fetcher.FetchAbstract(context.Background(), "2-s2.0-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "RESOURCE_NOT_FOUND")
}
