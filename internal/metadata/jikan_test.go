package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime/52991", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {
			"title": "Sousou no Frieren",
			"season": "fall",
			"year": 2023,
			"synopsis": "During their decade-long quest.\nThe journey continues."
		}}`))
	}))
	defer srv.Close()

	c := NewClient(nil, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	info := c.Lookup("52991")

	assert.Equal(t, "Sousou no Frieren", info.ShortTitle)
	assert.Equal(t, "Sousou no Frieren", info.FullTitle)
	assert.Equal(t, "Fall 2023", info.SeasonInfo)
	assert.Equal(t, "During their decade-long quest. The journey continues.", info.Synopsis)
}

func TestLookup_PartialData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"title": "Some Show"}}`))
	}))
	defer srv.Close()

	c := NewClient(nil, WithBaseURL(srv.URL))
	info := c.Lookup("1")

	assert.Equal(t, "Some Show", info.ShortTitle)
	assert.Empty(t, info.SeasonInfo)
	assert.Equal(t, "No synopsis available.", info.Synopsis)
}

func TestLookup_ServerErrorFallsBackToPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(nil, WithBaseURL(srv.URL))
	info := c.Lookup("99999")

	assert.Equal(t, "Anime 99999", info.ShortTitle)
	assert.Equal(t, "No synopsis available.", info.Synopsis)
}

func TestLookup_UnreachableHostFallsBackToPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(nil, WithBaseURL(srv.URL))
	info := c.Lookup("7")

	assert.Equal(t, "Anime 7", info.ShortTitle)
}

func TestPlaceholder(t *testing.T) {
	info := Placeholder("123")
	assert.Equal(t, "Anime 123", info.ShortTitle)
	assert.Equal(t, "Anime 123", info.FullTitle)
	assert.Empty(t, info.SeasonInfo)
	assert.Equal(t, "No synopsis available.", info.Synopsis)
}
