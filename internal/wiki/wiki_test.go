package wiki

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T, pages map[string][]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title := r.URL.Query().Get("search[title]")
		var result []wikiPage
		if names, ok := pages[title]; ok {
			result = []wikiPage{{Title: title, OtherNames: names}}
		}
		_ = json.NewEncoder(w).Encode(result)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClientOtherNamesReturnsDeclaredAliases(t *testing.T) {
	server := newTestServer(t, map[string][]string{
		"hakurei_reimu": {"博麗霊夢", "霊夢"},
	})

	options := DefaultOptions()
	options.BaseURL = server.URL
	client := New(options)

	names := client.OtherNames("hakurei_reimu")
	assert.Equal(t, []string{"博麗霊夢", "霊夢"}, names)
}

func TestClientOtherNamesReturnsEmptyForUnknownPage(t *testing.T) {
	server := newTestServer(t, map[string][]string{})

	options := DefaultOptions()
	options.BaseURL = server.URL
	client := New(options)

	assert.Nil(t, client.OtherNames("unknown_character"))
}

func TestClientOtherNamesDegradesOnTransportFailure(t *testing.T) {
	options := DefaultOptions()
	options.BaseURL = "http://127.0.0.1:0"
	client := New(options)

	assert.Nil(t, client.OtherNames("hakurei_reimu"))
}
