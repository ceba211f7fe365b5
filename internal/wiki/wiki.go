// Package wiki implements the external wiki-lookup collaborator that feeds
// C6's character alias table: for a character's canonical tag name, it
// returns the list of alternate names (romanisations, katakana spellings,
// nicknames) a wiki maintains for that entry, matching the
// DBWikiPage.data["other_names"] field consulted by
// original_source/scripts/character_index.py. It satisfies
// internal/canon.WikiLookup.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/nanoskript/touhou-index/internal/logger"
)

// Error is the sentinel error type for wiki operations.
type Error string

func (e Error) Error() string {
	return "wiki: " + string(e)
}

// Options configures Client, following the teacher's Options/DefaultOptions
// idiom.
type Options struct {
	// BaseURL is the wiki API root, e.g. "https://danbooru.donmai.us".
	BaseURL string

	// APIKey authenticates requests via a static oauth2 token source, the
	// same client-construction shape the teacher's Anilist client uses for
	// its OAuth2 access token, applied here to a simple bearer/API key
	// rather than a full authorization-code flow.
	APIKey string

	HTTPClient *http.Client
	Logger     *logger.Logger
}

// DefaultOptions returns sensible Client defaults; BaseURL/APIKey must
// still be set by the caller for a production Danbooru endpoint.
func DefaultOptions() Options {
	return Options{
		BaseURL:    "https://danbooru.donmai.us",
		HTTPClient: http.DefaultClient,
		Logger:     logger.New(),
	}
}

// Client is the HTTP-backed wiki.Client implementation, querying a
// Danbooru-shaped `/wiki_pages.json?search[title]=` endpoint.
type Client struct {
	options Options
	http    *http.Client
}

// New constructs a Client. When options.APIKey is non-empty, requests carry
// it as an oauth2 static bearer token, sent through an oauth2 HTTP client
// that replaces options.HTTPClient.
func New(options Options) *Client {
	if options.HTTPClient == nil {
		options.HTTPClient = http.DefaultClient
	}
	if options.Logger == nil {
		options.Logger = logger.New()
	}

	httpClient := options.HTTPClient
	if options.APIKey != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: options.APIKey})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	return &Client{options: options, http: httpClient}
}

type wikiPage struct {
	Title      string   `json:"title"`
	OtherNames []string `json:"other_names"`
}

// OtherNames looks up the wiki page titled rawName (the raw, underscored
// tag form, e.g. "hakurei_reimu") and returns its declared alternate names.
// A page with no entry, or a transport failure, yields an empty result: a
// wiki-lookup failure degrades C6 to its token-based canonicalisation
// rather than aborting the pipeline (§7's per-entry error policy).
func (c *Client) OtherNames(rawName string) []string {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	names, err := c.fetchOtherNames(ctx, rawName)
	if err != nil {
		c.options.Logger.Warn("wiki lookup failed for %q: %v", rawName, err)
		return nil
	}
	return names
}

func (c *Client) fetchOtherNames(ctx context.Context, rawName string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/wiki_pages.json?search[title]=%s", c.options.BaseURL, url.QueryEscape(rawName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Error(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var pages []wikiPage
	if err := json.NewDecoder(resp.Body).Decode(&pages); err != nil {
		return nil, err
	}
	for _, page := range pages {
		if page.Title == rawName {
			return page.OtherNames, nil
		}
	}
	return nil, nil
}
