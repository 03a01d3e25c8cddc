// Package metadata looks up show titles and synopses from the Jikan
// (MyAnimeList) API.
package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xlordnoro/postar/internal/logging"
)

// Info is the metadata consumed by the renderer for one show.
type Info struct {
	ShortTitle string
	FullTitle  string
	SeasonInfo string
	Synopsis   string
}

// Client queries the Jikan v4 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Jikan endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient returns a Jikan client. A nil logger discards output.
func NewClient(log *logging.Logger, opts ...Option) *Client {
	if log == nil {
		log = logging.Nop()
	}
	c := &Client{
		baseURL:    "https://api.jikan.moe/v4",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type animeResponse struct {
	Data struct {
		Title    string `json:"title"`
		Season   string `json:"season"`
		Year     int    `json:"year"`
		Synopsis string `json:"synopsis"`
	} `json:"data"`
}

// Lookup fetches title/season/synopsis for a MAL id. It never fails:
// any transport or decode error yields a placeholder derived from the
// id so post generation can proceed offline.
func (c *Client) Lookup(malID string) Info {
	info, err := c.lookup(malID)
	if err != nil {
		c.log.Warn("metadata", "lookup failed, using placeholder", logging.F("mal_id", malID), logging.F("error", err))
		return Placeholder(malID)
	}
	return info
}

func (c *Client) lookup(malID string) (Info, error) {
	resp, err := c.httpClient.Get(fmt.Sprintf("%s/anime/%s", c.baseURL, malID))
	if err != nil {
		return Info{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("jikan returned status %d", resp.StatusCode)
	}

	var body animeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Info{}, err
	}

	title := body.Data.Title
	if title == "" {
		title = "Unknown Title"
	}

	seasonInfo := ""
	if body.Data.Season != "" && body.Data.Year != 0 {
		seasonInfo = fmt.Sprintf("%s %d", capitalize(body.Data.Season), body.Data.Year)
	}

	synopsis := strings.TrimSpace(strings.ReplaceAll(body.Data.Synopsis, "\n", " "))
	if synopsis == "" {
		synopsis = "No synopsis available."
	}

	return Info{
		ShortTitle: title,
		FullTitle:  title,
		SeasonInfo: seasonInfo,
		Synopsis:   synopsis,
	}, nil
}

// Placeholder is the substitute metadata used when a lookup fails.
func Placeholder(malID string) Info {
	title := fmt.Sprintf("Anime %s", malID)
	return Info{
		ShortTitle: title,
		FullTitle:  title,
		Synopsis:   "No synopsis available.",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
