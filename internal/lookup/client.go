package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/device-timeline/internal/device"
)

// MinQueryLength is the shortest trimmed query that triggers a search.
const MinQueryLength = 3

// Defaults applied by New for zero Config fields.
const (
	DefaultEndpoint    = "https://en.wikipedia.org/w/api.php"
	DefaultTimeout     = 10 * time.Second
	DefaultResultLimit = 5
	defaultImageLimit  = 10
	imageWorkers       = 4
	noDescription      = "No description available"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Logger defines the logging interface used by the Client.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Observer is told about every search that reached the network.
type Observer interface {
	ObserveLookup(results int, elapsed time.Duration, err error)
}

// Config configures a Client.
type Config struct {
	Endpoint    string
	Timeout     time.Duration
	ResultLimit int

	// AdditionalImages enables the per-page image gallery requests.
	AdditionalImages bool

	// MaxAdditionalImages caps the image titles requested per page.
	MaxAdditionalImages int

	UserAgent string
}

// Client searches the encyclopedia.
// It is safe for concurrent use.
type Client struct {
	cfg      Config
	http     *http.Client
	logger   Logger
	observer Observer
	now      func() time.Time
}

// New creates a lookup client.
func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.MaxAdditionalImages <= 0 {
		cfg.MaxAdditionalImages = defaultImageLimit
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: noopLogger{},
		now:    time.Now,
	}
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// SetObserver registers a metrics observer.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// Search returns candidates for query in search-rank order.
//
// Queries shorter than MinQueryLength return an empty list without a
// request. Failures are logged and also return an empty list.
func (c *Client) Search(ctx context.Context, query string) []device.LookupResult {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		return []device.LookupResult{}
	}

	start := time.Now()
	results, err := c.search(ctx, q)
	if c.observer != nil {
		c.observer.ObserveLookup(len(results), time.Since(start), err)
	}
	if err != nil {
		c.logger.Warn("lookup failed", "query", q, "error", err)
		return []device.LookupResult{}
	}

	c.logger.Debug("lookup complete", "query", q, "results", len(results))
	return results
}

type apiResponse struct {
	Query *struct {
		Pages map[string]apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	Index     int    `json:"index"`
	Extract   string `json:"extract"`
	FullURL   string `json:"fullurl"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Images []struct {
		Title string `json:"title"`
	} `json:"images"`
	ImageInfo []struct {
		URL string `json:"url"`
	} `json:"imageinfo"`
}

func (c *Client) search(ctx context.Context, q string) ([]device.LookupResult, error) {
	resp, err := c.get(ctx, url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"generator":   {"search"},
		"gsrsearch":   {q},
		"gsrlimit":    {strconv.Itoa(c.cfg.ResultLimit)},
		"prop":        {"pageimages|extracts|info"},
		"pilimit":     {"max"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"exlimit":     {"max"},
		"inprop":      {"url"},
	})
	if errors.Is(err, ErrNoQuery) {
		return []device.LookupResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	pages := make([]apiPage, 0, len(resp.Query.Pages))
	for _, p := range resp.Query.Pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	extra := make([][]string, len(pages))
	if c.cfg.AdditionalImages {
		var g errgroup.Group
		g.SetLimit(imageWorkers)
		for i := range pages {
			i := i
			g.Go(func() error {
				urls, err := c.pageImages(ctx, pages[i].PageID)
				if err != nil {
					c.logger.Debug("additional images unavailable", "page", pages[i].Title, "error", err)
					return nil
				}
				extra[i] = urls
				return nil
			})
		}
		_ = g.Wait() //nolint:errcheck // Workers never return errors
	}

	now := c.now()
	results := make([]device.LookupResult, 0, len(pages))
	for i, p := range pages {
		var images []string
		if p.Thumbnail != nil && p.Thumbnail.Source != "" {
			images = append(images, p.Thumbnail.Source)
		}
		images = append(images, extra[i]...)
		if len(images) == 0 {
			continue
		}

		description := p.Extract
		if description == "" {
			description = noDescription
		}
		primary := ""
		if p.Thumbnail != nil {
			primary = p.Thumbnail.Source
		}
		if primary == "" {
			primary = images[0]
		}

		results = append(results, device.LookupResult{
			Title:            p.Title,
			Description:      description,
			ImageURL:         primary,
			AdditionalImages: images,
			WikiURL:          p.FullURL,
			ReleaseYear:      ExtractReleaseYear(description, now),
			Category:         DetectCategory(p.Title, description),
		})
	}
	return results, nil
}

// pageImages lists a page's photo files and resolves them to URLs.
func (c *Client) pageImages(ctx context.Context, pageID int) ([]string, error) {
	id := strconv.Itoa(pageID)
	resp, err := c.get(ctx, url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"pageids": {id},
		"prop":    {"images"},
		"imlimit": {strconv.Itoa(c.cfg.MaxAdditionalImages)},
	})
	if err != nil {
		return nil, err
	}

	var titles []string
	for _, img := range resp.Query.Pages[id].Images {
		if isPhoto(img.Title) {
			titles = append(titles, img.Title)
		}
	}
	if len(titles) == 0 {
		return nil, nil
	}

	info, err := c.get(ctx, url.Values{
		"action": {"query"},
		"format": {"json"},
		"titles": {strings.Join(titles, "|")},
		"prop":   {"imageinfo"},
		"iiprop": {"url"},
	})
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]string, len(info.Query.Pages))
	for _, p := range info.Query.Pages {
		if len(p.ImageInfo) > 0 && p.ImageInfo[0].URL != "" {
			byTitle[p.Title] = p.ImageInfo[0].URL
		}
	}

	urls := make([]string, 0, len(titles))
	for _, t := range titles {
		if u, ok := byTitle[t]; ok {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func isPhoto(title string) bool {
	t := strings.ToLower(title)
	return strings.HasSuffix(t, ".jpg") || strings.HasSuffix(t, ".jpeg") || strings.HasSuffix(t, ".png")
}

// get performs one API request and decodes the envelope.
func (c *Client) get(ctx context.Context, params url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", params.Get("prop"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if out.Query == nil {
		return nil, ErrNoQuery
	}
	return &out, nil
}
