// Package hn is a client for the Hacker News Firebase API.
package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// ErrNotFound is returned for items the API reports as null.
var ErrNotFound = errors.New("hn: item not found")

// Item is a Hacker News item as returned by /item/<id>.json.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// Posted returns the submission time.
func (it Item) Posted() time.Time {
	if it.Time == 0 {
		return time.Time{}
	}
	return time.Unix(it.Time, 0)
}

// Link returns the story URL, or the discussion page for text posts.
func (it Item) Link() string {
	if it.URL != "" {
		return it.URL
	}
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", it.ID)
}

// Options configures a Client. Zero fields take defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxConcurrent     int
	UserAgent         string
}

// Client fetches stories. Safe for concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	sem       *semaphore.Weighted
}

// NewClient creates a client with the given options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "hnbar (https://github.com/abelbrown/hnbar)"
	}
	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.MaxConcurrent),
		sem:       semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}
}

// TopStories returns the IDs of the current top stories, best first.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.get(ctx, "/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("top stories: %w", err)
	}
	return ids, nil
}

// Item fetches a single item. Null, dead and deleted items return ErrNotFound.
func (c *Client) Item(ctx context.Context, id int) (Item, error) {
	var it *Item
	if err := c.get(ctx, fmt.Sprintf("/item/%d.json", id), &it); err != nil {
		return Item{}, fmt.Errorf("item %d: %w", id, err)
	}
	if it == nil || it.Deleted || it.Dead {
		return Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return *it, nil
}

// Items fetches many items in parallel. It returns every item that was
// fetched, in the order of ids, and the first error encountered.
func (c *Client) Items(ctx context.Context, ids []int) ([]Item, error) {
	results := make([]*Item, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			it, err := c.Item(ctx, id)
			if err != nil {
				return err
			}
			results[i] = &it
			return nil
		})
	}
	err := g.Wait()

	items := make([]Item, 0, len(ids))
	for _, it := range results {
		if it != nil {
			items = append(items, *it)
		}
	}
	return items, err
}

func (c *Client) get(ctx context.Context, path string, into any) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
