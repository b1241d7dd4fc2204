package finnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	xhttp "FinSignal/pkg/http"
)

// NewsItem is one entry of the Finnhub company-news feed.
type NewsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// Client fetches headlines from the Finnhub REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	now     func() time.Time
}

// New creates a Finnhub REST client.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		now:     time.Now,
	}
}

// CompanyNews returns news for symbol published within the last `days` days.
func (c *Client) CompanyNews(ctx context.Context, symbol string, days int) ([]NewsItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("finnhub api key is required")
	}
	if days <= 0 {
		days = 7
	}
	to := c.now().UTC()
	from := to.AddDate(0, 0, -days)

	var items []NewsItem
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/company-news",
		Headers: map[string]string{
			"X-Finnhub-Token": c.apiKey,
			"Accept":          "application/json",
		},
		QueryParams: map[string][]string{
			"symbol": {strings.ToUpper(symbol)},
			"from":   {from.Format(time.DateOnly)},
			"to":     {to.Format(time.DateOnly)},
		},
	}, &items)
	if err != nil {
		return nil, fmt.Errorf("finnhub company news %s: %w", symbol, err)
	}
	return items, nil
}
