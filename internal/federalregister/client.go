// Package federalregister is a read-only client for the Federal Register API.
package federalregister

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Federal Register API root.
const DefaultBaseURL = "https://www.federalregister.gov/api/v1"

const (
	defaultTimeout           = 2 * time.Minute
	defaultRequestsPerSecond = 5
	retryCount               = 2
	retryWaitTime            = 500 * time.Millisecond
	retryMaxWaitTime         = 5 * time.Second
	// publicationDateLayout is the date-only format the API uses for
	// publication dates and date filters.
	publicationDateLayout = "2006-01-02"
)

// documentFields lists the document attributes requested from the API.
var documentFields = []string{
	"title", "document_number", "publication_date", "type",
	"pdf_url", "html_url", "abstract", "agencies",
}

// Agency is a raw agency record as returned by /agencies.
type Agency struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	URL       string `json:"agency_url"`
}

// DocumentAgency is the abbreviated agency reference embedded in documents.
type DocumentAgency struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Document is a raw document record as returned by /documents.
type Document struct {
	Title           string           `json:"title"`
	DocumentNumber  string           `json:"document_number"`
	Type            string           `json:"type"`
	PublicationDate string           `json:"publication_date"`
	PDFURL          string           `json:"pdf_url"`
	HTMLURL         string           `json:"html_url"`
	Abstract        string           `json:"abstract"`
	Agencies        []DocumentAgency `json:"agencies"`
}

// PublishedAt parses the document's publication date. The API emits
// date-only values; full timestamps are accepted as a fallback.
func (d Document) PublishedAt() (time.Time, bool) {
	raw := strings.TrimSpace(d.PublicationDate)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(publicationDateLayout, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// documentsPage is one page of the /documents listing.
type documentsPage struct {
	Count       int        `json:"count"`
	NextPageURL string     `json:"next_page_url"`
	Results     []Document `json:"results"`
}

// Config defines the inputs for the client.
type Config struct {
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	// Timeout caps each HTTP request.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls to respect API rate limits.
	RequestsPerSecond float64
}

// Client issues throttled, retried requests against the Federal Register API.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient builds a configured Federal Register client.
func NewClient(config Config) *Client {
	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests ||
				r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// ListAgencies fetches the full agency directory.
func (c *Client) ListAgencies(ctx context.Context) ([]Agency, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var agencies []Agency
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&agencies).
		Get("/agencies")
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list agencies: unexpected status %s", resp.Status())
	}
	return agencies, nil
}

// ListAgencyDocuments fetches documents published by one agency on or after
// since, newest first, capped at limit results. It follows pagination until
// the cap is reached and also returns the total count the API reports for
// the window.
func (c *Client) ListAgencyDocuments(ctx context.Context, agencySlug string, since time.Time, limit int) ([]Document, int, error) {
	if c == nil {
		return nil, 0, errors.New("client is nil")
	}
	agencySlug = strings.TrimSpace(agencySlug)
	if agencySlug == "" {
		return nil, 0, errors.New("agency slug is required")
	}
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("conditions[agencies][]", agencySlug)
	params.Set("conditions[publication_date][gte]", since.Format(publicationDateLayout))
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("order", "newest")
	for _, field := range documentFields {
		params.Add("fields[]", field)
	}

	var (
		documents []Document
		total     int
	)
	nextURL := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}

		var page documentsPage
		req := c.http.R().SetContext(ctx).SetResult(&page)
		var (
			resp *resty.Response
			err  error
		)
		if nextURL == "" {
			resp, err = req.SetQueryParamsFromValues(params).Get("/documents")
		} else {
			// next_page_url is absolute and already carries the query.
			resp, err = req.Get(nextURL)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("list documents for %q: %w", agencySlug, err)
		}
		if resp.IsError() {
			return nil, 0, fmt.Errorf("list documents for %q: unexpected status %s", agencySlug, resp.Status())
		}

		total = page.Count
		documents = append(documents, page.Results...)
		if len(documents) >= limit {
			documents = documents[:limit]
			break
		}
		nextURL = strings.TrimSpace(page.NextPageURL)
		if nextURL == "" {
			break
		}
	}

	return documents, total, nil
}
