// Package postgrest stores port guides in a hosted table exposed through a
// PostgREST-compatible HTTP API, such as Supabase.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limitlesscruises/portguide/internal/portguide"
	"github.com/limitlesscruises/portguide/internal/store"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "ports"

// Ensure Client implements store.Store at compile time.
var _ store.Store = (*Client)(nil)

// Client communicates with the PostgREST HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
}

func NewClient(baseURL, apiKey, table string) *Client {
	if table == "" {
		table = DefaultTable
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		table:   table,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: Backoff,
	}
}

// Row is the table shape. The full record lives in Data.
type Row struct {
	ID        string               `json:"id,omitempty"`
	Slug      string               `json:"slug"`
	Name      string               `json:"name"`
	Region    string               `json:"region"`
	Country   string               `json:"country"`
	Status    string               `json:"status"`
	Data      *portguide.PortGuide `json:"data,omitempty"`
	UpdatedAt string               `json:"updated_at,omitempty"`
}

func (r Row) summary() portguide.Summary {
	return portguide.Summary{
		ID:      r.ID,
		Slug:    r.Slug,
		Name:    r.Name,
		Region:  r.Region,
		Country: r.Country,
		Status:  r.Status,
	}
}

// Upsert writes g keyed on slug, merging over an existing row.
func (c *Client) Upsert(ctx context.Context, g *portguide.PortGuide) (store.Result, error) {
	if g == nil || strings.TrimSpace(g.Slug) == "" {
		return store.Result{}, store.ErrSlugRequired
	}

	existing, err := c.selectRows(ctx, url.Values{
		"slug":   {"eq." + g.Slug},
		"select": {"id"},
	})
	if err != nil {
		return store.Result{}, err
	}
	created := len(existing) == 0

	row := Row{
		Slug:      g.Slug,
		Name:      g.Name,
		Region:    g.Region,
		Country:   g.Country,
		Status:    g.Status,
		Data:      g,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if created {
		row.ID = uuid.NewString()
	} else {
		row.ID = existing[0].ID
	}

	body, err := json.Marshal([]Row{row})
	if err != nil {
		return store.Result{}, fmt.Errorf("marshal port: %w", err)
	}
	respBody, err := c.send(ctx, "upsert port "+g.Slug, http.MethodPost,
		c.tableURL(url.Values{"on_conflict": {"slug"}}), body,
		func(req *http.Request) {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Prefer", "resolution=merge-duplicates,return=representation")
		})
	if err != nil {
		return store.Result{}, err
	}

	var stored []Row
	if err := json.Unmarshal(respBody, &stored); err != nil {
		return store.Result{}, fmt.Errorf("decode upsert: %w", err)
	}
	if len(stored) == 0 {
		return store.Result{Port: row.summary(), Created: created}, nil
	}
	return store.Result{Port: stored[0].summary(), Created: created}, nil
}

// Get retrieves the guide stored for slug.
func (c *Client) Get(ctx context.Context, slug string) (*portguide.PortGuide, error) {
	rows, err := c.selectRows(ctx, url.Values{
		"slug":   {"eq." + slug},
		"select": {"*"},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Data == nil {
		return nil, store.ErrNotFound
	}
	return rows[0].Data, nil
}

// List returns summaries of every row ordered by name.
func (c *Client) List(ctx context.Context) ([]portguide.Summary, error) {
	rows, err := c.selectRows(ctx, url.Values{
		"select": {"id,slug,name,region,country,status"},
		"order":  {"name.asc"},
	})
	if err != nil {
		return nil, err
	}
	out := make([]portguide.Summary, len(rows))
	for i, r := range rows {
		out[i] = r.summary()
	}
	return out, nil
}

func (c *Client) selectRows(ctx context.Context, q url.Values) ([]Row, error) {
	respBody, err := c.send(ctx, "select ports", http.MethodGet, c.tableURL(q), nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return nil, fmt.Errorf("decode ports: %w", err)
	}
	return rows, nil
}

// send performs one API call, retrying transport failures and 429/5xx
// responses with backoff. It returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, op, method, u string, body []byte, prepare func(*http.Request)) ([]byte, error) {
	var lastErr error
	for attempt := range MaxRetries {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			}
		}

		respBody, err := c.do(ctx, op, method, u, body, prepare)
		if err == nil || !IsRetryable(err) {
			return respBody, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, op, method, u string, body []byte, prepare func(*http.Request)) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(httpReq)
	if prepare != nil {
		prepare(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: %w", op, &RetryableError{Message: err.Error()})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if retryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%s: %w", op, &RetryableError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(msg)),
			})
		}
		return nil, fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	return respBody, nil
}

func (c *Client) tableURL(q url.Values) string {
	u := c.baseURL + "/rest/v1/" + c.table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
