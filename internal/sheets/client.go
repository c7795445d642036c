// Package sheets talks to the spreadsheet-backed persistence endpoint
// (a Google Apps Script deployment). The endpoint multiplexes every
// operation over one URL: reads are GET requests with an "action"
// query parameter, writes are POST requests whose JSON body carries an
// "action" field. Responses are JSON objects with at least a success
// flag, but the deployment is allowed to answer with anything at all,
// so decoding failures surface as ErrUnconfirmed rather than hard
// errors.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// ErrUnconfirmed marks a request that reached the endpoint but whose
// outcome could not be verified: an unreadable, empty, or non-JSON
// response. Callers fall back to the local cache instead of failing.
var ErrUnconfirmed = errors.New("sheets: response could not be confirmed")

// RemoteError is an application-level failure reported by the endpoint
// itself (success=false).
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return "sheets: endpoint reported failure"
	}
	return "sheets: " + e.Message
}

// Config describes how the client reaches the deployment.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues requests against one Apps Script deployment URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// Envelope is the tolerant shape of every endpoint response. Only
// Success is guaranteed; the remaining fields appear per action.
type Envelope struct {
	Success          bool             `json:"success"`
	Message          string           `json:"message"`
	Version          json.Number      `json:"version"`
	SheetCount       int              `json:"sheet_count"`
	IngredientsCount int              `json:"ingredients_count"`
	Menus            []map[string]any `json:"menus"`
	Menu             map[string]any   `json:"menu"`
	Ingredients      []map[string]any `json:"ingredients"`
	Packaging        map[string]any   `json:"packaging"`
}

// NewClient validates the configuration and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("sheets: deployment URL must not be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("sheets: invalid deployment URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// Ping checks connectivity with a cache-busting timestamp parameter.
func (c *Client) Ping(ctx context.Context) (*Envelope, error) {
	params := url.Values{}
	params.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	return c.get(ctx, "ping", params)
}

// Initialize asks the deployment to create any missing sheets. Issued
// after a ping that reports fewer sheets than the schema needs.
func (c *Client) Initialize(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "initialize", nil)
}

// Menus fetches every saved menu row.
func (c *Client) Menus(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "get_menus", nil)
}

// SearchMenus fetches menus filtered by free text and/or category.
func (c *Client) SearchMenus(ctx context.Context, query, category string) (*Envelope, error) {
	params := url.Values{}
	if strings.TrimSpace(query) != "" {
		params.Set("query", strings.TrimSpace(query))
	}
	if strings.TrimSpace(category) != "" {
		params.Set("category", strings.TrimSpace(category))
	}
	return c.get(ctx, "search_menus", params)
}

// Menu fetches a single menu with its ingredient rows for editing.
func (c *Client) Menu(ctx context.Context, menuID string) (*Envelope, error) {
	if strings.TrimSpace(menuID) == "" {
		return nil, errors.New("sheets: menu id must not be empty")
	}
	params := url.Values{}
	params.Set("menu_id", strings.TrimSpace(menuID))
	return c.get(ctx, "get_menu", params)
}

// MenuIngredients fetches just the ingredient rows of a menu.
func (c *Client) MenuIngredients(ctx context.Context, menuID string) (*Envelope, error) {
	params := url.Values{}
	params.Set("menu_id", strings.TrimSpace(menuID))
	return c.get(ctx, "get_ingredients", params)
}

// MenuPackaging fetches just the packaging record of a menu.
func (c *Client) MenuPackaging(ctx context.Context, menuID string) (*Envelope, error) {
	params := url.Values{}
	params.Set("menu_id", strings.TrimSpace(menuID))
	return c.get(ctx, "get_packaging", params)
}

// SaveMenu posts a save_menu or update_menu payload. The payload's
// Action field decides which; the caller sets it.
func (c *Client) SaveMenu(ctx context.Context, payload MenuPayload) (*Envelope, error) {
	if payload.Action != ActionSaveMenu && payload.Action != ActionUpdateMenu {
		return nil, fmt.Errorf("sheets: unsupported save action %q", payload.Action)
	}
	return c.post(ctx, payload)
}

// DeleteMenu posts a delete_menu request for one record.
func (c *Client) DeleteMenu(ctx context.Context, menuID string) (*Envelope, error) {
	if strings.TrimSpace(menuID) == "" {
		return nil, errors.New("sheets: menu id must not be empty")
	}
	return c.post(ctx, map[string]any{
		"action":  ActionDeleteMenu,
		"menu_id": strings.TrimSpace(menuID),
	})
}

// TestConnection posts the POST-side connectivity check.
func (c *Client) TestConnection(ctx context.Context) (*Envelope, error) {
	return c.post(ctx, map[string]any{"action": ActionTestConnection})
}

func (c *Client) get(ctx context.Context, action string, params url.Values) (*Envelope, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("action", action)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: build %s request: %w", action, err)
	}

	return c.do(req, action)
}

func (c *Client) post(ctx context.Context, payload any) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sheets: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sheets: build post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "post")
}

func (c *Client) do(req *http.Request, action string) (*Envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("sheets: %s returned status %s", action, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %s", ErrUnconfirmed, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrUnconfirmed
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnconfirmed, err)
	}

	if !envelope.Success {
		return &envelope, &RemoteError{Message: envelope.Message}
	}

	return &envelope, nil
}
