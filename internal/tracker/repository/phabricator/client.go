package phabricator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the Phabricator Conduit API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Conduit client. requestsPerSecond <= 0 disables throttling.
func NewClient(baseURL, apiToken string, requestsPerSecond float64) *Client {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// ProjectQuery calls project.query and returns the slug -> PHID map.
// Slugs without a project are absent from the map.
func (c *Client) ProjectQuery(ctx context.Context, slugs []string) (map[string]string, error) {
	var result struct {
		SlugMap json.RawMessage `json:"slugMap"`
	}
	if err := c.Call(ctx, "project.query", map[string]any{"slugs": slugs}, &result); err != nil {
		return nil, err
	}

	slugMap := map[string]string{}
	// PHP encodes an empty map as [].
	if len(result.SlugMap) == 0 || bytes.HasPrefix(bytes.TrimSpace(result.SlugMap), []byte("[")) {
		return slugMap, nil
	}
	if err := json.Unmarshal(result.SlugMap, &slugMap); err != nil {
		return nil, fmt.Errorf("failed to decode project.query slugMap: %w", err)
	}
	return slugMap, nil
}

// ManiphestInfo calls maniphest.info for one task.
func (c *Client) ManiphestInfo(ctx context.Context, taskID int) (*TaskInfo, error) {
	var info TaskInfo
	if err := c.Call(ctx, "maniphest.info", map[string]any{"task_id": taskID}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ManiphestUpdate calls maniphest.update, replacing the task's projects.
func (c *Client) ManiphestUpdate(ctx context.Context, taskID int, projectPHIDs []string) error {
	params := map[string]any{
		"id":           taskID,
		"projectPHIDs": projectPHIDs,
	}
	return c.Call(ctx, "maniphest.update", params, nil)
}

// Call invokes a Conduit method. out may be nil when the result is not needed.
func (c *Client) Call(ctx context.Context, method string, params map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("conduit %s: %w", method, err)
	}

	body := make(map[string]any, len(params)+1)
	for k, v := range params {
		body[k] = v
	}
	body["__conduit__"] = map[string]string{"token": c.apiToken}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s params: %w", method, err)
	}
	form := url.Values{}
	form.Set("params", string(encoded))
	form.Set("output", "json")
	form.Set("__conduit__", "1")

	endpoint := fmt.Sprintf("%s/api/%s", c.baseURL, method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call conduit %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("conduit %s HTTP error %d: %s", method, resp.StatusCode, string(raw))
	}

	var envelope conduitResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode conduit %s response: %w", method, err)
	}
	if envelope.ErrorCode != nil && *envelope.ErrorCode != "" {
		info := ""
		if envelope.ErrorInfo != nil {
			info = *envelope.ErrorInfo
		}
		return &ConduitError{Method: method, Code: *envelope.ErrorCode, Info: info}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode conduit %s result: %w", method, err)
	}
	return nil
}

// ConduitError is an error_code/error_info pair returned by Conduit.
type ConduitError struct {
	Method string
	Code   string
	Info   string
}

func (e *ConduitError) Error() string {
	return fmt.Sprintf("conduit %s: %s: %s", e.Method, e.Code, e.Info)
}

// ---- Request/Response types scoped to this package ----

type conduitResponse struct {
	Result    json.RawMessage `json:"result"`
	ErrorCode *string         `json:"error_code"`
	ErrorInfo *string         `json:"error_info"`
}

// TaskInfo is the subset of maniphest.info used here.
type TaskInfo struct {
	ID           string   `json:"id"`
	PHID         string   `json:"phid"`
	Title        string   `json:"title"`
	ProjectPHIDs []string `json:"projectPHIDs"`
}
