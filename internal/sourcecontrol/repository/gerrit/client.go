package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// xssiPrefix is prepended by Gerrit to every JSON response.
const xssiPrefix = ")]}'"

// Client is the HTTP wrapper for the Gerrit REST API. Only GET endpoints are used.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Gerrit HTTP client, e.g. NewClient("https://gerrit.wikimedia.org/r").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ListBranches calls GET /projects/{project}/branches/.
func (c *Client) ListBranches(ctx context.Context, project string) ([]BranchInfo, error) {
	var branches []BranchInfo
	path := fmt.Sprintf("/projects/%s/branches/", url.PathEscape(project))
	if err := c.get(ctx, path, nil, &branches); err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", project, err)
	}
	return branches, nil
}

// ListProjects calls GET /projects/?p={prefix}.
func (c *Client) ListProjects(ctx context.Context, prefix string) (map[string]ProjectInfo, error) {
	query := url.Values{}
	if prefix != "" {
		query.Set("p", prefix)
	}

	projects := map[string]ProjectInfo{}
	if err := c.get(ctx, "/projects/", query, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects with prefix %q: %w", prefix, err)
	}
	return projects, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build gerrit request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call gerrit API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gerrit response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gerrit API error %d: %s", resp.StatusCode, string(raw))
	}

	raw = bytes.TrimPrefix(raw, []byte(xssiPrefix))
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode gerrit response: %w", err)
	}
	return nil
}

// ---- Request/Response types scoped to this package ----

// BranchInfo is the Gerrit BranchInfo entity.
type BranchInfo struct {
	Ref      string `json:"ref"`
	Revision string `json:"revision"`
}

// ProjectInfo is the Gerrit ProjectInfo entity.
type ProjectInfo struct {
	ID    string `json:"id"`
	State string `json:"state,omitempty"`
}
