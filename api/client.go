// Package api implements the HTTP client for the Now platform API.
//
// All operations return typed errors: expected platform failures surface as
// *Error carrying the platform error code, so callers branch on the failure
// kind rather than parsing messages. Transport faults (connection errors,
// exhausted retries) surface as plain wrapped errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/nowhq/now-cli/output"
)

// DefaultEndpoint is the production API endpoint.
const DefaultEndpoint = "https://api.now.sh"

// Config contains configuration for the API client.
type Config struct {
	// Endpoint overrides the API base URL (defaults to DefaultEndpoint).
	Endpoint string

	// Token is the bearer token used for all requests.
	Token string

	// TeamID scopes requests to a team when set.
	TeamID string

	// HTTPClient overrides the underlying transport (defaults to
	// http.DefaultClient).
	HTTPClient *http.Client

	// Printer receives debug lines for each request when set.
	Printer output.Printer
}

// Client is the Now platform API client.
type Client struct {
	endpoint string
	token    string
	teamID   string
	http     *http.Client
	printer  output.Printer
}

// New creates a new API client.
func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Printer == nil {
		cfg.Printer = output.New(io.Discard, io.Discard, false)
	}
	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		teamID:   cfg.TeamID,
		http:     cfg.HTTPClient,
		printer:  cfg.Printer,
	}
}

// BindDomain associates a domain name with a project. A conflict with
// another project is returned as an *Error with code CodeAliasDomainExists
// carrying the owning project.
func (c *Client) BindDomain(ctx context.Context, project, domain string) (*Domain, error) {
	var out struct {
		Domain Domain `json:"domain"`
	}
	path := fmt.Sprintf("/v4/projects/%s/domains", url.PathEscape(project))
	body := map[string]string{"name": domain}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Domain, nil
}

// UnbindDomain removes the association between a project and a domain.
func (c *Client) UnbindDomain(ctx context.Context, projectID, domain string) error {
	path := fmt.Sprintf("/v4/projects/%s/domains/%s",
		url.PathEscape(projectID), url.PathEscape(domain))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Domains lists the domains in the current scope.
func (c *Client) Domains(ctx context.Context) ([]Domain, error) {
	var out struct {
		Domains []Domain `json:"domains"`
	}
	if err := c.do(ctx, http.MethodGet, "/v4/domains", nil, &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

// RemoveDomain deletes a domain from the current scope.
func (c *Client) RemoveDomain(ctx context.Context, domain string) error {
	return c.do(ctx, http.MethodDelete, "/v4/domains/"+url.PathEscape(domain), nil, nil)
}

// DomainVerification fetches the verification state of a domain.
func (c *Client) DomainVerification(ctx context.Context, domain string) (*Verification, error) {
	var out Verification
	path := "/v4/domains/" + url.PathEscape(domain)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// User returns the authenticated user.
func (c *Client) User(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/v2/user", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Team returns a team by id or slug.
func (c *Client) Team(ctx context.Context, id string) (*Team, error) {
	var out Team
	if err := c.do(ctx, http.MethodGet, "/v2/teams/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs a single API call. GET requests are retried with exponential
// backoff on transport errors and 5xx responses; anything else gets exactly
// one attempt. Platform error responses are decoded into *Error and never
// retried.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-now-trace", uuid.NewString())
		if c.teamID != "" {
			req.Header.Set("x-now-team-id", c.teamID)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request to %s failed: %w", path, err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response from %s: %w", path, err)
		}
		c.printer.Debug("%s %s -> %d (%s)",
			method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

		if resp.StatusCode >= 500 {
			return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(parseError(resp.StatusCode, data))
		}
		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode response from %s: %w", path, err))
			}
		}
		return nil
	}

	// Only GETs are safe to retry at this layer.
	var retries uint64
	if method == http.MethodGet {
		retries = 3
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)
	return backoff.Retry(op, bo)
}
