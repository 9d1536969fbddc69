package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mxtools/mxexport/internal/export"
	"github.com/mxtools/mxexport/internal/model"
)

// defaultRequestTimeout bounds every individual repository request. The
// batch is offline and sequential, so a generous ceiling is fine — it
// exists to turn a wedged server into an error instead of a hung run.
const defaultRequestTimeout = 60 * time.Second

// ErrAccessDenied indicates the token was rejected or lacks access to the
// requested application.
var ErrAccessDenied = errors.New("access denied by model repository")

// ErrNotFound indicates the application id, branch, or snapshot does not
// exist on the repository.
var ErrNotFound = errors.New("not found on model repository")

// Client talks to the model repository's REST API. It implements
// export.Source.
//
// Usage:
//
//	c, err := repository.NewClient(baseURL, token)
//	if err != nil { /* handle */ }
//	snap, err := c.CreateSnapshot(ctx, app)
type Client struct {
	baseURL string
	token   string

	// httpClient is the underlying HTTP client. Wrapped rather than
	// exposed so the package controls auth headers and error mapping.
	httpClient *http.Client
}

// NewClient creates a repository client for the given base URL and access
// token. The base URL must be non-empty; a trailing slash is tolerated.
// The token is assumed to have been validated (present and non-empty)
// by the configuration layer before any client is constructed.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("model repository base URL must not be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid model repository base URL %q: %w", baseURL, err)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// CreateSnapshot opens a temporary read snapshot of the application's
// model at the configured branch. The returned handle serves module
// enumeration and structure loads until closed.
//
// Distinguishable failures: ErrAccessDenied for 401/403 (bad token or
// insufficient access) and ErrNotFound for 404 (unknown app id or branch).
func (c *Client) CreateSnapshot(ctx context.Context, app model.AppConfig) (export.Snapshot, error) {
	path := fmt.Sprintf("/v1/apps/%s/branches/%s/snapshots",
		url.PathEscape(app.AppID), url.PathEscape(app.Branch))

	var resp snapshotCreated
	if err := c.doJSON(ctx, http.MethodPost, path, &resp); err != nil {
		return nil, err
	}
	if resp.SnapshotID == "" {
		return nil, fmt.Errorf("repository returned an empty snapshot id for app %q", app.AppID)
	}

	return &Snapshot{client: c, id: resp.SnapshotID}, nil
}

// doJSON performs one authenticated request against the repository and
// decodes the JSON response body into out (when out is non-nil).
// HTTP-level failures are mapped to the package's sentinel errors.
func (c *Client) doJSON(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := statusError(resp); err != nil {
		return err
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s %s: %w", method, path, err)
	}
	return nil
}

// statusError maps non-2xx responses to errors. 401/403 and 404 become
// the package sentinels so callers can distinguish auth and identifier
// problems from transient server failures.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Read a bounded amount of the body for the diagnostic; repository
	// error payloads are short.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (HTTP %d): %s", ErrAccessDenied, resp.StatusCode, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w (HTTP %d): %s", ErrNotFound, resp.StatusCode, detail)
	default:
		return fmt.Errorf("model repository returned HTTP %d: %s", resp.StatusCode, detail)
	}
}
