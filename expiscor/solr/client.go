package solr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client is the HTTP transport for one Solr server. Every call is a single
// attempt; retry policy, if any, belongs to the caller.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a transport for the server at baseURL
// (e.g. http://localhost:8983).
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Get issues a GET and returns the response body. The caller owns closing
// the body. A non-2xx status is an error; the body is drained and closed
// on every error path.
func (c *Client) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(ref), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build GET %s", ref)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", ref)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return nil, errors.Errorf("GET %s: unexpected status %s", ref, resp.Status)
	}
	return resp.Body, nil
}

// GetJSON issues a GET and decodes the JSON response into v. Server-side
// failures arrive as JSON too, so a non-2xx status with a decodable body
// still decodes; the caller inspects the parsed envelope.
func (c *Client) GetJSON(ctx context.Context, ref string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(ref), nil)
	if err != nil {
		return errors.Wrapf(err, "build GET %s", ref)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", ref)
	}
	defer drain(resp.Body)
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "decode reply of GET %s", ref)
	}
	return nil
}

// Post sends body and decodes the JSON reply into v when v is non-nil.
func (c *Client) Post(ctx context.Context, ref, contentType string, body io.Reader, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(ref), body)
	if err != nil {
		return errors.Wrapf(err, "build POST %s", ref)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", ref)
	}
	defer drain(resp.Body)
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errors.Wrapf(err, "decode reply of POST %s", ref)
		}
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("POST %s: unexpected status %s", ref, resp.Status)
	}
	return nil
}

// resolve joins a server-relative ref onto the base URL; absolute URLs pass
// through so schema downloads can name a full location.
func (c *Client) resolve(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.BaseURL + ref
}

// drain consumes and closes a response body so the connection can be
// reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
