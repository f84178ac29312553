// Package robot implements a client for the Hetzner Robot webservice, the
// administrative API for dedicated servers. It covers the server, IP,
// subnet, reverse-DNS and rescue-system resources. The provider's web
// interface (admin accounts, vServer console commands) is not supported.
package robot

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

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production endpoint of the Robot webservice.
const DefaultBaseURL = "https://robot-ws.your-server.de"

// Client talks to the Robot webservice using HTTP basic auth. Requests are
// form-encoded, responses are JSON. The zero value is not usable; construct
// with New.
type Client struct {
	baseURL  string
	username string
	password string
	httpc    *http.Client
}

// New returns a client for the production API.
func New(username, password string) *Client {
	return NewWithBaseURL(username, password, DefaultBaseURL)
}

// NewWithBaseURL returns a client against an alternate endpoint. Used by
// tests to point at an httptest server.
func NewWithBaseURL(username, password, baseURL string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpc:    &http.Client{},
	}
}

// Username returns the account the client authenticates as.
func (c *Client) Username() string { return c.username }

// Error is the decoded error envelope of a failed API call. Remote errors
// are passed through to the caller without interpretation.
type Error struct {
	StatusCode int      `json:"status"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Fields     []string `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d - %s", e.StatusCode, e.Message)
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	if len(e.Fields) > 0 {
		msg += ", fields: " + strings.Join(e.Fields, ", ")
	}
	return msg
}

// IsNotFound reports whether err is an API error with HTTP status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorEnvelope struct {
	Error struct {
		Status  int      `json:"status"`
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Missing []string `json:"missing"`
		Invalid []string `json:"invalid"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, form, out, false)
}

func (c *Client) delete(ctx context.Context, path string, form url.Values) error {
	return c.do(ctx, http.MethodDelete, path, form, nil, true)
}

// do performs one API call. Transport-level failures (dropped keepalives,
// resets) are retried a small number of times with backoff; HTTP error
// statuses are never retried.
func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any, allowEmpty bool) error {
	var resp *http.Response
	attempt := func() error {
		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.SetBasicAuth(c.username, c.password)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err = c.httpc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			logrus.WithError(err).Debugf("robot: %s %s failed, retrying", method, path)
			return err
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return fmt.Errorf("robot: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("robot: request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("robot: reading response for %s: %w", path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if len(raw) == 0 {
			if allowEmpty {
				return nil
			}
			return fmt.Errorf("robot: empty response for %s (status %d)", path, resp.StatusCode)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("robot: decoding response for %s: %w", path, err)
		}
		return nil
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Message == "" {
		return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	apiErr := &Error{
		StatusCode: envelope.Error.Status,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	apiErr.Fields = append(apiErr.Fields, envelope.Error.Missing...)
	apiErr.Fields = append(apiErr.Fields, envelope.Error.Invalid...)
	return apiErr
}

// Date wraps time.Time for the API's bare yyyy-mm-dd date fields.
type Date struct {
	time.Time
}

// UnmarshalJSON accepts "2006-01-02" strings and null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date back as yyyy-mm-dd.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// MarshalYAML mirrors MarshalJSON for the yaml output format.
func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format("2006-01-02"), nil
}
