// Package api implements the authenticated REST client for the storefront
// catalog service: a generic request executor with a typed error, a
// multipart upload mode for the admin flow, and bindings for the product,
// auth, and favorites endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/colorindo-sonhos/storefront-client/internal/credential"
	"github.com/colorindo-sonhos/storefront-client/pkg/httptransport"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of an error response is read when looking
// for a server-provided message.
const maxErrorBody = 1 << 20

// Client executes requests against the storefront service. It consults the
// credential store on every call but never writes to it; login/logout flows
// own the token lifecycle.
type Client struct {
	baseURL string
	http    *http.Client
	creds   credential.Store
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client entirely, including its
// transport chain. Mostly useful in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the service at baseURL. The default transport is
// instrumented with OpenTelemetry spans, outbound request IDs, and request
// logging.
func New(baseURL string, creds credential.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: httptransport.Wrap(
				otelhttp.NewTransport(http.DefaultTransport),
				httptransport.RequestID(),
				httptransport.LogRequests(),
			),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes a JSON request and returns the raw response body. body may be
// nil; a nil return with nil error means the server answered 204 No Content.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req)
}

// doJSON executes a JSON request and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}

// FormFile is the single optional binary field of a multipart request.
type FormFile struct {
	Field  string
	Name   string
	Reader io.Reader
}

// Form is the payload of a multipart request: named text fields plus at most
// one file.
type Form struct {
	Fields map[string]string
	File   *FormFile
}

// doMultipart executes a multipart/form-data request. The Content-Type,
// including the boundary, comes from the multipart writer; nothing is set by
// hand.
func (c *Client) doMultipart(ctx context.Context, method, path string, form Form) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// Deterministic field order keeps request bodies reproducible.
	keys := make([]string, 0, len(form.Fields))
	for k := range form.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, form.Fields[k]); err != nil {
			return nil, errors.Wrapf(err, "write field %s", k)
		}
	}
	if f := form.File; f != nil {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, errors.Wrap(err, "create file part")
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, errors.Wrap(err, "copy file part")
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	return c.send(req)
}

// authorize attaches the Bearer token when one is present. Unauthenticated
// sessions send no Authorization header at all.
func (c *Client) authorize(req *http.Request) {
	if token, ok := c.creds.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		// No response obtained: transport failure, no status code.
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFrom(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("read response body: %v", err)}
	}
	return data, nil
}

// errorFrom builds the typed error for a non-success response, preferring a
// server-provided message when the body parses as JSON.
func errorFrom(resp *http.Response) *Error {
	e := &Error{
		Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		StatusCode: resp.StatusCode,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return e
	}
	if msg := errorMessage(body); msg != "" {
		e.Message = msg
	}
	return e
}

// errorMessage extracts "message" (or "error") from a JSON error body.
// Anything unparseable yields the empty string and the generic message is
// kept.
func errorMessage(body []byte) string {
	var msg string
	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return ""
	}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "message", "error":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			if msg == "" || key == "message" {
				msg = s
			}
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return ""
	}
	return msg
}
