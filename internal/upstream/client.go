// Package upstream talks to the ChooseCare REST API. Every call is a single
// attempt; there is no retry and no pagination.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a client for baseURL with a per-request timeout. Outbound
// requests are traced.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, logger)
}

func NewWithHTTPClient(baseURL string, hc *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger.With().Str("component", "upstream").Logger(),
	}
}

// Image is an optional picture uploaded with a hospital or doctor.
type Image struct {
	FileName    string
	ContentType string
	Data        io.Reader
}

type request struct {
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) != 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", r.method).Str("path", r.path).Msg("upstream request failed")
		return err
	}
	defer res.Body.Close()

	c.logger.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream request")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Status: res.StatusCode, Message: errorMessage(res)}
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return decode(raw, out)
}

// decode accepts both a bare payload and one wrapped in {"data": ...}.
func decode(raw []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
			trimmed = envelope.Data
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(res *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(res.StatusCode)
}

func jsonBody(v any) (io.Reader, string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

// multipartBody encodes meta as a JSON "data" part plus an optional "image" part.
func multipartBody(meta any, img *Image) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="data"`)
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if err := json.NewEncoder(part).Encode(meta); err != nil {
		return nil, "", err
	}

	if img != nil && img.Data != nil {
		name := img.FileName
		if name == "" {
			name = "image.jpg"
		}
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// list fetches a whole collection. On failure it returns an empty slice
// together with the error.
func list[T any](ctx context.Context, c *Client, resource, path, token string, query url.Values) ([]T, error) {
	var out []T
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: query, token: token}, &out); err != nil {
		return []T{}, fetchFailure(resource, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, resource, path, token string) (T, error) {
	var out T
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &out); err != nil {
		var zero T
		return zero, fetchFailure(resource, err)
	}
	return out, nil
}

func send[T any](ctx context.Context, c *Client, op, method, path, token string, body io.Reader, contentType string) (T, error) {
	var out T
	err := c.do(ctx, request{method: method, path: path, token: token, body: body, contentType: contentType}, &out)
	if err != nil {
		var zero T
		return zero, mutationFailure(op, err)
	}
	return out, nil
}

func (c *Client) remove(ctx context.Context, op, path, token string) error {
	if err := c.do(ctx, request{method: http.MethodDelete, path: path, token: token}, nil); err != nil {
		return mutationFailure(op, err)
	}
	return nil
}

func escape(id string) string { return url.PathEscape(id) }
