// Package rest implements the HTTP GET side of the module query clients,
// talking to a node's gRPC-gateway REST endpoint.
package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/sei-protocol/sei-client-go/codec"
)

const defaultTimeout = 30 * time.Second

// Error is a non-2xx reply from the REST endpoint. Code and Message come
// from the gRPC-gateway error body when the node sent one.
type Error struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rest: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("rest: status %d: code %d: %s", e.Status, e.Code, e.Message)
}

// Client issues GET requests against baseURL and decodes the proto3 JSON
// replies into message types.
type Client struct {
	baseURL    string
	httpClient *http.Client
	registry   *codec.Registry
}

// NewClient returns a REST client. A nil httpClient gets a client with a
// 30 second timeout; a nil registry only resolves public key types.
func NewClient(baseURL string, httpClient *http.Client, registry *codec.Registry) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if registry == nil {
		registry = codec.NewRegistry()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		registry:   registry,
	}
}

// Get requests path with the given query string and decodes the reply into out.
func (c *Client) Get(ctx context.Context, path string, values url.Values, out codec.Message) error {
	target := c.baseURL + path
	if len(values) > 0 {
		target += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("Get: error building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("Get: error reading %s response: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		restErr := &Error{}
		_ = json.Unmarshal(body, restErr)
		restErr.Status = resp.StatusCode
		return restErr
	}

	if err := c.registry.UnmarshalJSON(body, out); err != nil {
		return fmt.Errorf("Get: error decoding %s response: %w", path, err)
	}
	return nil
}

// Path joins a route prefix with escaped path segments.
func Path(prefix string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, segment := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(segment))
	}
	return sb.String()
}

// AddPageValues sets the pagination.* query parameters of p on v. A nil p
// adds nothing.
func AddPageValues(v url.Values, p *query.PageRequest) {
	if p == nil {
		return
	}
	if len(p.Key) > 0 {
		v.Set("pagination.key", base64.StdEncoding.EncodeToString(p.Key))
	}
	if p.Offset != 0 {
		v.Set("pagination.offset", strconv.FormatUint(p.Offset, 10))
	}
	if p.Limit != 0 {
		v.Set("pagination.limit", strconv.FormatUint(p.Limit, 10))
	}
	if p.CountTotal {
		v.Set("pagination.count_total", "true")
	}
	if p.Reverse {
		v.Set("pagination.reverse", "true")
	}
}
