package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/servicetoken"
)

// Signer is satisfied by *servicetoken.Service.
type Signer interface {
	Sign(sharerID int64) (string, error)
}

// Client forwards validated calls to the core server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     Signer
}

// Call describes one forwarded request. SharerID 0 sends no sharer header.
type Call struct {
	Method    string
	Path      string
	Query     url.Values
	SharerID  int64
	RequestID string
	Body      []byte
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// NewClient builds a client for cfg.ServerURL. A nil signer sends no service token.
func NewClient(cfg config.GatewayServerConfig, signer Signer) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		signer:     signer,
	}
}

// Do sends the call and returns the server's answer whatever its status.
// Only transport failures are returned as errors.
func (c *Client) Do(ctx context.Context, call Call) (*Response, error) {
	target := c.baseURL + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	if len(call.Body) > 0 {
		body = bytes.NewReader(call.Body)
	}
	req, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, errs.Wrapf(err, "build %s %s", call.Method, call.Path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if call.SharerID != 0 {
		req.Header.Set(middleware.SharerIDHeader, strconv.FormatInt(call.SharerID, 10))
	}
	if call.RequestID != "" {
		req.Header.Set(middleware.RequestIDHeader, call.RequestID)
	}
	if c.signer != nil {
		token, err := c.signer.Sign(call.SharerID)
		if err != nil {
			return nil, errs.Wrap(err, "sign service token")
		}
		req.Header.Set(servicetoken.Header, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrapf(err, "forward %s %s", call.Method, call.Path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrapf(err, "read response of %s %s", call.Method, call.Path)
	}
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        payload,
	}, nil
}
