//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// SharerHeader mirrors middleware.SharerIDHeader without importing the handler tree.
const SharerHeader = "X-Sharer-User-Id"

// PerformRequest executes the request against h. A sharerID of 0 sends no sharer header.
func PerformRequest(t *testing.T, h http.Handler, method, path string, body any, sharerID int64) *httptest.ResponseRecorder {
	t.Helper()

	req := NewRequest(t, method, path, body)
	if sharerID != 0 {
		req.Header.Set(SharerHeader, strconv.FormatInt(sharerID, 10))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// PerformRequestWithHeaders is PerformRequest with arbitrary headers.
func PerformRequestWithHeaders(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := NewRequest(t, method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func NewRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// decodes JSON response body into target struct
func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) error {
	t.Helper()

	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "Failed to decode response body")

	return err
}
