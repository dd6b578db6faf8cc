//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status and decodes the body into target
// when one is given.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	require.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	if target != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body is not valid JSON: %s", w.Body.String())
	}
}

// AssertEmptyResponse checks for a bodiless response such as a delete.
func AssertEmptyResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	assert.Zero(t, w.Body.Len(), "expected no body, got: %s", w.Body.String())
}

// AssertErrorResponse checks the {"error": "..."} envelope. An empty
// expectedMsg only checks the shape.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var body map[string]any
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "error body is not valid JSON: %s", w.Body.String()) {
		return
	}
	msg, ok := body["error"].(string)
	assert.True(t, ok, "error body has no error message: %s", w.Body.String())
	assert.Len(t, body, 1, "error body carries extra fields: %s", w.Body.String())

	if expectedMsg != "" {
		assert.Contains(t, msg, expectedMsg)
	}
}
