package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetAppError_Passthrough tests that typed errors keep their status and code
func TestGetAppError_Passthrough(t *testing.T) {
	wrapped := fmt.Errorf("get ride: %w", ErrRidesNotFound)

	appErr := GetAppError(wrapped)

	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, CodeRidesNotFound, appErr.Code)
	assert.Equal(t, "Could not find any rides", appErr.Message)
}

// TestGetAppError_UnknownError tests that unknown errors become SERVER_ERROR
func TestGetAppError_UnknownError(t *testing.T) {
	cause := errors.New("connection reset by peer")

	appErr := GetAppError(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, CodeServer, appErr.Code)
	assert.Equal(t, "Unknown error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

// TestAppError_JSONHidesCause tests the wire shape of an error body
func TestAppError_JSONHidesCause(t *testing.T) {
	body, err := json.Marshal(Storage(errors.New("pq: relation \"rides\" does not exist")))
	require.NoError(t, err)

	assert.JSONEq(t, `{"error_code":"SERVER_ERROR","message":"Unknown error"}`, string(body))
}

// TestValidation tests the validation constructor
func TestValidation(t *testing.T) {
	appErr := Validation("Rider name must be a non empty string")

	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.True(t, IsAppError(appErr))
	assert.Equal(t, "Rider name must be a non empty string", appErr.Error())
}

// TestWrap tests nil passthrough and wrapping
func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	cause := errors.New("boom")
	err := Wrap(cause, "insert ride")
	assert.EqualError(t, err, "insert ride: boom")
	assert.ErrorIs(t, err, cause)
}

// TestConstructors tests the status and code of each error constructor
func TestConstructors(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
		wantCause  error
	}{
		{name: "validation", err: Validation("bad"), wantCode: CodeValidation, wantStatus: http.StatusBadRequest},
		{name: "storage", err: Storage(cause), wantCode: CodeServer, wantStatus: http.StatusInternalServerError, wantCause: cause},
		{name: "not found", err: ErrRidesNotFound, wantCode: CodeRidesNotFound, wantStatus: http.StatusNotFound},
		{name: "rate limit", err: ErrRateLimitExceeded, wantCode: CodeRateLimitExceeded, wantStatus: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCause, tt.err.Err)
		})
	}
}
