package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestWrap_KeepsSentinel(t *testing.T) {
	err := NotFound(errSentinel, "order not found")

	assert.ErrorIs(t, err, errSentinel)
	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, "order not found", err.Message())
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestAs_ThroughFmtWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Conflict(errSentinel, "duplicate"))

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeConflict, typed.Code())
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestCodeOf_Uncoded(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Nil(t, As(nil))
}

func TestWithDetails(t *testing.T) {
	err := Validation(nil, "unknown SKU").WithDetails([]string{"X-1"})
	assert.Equal(t, []string{"X-1"}, err.Details())
	assert.Equal(t, "VALIDATION_ERROR: unknown SKU", err.Error())
}

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		code   Code
		status int
		expose bool
	}{
		{CodeValidation, http.StatusBadRequest, true},
		{CodeNotFound, http.StatusNotFound, true},
		{CodeConflict, http.StatusConflict, true},
		{CodeStateConflict, http.StatusUnprocessableEntity, true},
		{CodeInternal, http.StatusInternalServerError, false},
		{CodeDependency, http.StatusServiceUnavailable, false},
		{Code("UNKNOWN"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.expose, meta.Expose)
		})
	}
}

func TestNilReceiver(t *testing.T) {
	var e *Error
	assert.Equal(t, CodeInternal, e.Code())
	assert.Equal(t, "", e.Message())
	assert.Nil(t, e.Details())
	assert.Nil(t, e.Unwrap())
	assert.Nil(t, e.WithDetails("x"))
}
