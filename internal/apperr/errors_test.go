package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("Month parameter is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("parse: %w", Validation("bad")), http.StatusBadRequest},
		{"not found", NotFound("Table", "t1"), http.StatusNotFound},
		{"unavailable", &StoreUnavailableError{Op: "update table", Err: errors.New("timeout")}, http.StatusInternalServerError},
		{"disabled", &DisabledError{Feature: "report archive"}, http.StatusServiceUnavailable},
		{"store", Store("list bills", errors.New("relation does not exist")), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Date parameter is required", PublicMessage(Validation("Date parameter is required")))
	assert.Equal(t, "Table not found", PublicMessage(NotFound("Table", "x")))
	assert.Equal(t, "duplicate key value", PublicMessage(Store("insert", errors.New("duplicate key value"))))
	assert.Contains(t, PublicMessage(&StoreUnavailableError{}), "failed after multiple attempts")
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("secret internals")))
}

func TestStoreNilPassthrough(t *testing.T) {
	assert.NoError(t, Store("noop", nil))
}
