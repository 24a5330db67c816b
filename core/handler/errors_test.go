package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/waypoint/core/handler"
)

func TestClientError(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad input")

	tests := []struct {
		name   string
		err    handler.ClientError
		status int
		msg    string
	}{
		{"default status", handler.ClientError{Err: cause}, http.StatusBadRequest, "bad input"},
		{"custom 4xx", handler.ClientError{Status: http.StatusUnprocessableEntity, Err: cause}, http.StatusUnprocessableEntity, "bad input"},
		{"out of range status", handler.ClientError{Status: http.StatusBadGateway, Err: cause}, http.StatusBadRequest, "bad input"},
		{"no cause", handler.ClientError{Status: http.StatusNotFound}, http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}

	wrapped := fmt.Errorf("decode: %w", handler.ClientError{Err: cause})
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, handler.IsClientError(wrapped))
	assert.False(t, handler.IsClientError(cause))
}

func TestServerError(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")

	assert.Equal(t, http.StatusInternalServerError, handler.ServerError{Err: cause}.StatusCode())
	assert.Equal(t, http.StatusServiceUnavailable, handler.ServerError{Status: http.StatusServiceUnavailable}.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, handler.ServerError{Status: http.StatusNotFound}.StatusCode())
	assert.Equal(t, "db down", handler.ServerError{Err: cause}.Error())
	assert.Equal(t, "Internal Server Error", handler.ServerError{}.Error())
	assert.ErrorIs(t, handler.ServerError{Err: cause}, cause)
	assert.False(t, handler.IsClientError(handler.ServerError{Err: cause}))
}
