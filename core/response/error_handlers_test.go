package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"not found", router.ErrNotFound, http.StatusNotFound},
		{"method not allowed", fmt.Errorf("route: %w", router.ErrMethodNotAllowed), http.StatusMethodNotAllowed},
		{"client error", handler.ClientError{Status: http.StatusConflict}, http.StatusConflict},
		{"wrapped client error", fmt.Errorf("bind: %w", handler.ClientError{}), http.StatusBadRequest},
		{"server error", handler.ServerError{Status: http.StatusBadGateway}, http.StatusBadGateway},
		{"http error", response.ErrTooManyRequests, http.StatusTooManyRequests},
		{"zero status http error", response.HTTPError{Message: "zero"}, http.StatusInternalServerError},
		{"success status http error", response.HTTPError{Status: http.StatusOK}, http.StatusInternalServerError},
		{"wrapped redirect status http error", fmt.Errorf("x: %w", response.HTTPError{Status: http.StatusFound}), http.StatusInternalServerError},
		{"client error outside its range", handler.ClientError{Status: http.StatusOK}, http.StatusBadRequest},
		{"out of range server error", handler.ServerError{Status: 700}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.StatusOf(tt.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"plain error hides cause", errors.New("db password leaked"), http.StatusInternalServerError, "Internal Server Error"},
		{"not found", router.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"method not allowed", router.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"client error", handler.ClientError{Status: http.StatusUnprocessableEntity, Err: errors.New("bad")}, http.StatusUnprocessableEntity, "Unprocessable Entity"},
		{"http error with message", response.ErrForbidden.WithMessage("no access"), http.StatusForbidden, "no access"},
		{"uncatalogued status", handler.ClientError{Status: http.StatusTeapot}, http.StatusTeapot, "I'm a teapot"},
		{"zero status http error", response.HTTPError{Message: "zero"}, http.StatusInternalServerError, "Internal Server Error"},
		{"redirect status http error", response.HTTPError{Status: http.StatusFound, Message: "moved"}, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			response.ErrorHandler(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("client error includes cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := handler.ClientError{Err: errors.New("name is required")}
		response.JSONErrorHandler(w, httptest.NewRequest(http.MethodPost, "/", nil), err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"code":"bad_request","message":"Bad Request","details":{"cause":"name is required"}}`, w.Body.String())
	})

	t.Run("server error hides cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.JSONErrorHandler(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"code":"internal_server_error","message":"Internal Server Error"}`, w.Body.String())
	})

	t.Run("http error details", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := response.ErrUnprocessableEntity.WithDetails(map[string]any{"field": "email"})
		response.JSONErrorHandler(w, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("validate: %w", err))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"code":"unprocessable_entity","message":"Unprocessable Entity","details":{"field":"email"}}`, w.Body.String())
	})

	t.Run("route not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.JSONErrorHandler(w, httptest.NewRequest(http.MethodGet, "/", nil), router.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"code":"not_found","message":"Not Found"}`, w.Body.String())
	})
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	e := response.NewHTTPError("custom")
	assert.Equal(t, http.StatusInternalServerError, e.StatusCode())
	assert.Equal(t, "custom", e.Error())
	assert.Equal(t, "internal_server_error", e.Code)

	base := response.ErrBadRequest.WithDetails(map[string]any{"a": 1})
	merged := base.WithDetails(map[string]any{"b": 2})
	assert.Equal(t, map[string]any{"a": 1}, base.Details, "WithDetails must not mutate the receiver")
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, merged.Details)
	assert.Nil(t, response.ErrBadRequest.Details, "catalogue entries must stay pristine")

	assert.Equal(t, response.ErrNotFound, response.HTTPErrorFor(http.StatusNotFound))
	assert.Equal(t, response.ErrInternalServerError, response.HTTPErrorFor(999))
	assert.Equal(t, "i'm_a_teapot", response.HTTPErrorFor(http.StatusTeapot).Code)
	assert.Equal(t, response.ErrBadRequest, response.ErrBadRequest.WithError(nil))
}
