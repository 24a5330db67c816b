package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/binder"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return req
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	assert.True(t, handler.IsClientError(err), "expected a client error, got %T", err)
	return response.StatusOf(err)
}

type createUser struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var got createUser
	err := binder.JSON()(jsonRequest(`{"name":"Ada","email":"ada@example.com","tags":["a","b"]}`), &got)
	require.NoError(t, err)
	assert.Equal(t, createUser{Name: "Ada", Email: "ada@example.com", Tags: []string{"a", "b"}}, got)
}

func TestJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      func() *http.Request
		status   int
		sentinel error
	}{
		{"missing content type", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		}, http.StatusUnsupportedMediaType, binder.ErrMissingContentType},
		{"wrong content type", func() *http.Request {
			req := jsonRequest(`{}`)
			req.Header.Set("Content-Type", "text/plain")
			return req
		}, http.StatusUnsupportedMediaType, binder.ErrUnsupportedMediaType},
		{"empty body", func() *http.Request { return jsonRequest("") }, http.StatusBadRequest, binder.ErrFailedToParseJSON},
		{"malformed", func() *http.Request { return jsonRequest(`{"name":`) }, http.StatusBadRequest, binder.ErrFailedToParseJSON},
		{"unknown field", func() *http.Request { return jsonRequest(`{"admin":true}`) }, http.StatusBadRequest, binder.ErrFailedToParseJSON},
		{"wrong type", func() *http.Request { return jsonRequest(`{"name":42}`) }, http.StatusBadRequest, binder.ErrFailedToParseJSON},
		{"trailing data", func() *http.Request { return jsonRequest(`{"name":"a"}{"name":"b"}`) }, http.StatusBadRequest, binder.ErrFailedToParseJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got createUser
			err := binder.JSON()(tt.req(), &got)
			assert.Equal(t, tt.status, statusOf(t, err))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestJSONWithLimit(t *testing.T) {
	t.Parallel()

	var got createUser
	err := binder.JSONWithLimit(8)(jsonRequest(`{"name":"too long for the limit"}`), &got)
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusOf(t, err))
	assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
}

func TestJSONInvalidTarget(t *testing.T) {
	t.Parallel()

	var got createUser
	err := binder.JSON()(jsonRequest(`{}`), got)
	assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	assert.False(t, handler.IsClientError(err))
}

type search struct {
	Query    string   `query:"q"`
	Page     int      `query:"page"`
	Limit    *uint    `query:"limit"`
	Tags     []string `query:"tags"`
	Active   bool     `query:"active"`
	Ratio    float64
	Internal string `query:"-"`
}

func TestQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?q=go%0Arouter&page=2&limit=50&tags=a,b&tags=c&active=on&ratio=0.5&Internal=x", nil)

	got := search{Internal: "keep"}
	require.NoError(t, binder.Query()(req, &got))

	assert.Equal(t, "gorouter", got.Query, "control characters are stripped")
	assert.Equal(t, 2, got.Page)
	require.NotNil(t, got.Limit)
	assert.Equal(t, uint(50), *got.Limit)
	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
	assert.True(t, got.Active)
	assert.InDelta(t, 0.5, got.Ratio, 0.0001)
	assert.Equal(t, "keep", got.Internal)
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()

	var got search
	err := binder.Query()(httptest.NewRequest(http.MethodGet, "/?page=two", nil), &got)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	assert.Contains(t, err.Error(), "page")

	err = binder.Query()(httptest.NewRequest(http.MethodGet, "/", nil), &[]string{})
	assert.ErrorIs(t, err, binder.ErrInvalidTarget)
}

type signup struct {
	Email  string `form:"email"`
	Age    int    `form:"age"`
	Agreed bool   `form:"agreed"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"email": {"ada@example.com"}, "age": {"36"}, "agreed": {"yes"}}
		req := httptest.NewRequest(http.MethodPost, "/?email=query@example.com", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got signup
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, signup{Email: "ada@example.com", Age: 36, Agreed: true}, got)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("email", "grace@example.com"))
		require.NoError(t, mw.WriteField("age", "85"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var got signup
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "grace@example.com", got.Email)
		assert.Equal(t, 85, got.Age)
	})

	t.Run("json is rejected", func(t *testing.T) {
		t.Parallel()
		var got signup
		err := binder.Form()(jsonRequest(`{}`), &got)
		assert.Equal(t, http.StatusUnsupportedMediaType, statusOf(t, err))
	})
}

type itemPath struct {
	ID   int64  `path:"id"`
	Rest string `path:"rest"`
	Slug string `path:"slug"`
}

func TestPath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/items/7/a/b", nil)
	ctx := handler.NewContext(struct{}{}, req, map[string]string{"id": "7", "rest": "a/b"}, "/items/:id/*rest")

	got := itemPath{Slug: "default"}
	require.NoError(t, binder.Path(ctx)(req, &got))
	assert.Equal(t, itemPath{ID: 7, Rest: "a/b", Slug: "default"}, got)

	bad := handler.NewContext(struct{}{}, req, map[string]string{"id": "seven"}, "/items/:id")
	err := binder.Path(bad)(req, &got)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
}

func TestBind(t *testing.T) {
	t.Parallel()

	type update struct {
		ID    int64  `path:"id" json:"-"`
		Name  string `json:"name"`
		Force bool   `query:"force" json:"-"`
	}

	req := jsonRequest(`{"name":"renamed"}`)
	req.URL.RawQuery = "force=true"
	ctx := handler.NewContext(struct{}{}, req, map[string]string{"id": "3"}, "/items/:id")

	var got update
	require.NoError(t, binder.Bind(req, &got, binder.JSON(), binder.Path(ctx), binder.Query()))
	assert.Equal(t, update{ID: 3, Name: "renamed", Force: true}, got)

	err := binder.Bind(jsonRequest(`nope`), &got, binder.JSON(), binder.Query())
	assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
}
