package binder

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// Fields reads the JSON body and returns the values at the given gjson
// paths, without decoding the whole document into a struct. The body is
// restored, so a full JSON bind may follow. Missing paths yield results
// whose Exists reports false.
//
//	res, err := binder.Fields(r, "type", "payload.id")
//	switch res[0].String() { ... }
func Fields(r *http.Request, paths ...string) ([]gjson.Result, error) {
	body, err := readBody(r, DefaultMaxJSONSize)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, clientError(http.StatusBadRequest, ErrFailedToParseJSON, "invalid JSON")
	}
	return gjson.GetManyBytes(body, paths...), nil
}

// Field is Fields for a single path.
func Field(r *http.Request, path string) (gjson.Result, error) {
	res, err := Fields(r, path)
	if err != nil {
		return gjson.Result{}, err
	}
	return res[0], nil
}
