package handler

import (
	"fmt"
	"reflect"
	"strconv"
)

// ParamType lists the types a path parameter can be parsed into.
type ParamType interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ParamLookup is implemented by any context carrying path parameters.
type ParamLookup interface {
	LookupParam(key string) (string, bool)
}

// ParamAs looks up a path parameter and parses it into T.
// It fails with a ClientError wrapping ErrParamMissing or ErrParamInvalid.
//
//	id, err := handler.ParamAs[int64](ctx, "id")
//	if err != nil {
//		return response.Error(err)
//	}
func ParamAs[T ParamType](ctx ParamLookup, key string) (T, error) {
	var zero T

	raw, ok := ctx.LookupParam(key)
	if !ok {
		return zero, ClientError{Err: fmt.Errorf("%w: %s", ErrParamMissing, key)}
	}

	v, err := parseParam[T](raw)
	if err != nil {
		return zero, ClientError{Err: fmt.Errorf("%w: %s=%q: %v", ErrParamInvalid, key, raw, err)}
	}
	return v, nil
}

func parseParam[T ParamType](raw string) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}
		rv.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return out, err
		}
		rv.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, rv.Type().Bits())
		if err != nil {
			return out, err
		}
		rv.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, rv.Type().Bits())
		if err != nil {
			return out, err
		}
		rv.SetFloat(v)
	}
	return out, nil
}
