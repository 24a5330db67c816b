package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
)

type methodTyp uint

const (
	mCONNECT methodTyp = 1 << iota
	mDELETE
	mGET
	mHEAD
	mOPTIONS
	mPATCH
	mPOST
	mPUT
	mTRACE
)

var mALL = mCONNECT | mDELETE | mGET | mHEAD |
	mOPTIONS | mPATCH | mPOST | mPUT | mTRACE

var methodMap = map[string]methodTyp{
	http.MethodConnect: mCONNECT,
	http.MethodDelete:  mDELETE,
	http.MethodGet:     mGET,
	http.MethodHead:    mHEAD,
	http.MethodOptions: mOPTIONS,
	http.MethodPatch:   mPATCH,
	http.MethodPost:    mPOST,
	http.MethodPut:     mPUT,
	http.MethodTrace:   mTRACE,
}

var reverseMethodMap = map[methodTyp]string{
	mCONNECT: http.MethodConnect,
	mDELETE:  http.MethodDelete,
	mGET:     http.MethodGet,
	mHEAD:    http.MethodHead,
	mOPTIONS: http.MethodOptions,
	mPATCH:   http.MethodPatch,
	mPOST:    http.MethodPost,
	mPUT:     http.MethodPut,
	mTRACE:   http.MethodTrace,
}

type segTyp uint8

const (
	stStatic   segTyp = iota // /home
	stParam                  // /:user or /:
	stCatchAll               // /*path or /*
)

// segment is one parsed piece of a routing pattern.
type segment struct {
	typ segTyp
	// literal text for static segments, capture name for params ("" = anonymous)
	value string
}

// noChild marks an absent param or catch-all edge. Index 0 is the root,
// which is never anybody's child.
const noChild = 0

// node is one path segment's worth of routing state.
// Children are indexes into Router.nodes.
type node[S any] struct {
	static map[string]int

	param     int
	paramName string

	catchAll     int
	catchAllName string

	endpoints map[methodTyp]*endpoint[S]
}

type endpoint[S any] struct {
	handler handler.Endpoint[S]
	pattern string
}

// param is a captured path parameter, kept in capture order.
type param struct {
	key   string
	value string
}

// parsePattern splits a routing pattern into segments and returns it
// together with its canonical form. Empty segments are dropped.
func parsePattern(pattern string) ([]segment, string, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, "", fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	parts := splitSegments(pattern)
	segs := make([]segment, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		var seg segment
		switch part[0] {
		case ':':
			seg = segment{typ: stParam, value: part[1:]}
		case '*':
			if i != len(parts)-1 {
				return nil, "", fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
			}
			seg = segment{typ: stCatchAll, value: part[1:]}
		default:
			seg = segment{typ: stStatic, value: part}
		}

		if seg.typ != stStatic && seg.value != "" {
			if _, dup := seen[seg.value]; dup {
				return nil, "", fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, seg.value)
			}
			seen[seg.value] = struct{}{}
		}
		segs = append(segs, seg)
	}

	return segs, "/" + strings.Join(parts, "/"), nil
}

// splitSegments splits a path on '/' and drops empty segments.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitPath splits an escaped request path into percent-decoded segments.
// Segments that fail to decode are kept verbatim.
func splitPath(path string) []string {
	segs := splitSegments(path)
	for i, s := range segs {
		if !strings.Contains(s, "%") {
			continue
		}
		if decoded, err := url.PathUnescape(s); err == nil {
			segs[i] = decoded
		}
	}
	return segs
}

// joinPath appends a relative path to a prefix, keeping exactly one '/'
// between them and no trailing '/'.
func joinPath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	path = strings.Trim(path, "/")
	if path == "" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + "/" + path
}
