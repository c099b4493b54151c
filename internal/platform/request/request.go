// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and form
reading, so page handlers deal in typed ids and trimmed values.
*/
package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/pkg/convert"
)

/*
ID retrieves a numeric URL parameter from the request.

Returns:
  - int64: the positive id
  - error: apperr.NotFound if the parameter is missing or not a positive number
*/
func ID(request *http.Request, name string) (int64, error) {
	id := convert.ToInt64(chi.URLParam(request, name))
	if id <= 0 {
		return 0, apperr.NotFound("Page")
	}
	return id, nil
}

/*
QueryID reads a numeric query parameter, or 0 when absent or malformed.
*/
func QueryID(request *http.Request, name string) int64 {
	return convert.ToInt64(request.URL.Query().Get(name))
}

/*
FormValue returns the submitted form value for name, or "" when absent.
*/
func FormValue(request *http.Request, name string) string {
	return request.PostFormValue(name)
}

/*
FormIDs returns every submitted value for name as ids.
*/
func FormIDs(request *http.Request, name string) []int64 {
	if err := request.ParseForm(); err != nil {
		return nil
	}
	return convert.ToIDs(request.PostForm[name])
}

/*
PreviousURL resolves where a page returns to after saving or deleting.

The "previousUrl" query or form value wins, then the Referer header. Only a
local path is accepted; anything else yields fallback.
*/
func PreviousURL(request *http.Request, fallback string) string {
	candidates := []string{
		request.URL.Query().Get(constants.FieldPreviousURL),
		request.PostFormValue(constants.FieldPreviousURL),
		refererPath(request),
	}

	for _, candidate := range candidates {
		if IsLocalPath(candidate) {
			return candidate
		}
	}
	return fallback
}

/*
BackURL is the local page the browser came from, or fallback.
*/
func BackURL(request *http.Request, fallback string) string {
	if back := refererPath(request); back != "" {
		return back
	}
	return fallback
}

// formRouteSuffixes mark pages that only exist to submit a form. Once the
// form is done they are never a place to go back to.
var formRouteSuffixes = []string{"/delete", "/edit", "/new"}

/*
refererPath returns the Referer as a local request URI, or "" when it points
to another host or to a form page.
*/
func refererPath(request *http.Request) string {
	referer, err := url.Parse(request.Header.Get(constants.HeaderReferer))
	if err != nil || referer.Host != request.Host {
		return ""
	}
	for _, suffix := range formRouteSuffixes {
		if strings.HasSuffix(strings.TrimRight(referer.Path, "/"), suffix) {
			return ""
		}
	}
	if target := referer.RequestURI(); IsLocalPath(target) {
		return target
	}
	return ""
}

/*
IsLocalPath reports whether target is an absolute path on this site.
*/
func IsLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return false
	}
	parsed, err := url.Parse(target)
	return err == nil && parsed.Scheme == "" && parsed.Host == ""
}
