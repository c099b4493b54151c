// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers shared by page handlers,
// probes, and middleware.
//
// # Architecture
//
// Pages render HTML through the page package. Everything that is not a page
// (probes, redirects, middleware short-circuits) goes through here so that
// status codes and content types stay consistent.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/librarium/internal/platform/constants"
)

// SuccessEnvelope is the JSON envelope for successful probe responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Redirect sends the browser to target with 303 See Other, so a form POST
// is followed by a GET.
func Redirect(writer http.ResponseWriter, request *http.Request, target string) {
	http.Redirect(writer, request, target, http.StatusSeeOther)
}

// Text writes a plain-text response. Used where no page can be rendered.
func Text(writer http.ResponseWriter, statusCode int, message string) {
	writer.Header().Set(constants.HeaderContentType, "text/plain; charset=utf-8")
	writer.Header().Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(statusCode)
	_, _ = writer.Write([]byte(message))
}
