// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
)

// Sender issues one JSON request against the catalog API.
type Sender interface {
	Do(ctx context.Context, method, path string, in, out any) error
}

// SubmitRequest describes one form submission.
type SubmitRequest struct {
	Method  string
	URL     string
	Payload any

	// FallbackField receives messages that name no field.
	FallbackField string
	// SaveError is shown when the response carries no usable message.
	SaveError string
}

// Submit sends req and decodes a successful response into a new T.
//
// On failure it returns nil after showing the failure on errs: a 400 with a
// field map shows one error per field, a response with a message shows it
// on the fallback field, anything else shows SaveError there. A 2xx without
// a body is a failure too.
func Submit[T any](ctx context.Context, sender Sender, req SubmitRequest, errs *Errors) *T {
	var out T
	err := sender.Do(ctx, req.Method, req.URL, req.Payload, &out)
	if err == nil {
		return &out
	}

	ctxutil.GetLogger(ctx).WarnContext(ctx, "form_submit_failed",
		slog.String("api_method", req.Method),
		slog.String("api_path", req.URL),
		slog.Any("error", err),
	)

	ae := apperr.As(err)
	switch {
	case ae != nil && ae.HTTPStatus == http.StatusBadRequest && len(ae.Details) > 0:
		errs.Apply(ae.Details)
	case ae != nil && ae.Message != "" && ae.Code != apperr.CodeInternal:
		errs.ShowFieldError(req.FallbackField, ae.Message)
	default:
		errs.ShowFieldError(req.FallbackField, req.SaveError)
	}
	return nil
}
