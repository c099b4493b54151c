// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"net/http"
	"net/url"

	"github.com/taibuivan/librarium/internal/platform/request"
)

// Mode tells a form page whether it creates or updates.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// State is the per-request state of an edit or delete page. It is fixed once
// built.
type State struct {
	Mode        Mode
	TargetID    int64
	PreviousURL string
}

// NewState builds the state for a page about targetID. A zero id selects
// create mode. fallbackURL is used when the request names no usable
// previous URL.
func NewState(r *http.Request, targetID int64, fallbackURL string) State {
	mode := ModeCreate
	if targetID > 0 {
		mode = ModeUpdate
	}
	return State{
		Mode:        mode,
		TargetID:    targetID,
		PreviousURL: request.PreviousURL(r, fallbackURL),
	}
}

// Method is the API method that persists the form.
func (s State) Method() string {
	if s.Mode == ModeUpdate {
		return http.MethodPut
	}
	return http.MethodPost
}

// Updating reports whether the page edits an existing entity.
func (s State) Updating() bool {
	return s.Mode == ModeUpdate
}

// WithQuery appends key/value pairs to path. Empty values are skipped.
func WithQuery(path string, pairs ...string) string {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			values.Set(pairs[i], pairs[i+1])
		}
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
