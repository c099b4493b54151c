// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package flash

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
)

// Messenger attaches alerts to the browser session through a cookie.
type Messenger struct {
	store  Store
	ttl    time.Duration
	secure bool
	policy *bluemonday.Policy
}

// NewMessenger builds a [Messenger]. secure marks the cookie HTTPS-only.
func NewMessenger(store Store, ttl time.Duration, secure bool) *Messenger {
	return &Messenger{
		store:  store,
		ttl:    ttl,
		secure: secure,
		policy: bluemonday.StrictPolicy(),
	}
}

// Alert queues message for the next page this browser renders. Failures are
// logged; an alert that cannot be stored is dropped.
func (m *Messenger) Alert(writer http.ResponseWriter, request *http.Request, message string) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	message = m.plainText(message)
	if message == "" {
		return
	}

	batchID := m.batchID(request)
	if batchID == "" {
		generated, err := uuid.NewRandom()
		if err != nil {
			logger.WarnContext(ctx, "flash_id_failed", slog.Any("error", err))
			return
		}
		batchID = generated.String()
	}

	if err := m.store.Push(ctx, batchID, message); err != nil {
		logger.WarnContext(ctx, "flash_push_failed", slog.Any("error", err))
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    batchID,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take returns the pending alerts of this browser and clears them. It must
// be called before the response header is written.
func (m *Messenger) Take(writer http.ResponseWriter, request *http.Request) []string {
	batchID := m.batchID(request)
	if batchID == "" {
		return nil
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	ctx := request.Context()
	messages, err := m.store.Pop(ctx, batchID)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "flash_pop_failed", slog.Any("error", err))
		return nil
	}
	return messages
}

// Ping checks the backing store.
func (m *Messenger) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Messenger) batchID(request *http.Request) string {
	cookie, err := request.Cookie(constants.FlashCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

// plainText strips any markup; the result is escaped again when rendered.
func (m *Messenger) plainText(message string) string {
	return strings.TrimSpace(html.UnescapeString(m.policy.Sanitize(message)))
}
