// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
)

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

/*
TestDo_DecodesSuccess verifies the happy path including the request shape.
*/
func TestDo_DecodesSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/genres/3", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"Poetry"}`, string(body))

		_ = json.NewEncoder(w).Encode(genre{ID: 3, Name: "Poetry"})
	}))
	defer server.Close()

	client := apiclient.New(server.URL, server.Client())
	ctx := ctxutil.WithRequestID(context.Background(), "req-1")

	var out genre
	err := client.Do(ctx, http.MethodPut, "/api/v1/genres/3", map[string]string{"name": "Poetry"}, &out)
	require.NoError(t, err)
	assert.Equal(t, genre{ID: 3, Name: "Poetry"}, out)
}

/*
TestDo_ClassifiesErrors maps error bodies onto AppError.
*/
func TestDo_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		code    string
		message string
		details []apperr.FieldError
	}{
		{
			name: "not_found", status: http.StatusNotFound,
			body: `{"message":"Book with id 9 not found"}`,
			code: apperr.CodeNotFound, message: "Book with id 9 not found",
		},
		{
			name: "validation_map", status: http.StatusBadRequest,
			body: `{"message":"validation","errors":{"title":"too long","authorId":"required"}}`,
			code: apperr.CodeValidation, message: "validation",
			details: []apperr.FieldError{
				{Field: "authorId", Message: "required"},
				{Field: "title", Message: "too long"},
			},
		},
		{
			name: "unparseable_body", status: http.StatusInternalServerError,
			body: `<html>oops</html>`,
			code: apperr.CodeUpstream,
		},
		{
			name: "empty_body", status: http.StatusServiceUnavailable,
			code: apperr.CodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := apiclient.New(server.URL, server.Client())
			err := client.Get(context.Background(), "/api/v1/books/9", &struct{}{})

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			assert.Equal(t, tt.message, ae.Message)
			assert.Equal(t, tt.details, ae.Details)
		})
	}
}

/*
TestDo_TransportFailure reports an unreachable API as UPSTREAM_UNAVAILABLE.
*/
func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := apiclient.New(url, nil)
	err := client.Delete(context.Background(), "/api/v1/genres/1")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeUpstreamUnavailable, ae.Code)
	assert.Empty(t, ae.Message)
	assert.Error(t, client.Ping(context.Background()))
}

/*
TestDo_MalformedSuccessBody treats an undecodable 2xx body as an upstream error.
*/
func TestDo_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	}))
	defer server.Close()

	client := apiclient.New(server.URL, server.Client())
	var out genre
	err := client.Get(context.Background(), "/api/v1/genres/1", &out)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeUpstream, ae.Code)
	assert.NoError(t, client.Ping(context.Background()))
}

/*
TestDo_EmptySuccessBody rejects a 2xx without a body when a result is expected,
and accepts it when none is.
*/
func TestDo_EmptySuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := apiclient.New(server.URL, server.Client())

	var out genre
	err := client.Do(context.Background(), http.MethodPost, "/api/v1/genres", genre{Name: "Poetry"}, &out)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeUpstream, ae.Code)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
	assert.Empty(t, ae.Message)

	assert.NoError(t, client.Do(context.Background(), http.MethodPost, "/api/v1/genres", genre{Name: "Poetry"}, nil))
}
