package toolapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResult struct {
	Method string          `json:"method"`
	Path   string          `json:"path"`
	Body   json.RawMessage `json:"body"`
}

func echoServer(t *testing.T) (*httptest.Server, *http.Header) {
	t.Helper()
	seen := new(http.Header)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		if len(b) == 0 {
			b = []byte("null")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echoResult{Method: r.Method, Path: r.URL.Path, Body: b})
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestURLJoinsBaseAndPath(t *testing.T) {
	c := New("http://localhost:8080/", "/tools/network/ping")
	assert.Equal(t, "http://localhost:8080/tools/network/ping/run", c.URL("/run"))
}

func TestVerbs(t *testing.T) {
	srv, headers := echoServer(t)
	c := New(srv.URL, "/tools/demo")
	ctx := context.Background()
	payload := map[string]int{"n": 1}

	got, err := Post[echoResult](ctx, c, "/run", payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/tools/demo/run", got.Path)
	assert.JSONEq(t, `{"n":1}`, string(got.Body))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	_, err = uuid.Parse(headers.Get(RequestIDHeader))
	assert.NoError(t, err, "request id should be a uuid")

	got, err = Put[echoResult](ctx, c, "/item", payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.Method)
	assert.JSONEq(t, `{"n":1}`, string(got.Body))

	got, err = Get[echoResult](ctx, c, "/item")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.JSONEq(t, `null`, string(got.Body))

	got, err = Delete[echoResult](ctx, c, "/item")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.Method)
	assert.JSONEq(t, `null`, string(got.Body))
}

func TestPostWithoutDataSendsNoBody(t *testing.T) {
	srv, _ := echoServer(t)
	c := New(srv.URL, "")

	got, err := Post[echoResult](context.Background(), c, "/run", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(got.Body))
}

func TestRequestIDsDiffer(t *testing.T) {
	srv, headers := echoServer(t)
	c := New(srv.URL, "")

	_, err := Get[echoResult](context.Background(), c, "/")
	require.NoError(t, err)
	first := headers.Get(RequestIDHeader)
	_, err = Get[echoResult](context.Background(), c, "/")
	require.NoError(t, err)

	assert.NotEqual(t, first, headers.Get(RequestIDHeader))
}

func TestErrorEnvelopeIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"InvalidValue","message":"Value must be positive"}}`))
	}))
	defer srv.Close()

	_, err := Post[map[string]any](context.Background(), New(srv.URL, "/tools/converters/unit"), "/convert", map[string]any{"value": 0})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "InvalidValue", apiErr.Code)
	assert.Equal(t, "Value must be positive", apiErr.Message)
	assert.Equal(t, "Value must be positive", Detail(err))
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestNonEnvelopeErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Get[map[string]any](context.Background(), New(srv.URL, ""), "/")

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "HTTP 502: Bad Gateway", apiErr.Error())
	assert.Equal(t, "HTTP 502: Bad Gateway", Detail(err))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := Get[map[string]any](context.Background(), New(url, ""), "/")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Err)
}

func TestUndecodableSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("u-tools API"))
	}))
	defer srv.Close()

	_, err := Get[map[string]any](context.Background(), New(srv.URL, ""), "/")

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "decode response")
}
