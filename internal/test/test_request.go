package test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type GenericPayload map[string]any
type GenericArrayPayload []any

func (g GenericPayload) Reader(t *testing.T) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(g)
	require.NoError(t, err, "failed to serialize payload")

	return bytes.NewReader(b)
}

func PerformRequestWithParams(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header, queryParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		return PerformRequestWithRawBody(t, s, method, path, nil, headers, queryParams)
	}

	return PerformRequestWithRawBody(t, s, method, path, body.Reader(t), headers, queryParams)
}

func PerformRequestWithRawBody(t *testing.T, s *api.Server, method string, path string, body io.Reader, headers http.Header, queryParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)

	if headers != nil {
		req.Header = headers
	}
	if body != nil && len(req.Header.Get(echo.HeaderContentType)) == 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	if queryParams != nil {
		q := req.URL.Query()
		for k, v := range queryParams {
			q.Add(k, v)
		}

		req.URL.RawQuery = q.Encode()
	}

	res := httptest.NewRecorder()

	s.Echo.ServeHTTP(res, req)

	return res
}

func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	return PerformRequestWithParams(t, s, method, path, body, headers, nil)
}

func PerformRequestWithArray(t *testing.T, s *api.Server, method string, path string, body GenericArrayPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		return PerformRequestWithRawBody(t, s, method, path, nil, headers, nil)
	}

	b, err := json.Marshal(body)
	require.NoError(t, err, "failed to serialize payload")

	return PerformRequestWithRawBody(t, s, method, path, bytes.NewReader(b), headers, nil)
}

// MultipartFile is a file part of a multipart request.
type MultipartFile struct {
	Field    string
	Filename string
	Content  []byte
}

// PerformMultipartRequest sends fields and files as multipart/form-data.
func PerformMultipartRequest(t *testing.T, s *api.Server, method string, path string, fields map[string]string, files []MultipartFile, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	if headers == nil {
		headers = http.Header{}
	}
	headers.Set(echo.HeaderContentType, w.FormDataContentType())

	return PerformRequestWithRawBody(t, s, method, path, &buf, headers, nil)
}

func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoErrorf(t, json.NewDecoder(res.Result().Body).Decode(v), "failed to parse response body: %s", res.Body.String())
}

func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v runtime.Validatable) {
	t.Helper()

	ParseResponseBody(t, res, v)

	require.NoError(t, v.Validate(strfmt.Default), "failed to validate response")
}

func HeadersWithAuth(t *testing.T, token string) http.Header {
	t.Helper()

	return HeadersWithConfigurableAuth(t, "Bearer", token)
}

func HeadersWithConfigurableAuth(t *testing.T, scheme string, token string) http.Header {
	t.Helper()

	headers := http.Header{}
	headers.Set(echo.HeaderAuthorization, scheme+" "+token)

	return headers
}

// RequireHTTPError asserts that res carries the public error body of expected.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, expected *httperrors.HTTPError) {
	t.Helper()

	require.Equalf(t, int(*expected.Code), res.Result().StatusCode, "unexpected status, body: %s", res.Body.String())

	var body types.PublicHTTPError
	ParseResponseBody(t, res, &body)
	require.NotNil(t, body.Type)
	require.Equal(t, *expected.Type, *body.Type)
	require.NotNil(t, body.Title)
	require.Equal(t, *expected.Title, *body.Title)
}
