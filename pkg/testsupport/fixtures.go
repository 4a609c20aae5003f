package testsupport

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
)

// Upload describes one file part of a multipart request fixture.
type Upload struct {
	Field    string
	Filename string
	Content  string
}

// MultipartRequest builds a POST request carrying values and uploads encoded
// as multipart/form-data, the way a browser submits a file form.
func MultipartRequest(t *testing.T, target string, values url.Values, uploads ...Upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, value := range values[key] {
			if err := writer.WriteField(key, value); err != nil {
				t.Fatalf("write field %s: %v", key, err)
			}
		}
	}

	for _, upload := range uploads {
		part, err := writer.CreateFormFile(upload.Field, upload.Filename)
		if err != nil {
			t.Fatalf("create form file %s: %v", upload.Field, err)
		}
		if _, err := part.Write([]byte(upload.Content)); err != nil {
			t.Fatalf("write form file %s: %v", upload.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// FormRequest builds an urlencoded POST request.
func FormRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// FileHeader returns a header carrying only a filename. Validation never opens
// the file, so this is enough for rule tests.
func FileHeader(filename string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: filename}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
