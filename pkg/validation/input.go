package validation

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxMemory bounds the multipart bytes kept in memory; larger parts
// spill to temporary files managed by net/http.
const DefaultMaxMemory int64 = 32 << 20

// Input carries the raw values a host collected for one request.
type Input struct {
	Values url.Values
	Files  map[string][]*multipart.FileHeader
}

// Empty reports whether nothing was submitted. Binding an empty input keeps
// every field at its default.
func (in Input) Empty() bool {
	return len(in.Values) == 0 && len(in.Files) == 0
}

// Has reports whether name appears among values or files.
func (in Input) Has(name string) bool {
	if _, ok := in.Values[name]; ok {
		return true
	}
	_, ok := in.Files[name]
	return ok
}

// File returns the first file part posted under name.
func (in Input) File(name string) *multipart.FileHeader {
	files := in.Files[name]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// FromValues wraps already decoded form values.
func FromValues(values url.Values) Input {
	return Input{Values: values}
}

// FromRequest collects the submitted values from r. GET and HEAD requests
// carry no submission and return an empty Input, so a query string such as
// ?group=initial leaves every field at its default. Other methods parse an
// urlencoded or multipart body.
func FromRequest(r *http.Request, maxMemory int64) (Input, error) {
	if r == nil {
		return Input{}, errors.New("validation: request is required")
	}
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}

	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return Input{}, nil
	}

	if isMultipart(r.Header.Get("Content-Type")) {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return Input{}, fmt.Errorf("validation: parse multipart form: %w", err)
		}
		in := Input{Values: url.Values{}}
		if r.MultipartForm != nil {
			for key, values := range r.MultipartForm.Value {
				in.Values[key] = append([]string(nil), values...)
			}
			if len(r.MultipartForm.File) > 0 {
				in.Files = make(map[string][]*multipart.FileHeader, len(r.MultipartForm.File))
				for key, files := range r.MultipartForm.File {
					in.Files[key] = append([]*multipart.FileHeader(nil), files...)
				}
			}
		}
		return in, nil
	}

	if err := r.ParseForm(); err != nil {
		return Input{}, fmt.Errorf("validation: parse form: %w", err)
	}
	return Input{Values: r.PostForm}, nil
}

func isMultipart(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, "multipart/form-data")
}
