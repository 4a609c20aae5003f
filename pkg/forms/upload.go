package forms

import (
	"mime/multipart"
	"net/http"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

// DataUploadID identifies the data upload form in a Catalog.
const DataUploadID = "data-upload"

// DataFileField is the name of the upload input.
const DataFileField = "datafile"

// DefaultAllowedExtensions is the spreadsheet allow-list used when no
// override is configured.
var DefaultAllowedExtensions = []string{"xlsx"}

// UploadOption customises the data upload form.
type UploadOption func(*uploadConfig)

type uploadConfig struct {
	extensions []string
	endpoint   string
}

// WithAllowedExtensions replaces the extension allow-list. Empty input keeps
// the default.
func WithAllowedExtensions(extensions ...string) UploadOption {
	return func(cfg *uploadConfig) {
		if normalized := model.NormalizeExtensions(extensions); len(normalized) > 0 {
			cfg.extensions = normalized
		}
	}
}

// WithUploadEndpoint overrides the form's action URL.
func WithUploadEndpoint(endpoint string) UploadOption {
	return func(cfg *uploadConfig) {
		if endpoint != "" {
			cfg.endpoint = endpoint
		}
	}
}

// DataUpload returns the upload form: one required datafile input limited to
// the allow-list, followed by the Upload action.
func DataUpload(options ...UploadOption) model.Form {
	cfg := uploadConfig{
		extensions: append([]string(nil), DefaultAllowedExtensions...),
		endpoint:   "/analysis/upload",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.Form{
		ID:       DataUploadID,
		Title:    "Upload Data",
		Endpoint: cfg.endpoint,
		Method:   http.MethodPost,
		Fields: []model.Field{
			model.File(DataFileField, "", cfg.extensions...),
			model.Submit("Upload"),
		},
	}
}

// DataFile returns the validated upload handle, or nil when the result is
// not valid.
func DataFile(result validation.Result) *multipart.FileHeader {
	if !result.Valid {
		return nil
	}
	return result.Files[DataFileField]
}
