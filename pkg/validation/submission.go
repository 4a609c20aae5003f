package validation

import (
	"mime/multipart"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// Submission is the request-scoped state of one form: the bound input and,
// once validated, the result. Create one per request and discard it after
// the response; it is not safe for concurrent use.
type Submission struct {
	form      model.Form
	input     Input
	result    Result
	validated bool
}

// NewSubmission starts an unbound submission for form.
func NewSubmission(form model.Form) *Submission {
	return &Submission{form: form}
}

// Form returns the definition the submission was created for.
func (s *Submission) Form() model.Form {
	return s.form
}

// Bind associates raw input with the form and clears any previous result.
func (s *Submission) Bind(input Input) *Submission {
	s.input = input
	s.result = Result{}
	s.validated = false
	return s
}

// Validate checks the bound input. Calling it again without a new Bind
// returns the same outcome.
func (s *Submission) Validate() bool {
	if !s.validated {
		s.result = Validate(s.form, s.input)
		s.validated = true
	}
	return s.result.Valid
}

// Validated reports whether Validate ran since the last Bind.
func (s *Submission) Validated() bool {
	return s.validated
}

// Result returns the validation outcome, validating first if needed.
func (s *Submission) Result() Result {
	s.Validate()
	return s.result
}

// Bool returns the bound value of a boolean field. Before Bind it reports
// the field's default.
func (s *Submission) Bool(name string) bool {
	if value, ok := s.Result().Bools[name]; ok {
		return value
	}
	return false
}

// File returns the validated upload for a file field.
func (s *Submission) File(name string) *multipart.FileHeader {
	return s.Result().Files[name]
}

// Errors returns the per-field validation errors.
func (s *Submission) Errors() Errors {
	return s.Result().Errors
}
