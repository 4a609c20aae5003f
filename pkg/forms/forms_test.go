package forms_test

import (
	"errors"
	"mime/multipart"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/testsupport"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

func TestMethodSelection_Definition(t *testing.T) {
	form := forms.MethodSelection()
	if err := form.Check(); err != nil {
		t.Fatalf("check: %v", err)
	}

	var names, labels []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
		labels = append(labels, field.Label)
	}
	wantNames := append(append([]string(nil), forms.MethodNames...), "submit")
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	wantLabels := []string{
		"Standard Descriptive Stats",
		"Standard Data Ranking",
		"Weighted Correlation Network Analysis",
		"Standard Covariance",
		"Standard Correlation (Pearson)",
		"Spearman Rank Correlation",
		"Kendall Tau Correlation",
		"Analyze",
	}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{forms.GroupInitial, forms.GroupCombined}, form.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestMethodSelection_EmptyRequestKeepsDefaults(t *testing.T) {
	result := validation.Validate(forms.MethodSelection(), validation.Input{})
	if !result.Valid {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
	for _, name := range forms.MethodNames {
		if !result.Bools[name] {
			t.Fatalf("expected %s to keep default true", name)
		}
	}
	if result.Action != "" {
		t.Fatalf("expected no action, got %q", result.Action)
	}
}

func TestMethodSelection_SubsetProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("unchecked subset is exactly the false set", prop.ForAll(
		func(mask uint8) bool {
			values := url.Values{"submit": {"Analyze"}}
			want := make(map[string]bool, len(forms.MethodNames))
			for idx, name := range forms.MethodNames {
				off := mask&(1<<uint(idx)) != 0
				want[name] = !off
				if !off {
					values.Set(name, "y")
				}
			}

			result := validation.Validate(forms.MethodSelection(), validation.FromValues(values))
			return result.Valid && cmp.Equal(want, result.Bools) && result.Action == "submit"
		},
		gen.UInt8Range(0, 127),
	))

	properties.Property("explicit false values unset options", prop.ForAll(
		func(mask uint8) bool {
			values := url.Values{}
			for idx, name := range forms.MethodNames {
				if mask&(1<<uint(idx)) != 0 {
					values.Set(name, "false")
				} else {
					values.Set(name, "true")
				}
			}
			methods := forms.DecodeMethods(validation.Validate(forms.MethodSelection(), validation.FromValues(values)))
			for idx, name := range forms.MethodNames {
				if methods.Map()[name] == (mask&(1<<uint(idx)) != 0) {
					return false
				}
			}
			return true
		},
		gen.UInt8Range(0, 127),
	))

	properties.TestingRun(t)
}

func TestMethods_Selected(t *testing.T) {
	values := url.Values{
		forms.MethodWGCNA:    {"y"},
		forms.MethodSpearman: {"on"},
	}
	methods := forms.DecodeMethods(validation.Validate(forms.MethodSelection(), validation.FromValues(values)))

	want := forms.Methods{WGCNA: true, Spearman: true}
	if diff := cmp.Diff(want, methods); diff != "" {
		t.Fatalf("methods mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{forms.MethodWGCNA, forms.MethodSpearman}, methods.Selected()); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
}

func TestDataUpload_MissingFile(t *testing.T) {
	req := testsupport.MultipartRequest(t, "/analysis/upload", url.Values{"submit": {"Upload"}})
	input, err := validation.FromRequest(req, 0)
	if err != nil {
		t.Fatalf("from request: %v", err)
	}

	result := validation.Validate(forms.DataUpload(), input)
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected a single error, got %v", result.Errors)
	}
	if !errors.Is(result.Errors, validation.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", result.Errors)
	}
	if forms.DataFile(result) != nil {
		t.Fatalf("expected no file handle on failure")
	}
}

func TestDataUpload_Extensions(t *testing.T) {
	cases := []struct {
		filename string
		valid    bool
	}{
		{filename: "report.xlsx", valid: true},
		{filename: "REPORT.XLSX", valid: true},
		{filename: "archive.2024.Xlsx", valid: true},
		{filename: "report.csv", valid: false},
		{filename: "report.xlsx.csv", valid: false},
		{filename: "xlsx", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			req := testsupport.MultipartRequest(t, "/analysis/upload", nil, testsupport.Upload{
				Field:    forms.DataFileField,
				Filename: tc.filename,
				Content:  "PK",
			})
			input, err := validation.FromRequest(req, 0)
			if err != nil {
				t.Fatalf("from request: %v", err)
			}

			result := validation.Validate(forms.DataUpload(), input)
			if result.Valid != tc.valid {
				t.Fatalf("valid mismatch: want %v, got %v (%v)", tc.valid, result.Valid, result.Errors)
			}
			if tc.valid {
				file := forms.DataFile(result)
				if file == nil || file.Filename != tc.filename {
					t.Fatalf("expected file handle for %s, got %#v", tc.filename, file)
				}
				return
			}
			if !errors.Is(result.Errors, validation.ErrUnsupportedFileType) {
				t.Fatalf("expected ErrUnsupportedFileType, got %v", result.Errors)
			}
		})
	}
}

func TestDataUpload_CustomExtensions(t *testing.T) {
	form := forms.DataUpload(forms.WithAllowedExtensions(".CSV", "xlsx"))
	for _, name := range []string{"a.csv", "b.xlsx"} {
		in := uploadInput(name)
		if result := validation.Validate(form, in); !result.Valid {
			t.Fatalf("%s should be accepted: %v", name, result.Errors)
		}
	}
	if result := validation.Validate(form, uploadInput("c.xls")); result.Valid {
		t.Fatalf("c.xls should be rejected")
	}
}

func TestSubmission_RevalidateIsIdempotent(t *testing.T) {
	sub := validation.NewSubmission(forms.DataUpload()).Bind(uploadInput("report.csv"))

	first := sub.Validate()
	firstErrs := sub.Errors()
	second := sub.Validate()
	if first != second {
		t.Fatalf("validate changed: %v then %v", first, second)
	}
	if firstErrs.Error() != sub.Errors().Error() {
		t.Fatalf("errors changed between calls: %q then %q", firstErrs.Error(), sub.Errors().Error())
	}

	sub.Bind(uploadInput("report.xlsx"))
	if sub.Validated() {
		t.Fatalf("bind should reset validation state")
	}
	if !sub.Validate() {
		t.Fatalf("expected rebinding with xlsx to validate: %v", sub.Errors())
	}
	if sub.File(forms.DataFileField) == nil {
		t.Fatalf("expected file handle after rebinding")
	}
}

func TestCatalog(t *testing.T) {
	catalog, err := forms.NewCatalog(forms.WithUploadOptions(forms.WithAllowedExtensions("csv")))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if diff := cmp.Diff([]string{forms.DataUploadID, forms.MethodSelectionID}, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	upload, err := catalog.Get(forms.DataUploadID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	field, _ := upload.Field(forms.DataFileField)
	if diff := cmp.Diff([]string{"csv"}, field.AllowedExtensions()); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}

	upload.Fields[0].Name = "mutated"
	again, _ := catalog.Get(forms.DataUploadID)
	if again.Fields[0].Name != forms.DataFileField {
		t.Fatalf("catalog definition was mutated through a lookup")
	}

	if _, err := catalog.Get("missing"); err == nil {
		t.Fatalf("expected error for unknown form")
	}
	if _, err := forms.NewCatalog(forms.WithForms(forms.MethodSelection())); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func uploadInput(filename string) validation.Input {
	return validation.Input{
		Files: map[string][]*multipart.FileHeader{
			forms.DataFileField: {testsupport.FileHeader(filename)},
		},
	}
}
