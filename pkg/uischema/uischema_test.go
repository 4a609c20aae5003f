package uischema_test

import (
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/testsupport"
	"github.com/goliatone/go-analysisforms/pkg/uischema"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

func loadBasic(t *testing.T) *uischema.Store {
	t.Helper()
	store, err := uischema.LoadDir("testdata/basic")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return store
}

func TestLoadDir_ParsesAndSanitises(t *testing.T) {
	store := loadBasic(t)

	if diff := cmp.Diff([]string{forms.DataUploadID, forms.MethodSelectionID}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	overlay, ok := store.Form(forms.MethodSelectionID)
	if !ok {
		t.Fatalf("method overlay missing")
	}
	if overlay.Title != "Lab Methods" {
		t.Fatalf("title not stripped: %q", overlay.Title)
	}
	if got := overlay.Fields[forms.MethodWGCNA].Description; got != "Weighted gene co-expression <b>network</b> analysis" {
		t.Fatalf("description not sanitised: %q", got)
	}
	if overlay.Source != "methods.yaml" {
		t.Fatalf("source mismatch: %s", overlay.Source)
	}

	upload, _ := store.Form(forms.DataUploadID)
	if diff := cmp.Diff([]string{"xlsx", "xlsm"}, upload.Fields[forms.DataFileField].Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestDecorator_MethodSelection(t *testing.T) {
	decorator := uischema.NewDecorator(loadBasic(t))

	form := forms.MethodSelection()
	if err := decorator.Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	wgcna, _ := form.Field(forms.MethodWGCNA)
	if wgcna.Label != "WGCNA" {
		t.Fatalf("label not applied: %q", wgcna.Label)
	}
	cov, _ := form.Field(forms.MethodCovariance)
	if cov.Group != forms.GroupCombined {
		t.Fatalf("group not applied: %q", cov.Group)
	}
	action, _ := form.Action()
	if action.Label != "Run analysis" {
		t.Fatalf("action label not applied: %q", action.Label)
	}
	if form.Metadata["group."+forms.GroupCombined] != "Cross data set methods" {
		t.Fatalf("group legend not applied: %v", form.Metadata)
	}

	pristine := forms.MethodSelection()
	if f, _ := pristine.Field(forms.MethodWGCNA); f.Label == "WGCNA" {
		t.Fatalf("catalog definition mutated")
	}
}

func TestDecorator_UploadExtensions(t *testing.T) {
	decorator := uischema.NewDecorator(loadBasic(t))

	form := forms.DataUpload()
	if err := decorator.Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	field, _ := form.Field(forms.DataFileField)
	if field.Label != "Workbook" {
		t.Fatalf("label not applied: %q", field.Label)
	}
	if diff := cmp.Diff([]string{"xlsx", "xlsm"}, field.AllowedExtensions()); diff != "" {
		t.Fatalf("allow-list mismatch (-want +got):\n%s", diff)
	}

	in := validation.Input{Files: map[string][]*multipart.FileHeader{
		forms.DataFileField: {testsupport.FileHeader("macro.XLSM")},
	}}
	if result := validation.Validate(form, in); !result.Valid {
		t.Fatalf("expected xlsm upload to pass, got %v", result.Errors)
	}
}

func TestLoadDir_RejectsInvalidDocuments(t *testing.T) {
	_, err := uischema.LoadDir("testdata/invalid")
	if !errors.Is(err, uischema.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
	if !strings.Contains(err.Error(), "subtitle") {
		t.Fatalf("expected offending property in error, got %v", err)
	}

	_, err = uischema.LoadDir("testdata/duplicate")
	if err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}

	if _, err := uischema.LoadDir("testdata/missing"); err == nil {
		t.Fatalf("expected missing directory error")
	}
}

func TestLoadFS_Empty(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{"README.md": {Data: []byte("notes")}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}

	store, err = uischema.LoadDir("")
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store for empty dir, got %v", err)
	}

	form := forms.DataUpload()
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate with empty store: %v", err)
	}
}

func TestApply_Errors(t *testing.T) {
	form := forms.MethodSelection()
	err := uischema.Apply(&form, uischema.FormOverlay{
		Fields: map[string]uischema.FieldOverlay{"bogus": {Label: "Nope"}},
	})
	if !errors.Is(err, uischema.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	err = uischema.Apply(&form, uischema.FormOverlay{
		Fields: map[string]uischema.FieldOverlay{forms.MethodWGCNA: {Extensions: []string{"xlsx"}}},
	})
	if err == nil {
		t.Fatalf("expected error for extensions on a boolean field")
	}
}

func TestDecorator_RechecksForm(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"upload.yaml": {Data: []byte("forms:\n  custom:\n    title: Custom\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	broken := model.Form{ID: "custom", Method: "POST", Fields: []model.Field{model.Boolean("a", "", true)}}
	if err := uischema.NewDecorator(store).Decorate(&broken); !errors.Is(err, model.ErrActionMissing) {
		t.Fatalf("expected ErrActionMissing, got %v", err)
	}
}

func TestSchemaDocument(t *testing.T) {
	if !strings.Contains(string(uischema.SchemaDocument()), "draft/2020-12") {
		t.Fatalf("unexpected schema document")
	}
}
