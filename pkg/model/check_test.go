package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

func validForm() model.Form {
	return model.Form{
		ID:       "sample",
		Endpoint: "/sample",
		Method:   "POST",
		Fields: []model.Field{
			model.Boolean("enabled", "Enabled", true),
			model.File("upload", "", "XLSX", ".csv"),
			model.Submit("Send"),
		},
	}
}

func TestCheck_Valid(t *testing.T) {
	if err := validForm().Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheck_Rejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(*model.Form)
		want   string
	}{
		"duplicate name": {
			mutate: func(f *model.Form) { f.Fields[1].Name = "enabled" },
			want:   `declares field "enabled" twice`,
		},
		"empty name": {
			mutate: func(f *model.Form) { f.Fields[0].Name = " " },
			want:   "has no name",
		},
		"boolean without default": {
			mutate: func(f *model.Form) { f.Fields[0].Default = nil },
			want:   "requires a default",
		},
		"file without required": {
			mutate: func(f *model.Form) { f.Fields[1].Rules = f.Fields[1].Rules[1:] },
			want:   "requires a required rule",
		},
		"file without extensions": {
			mutate: func(f *model.Form) { f.Fields[1].Rules[1] = model.FileAllowed() },
			want:   "at least one extension",
		},
		"unknown kind": {
			mutate: func(f *model.Form) { f.Fields[0].Kind = "select" },
			want:   "unsupported kind",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			err := form.Check()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCheck_ActionCount(t *testing.T) {
	form := validForm()
	form.Fields = form.Fields[:2]
	if err := form.Check(); !errors.Is(err, model.ErrActionMissing) {
		t.Fatalf("expected ErrActionMissing, got %v", err)
	}

	form = validForm()
	form.Fields = append(form.Fields, model.Field{Name: "cancel", Kind: model.FieldKindAction})
	if err := form.Check(); !errors.Is(err, model.ErrActionMissing) {
		t.Fatalf("expected ErrActionMissing for two actions, got %v", err)
	}
}

func TestField_Helpers(t *testing.T) {
	form := validForm()

	upload, ok := form.Field("upload")
	if !ok {
		t.Fatalf("upload field missing")
	}
	if upload.Label != "Upload" {
		t.Fatalf("default label mismatch: %q", upload.Label)
	}
	if diff := cmp.Diff([]string{"xlsx", "csv"}, upload.AllowedExtensions()); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if got := upload.Accept(); got != ".xlsx,.csv" {
		t.Fatalf("accept mismatch: %q", got)
	}
	if got := form.Enctype(); got != model.EnctypeMultipart {
		t.Fatalf("enctype mismatch: %q", got)
	}

	action, ok := form.Action()
	if !ok || action.Name != "submit" {
		t.Fatalf("action mismatch: %#v", action)
	}
}

func TestClone_IsDeep(t *testing.T) {
	form := validForm()
	cloned := form.Clone()

	*cloned.Fields[0].Default = false
	cloned.Fields[1].Rules[1].Params[model.RuleParamExtensions] = "txt"

	if !form.Fields[0].DefaultValue() {
		t.Fatalf("default leaked through clone")
	}
	if diff := cmp.Diff([]string{"xlsx", "csv"}, form.Fields[1].AllowedExtensions()); diff != "" {
		t.Fatalf("rule params leaked through clone (-want +got):\n%s", diff)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"datafile":       "Datafile",
		"std_desc_stats": "Std Desc Stats",
		"maxValue":       "Max Value",
		"":               "",
	}
	for in, want := range cases {
		if got := model.DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
