// Package forms declares the analysis application's input forms: the method
// selection checkboxes and the spreadsheet upload field. Definitions are
// plain model.Form values built once and handed to request handlers through
// a Catalog.
package forms
