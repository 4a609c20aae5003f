// Package uischema loads UI overlays: YAML or JSON documents that retitle
// forms, relabel fields, move checkboxes between groups and change the upload
// allow-list without code edits. Documents are checked against a bundled JSON
// Schema before they are decoded, and the Decorator re-checks every form it
// touches so an overlay can never produce a definition validation would
// reject.
package uischema
