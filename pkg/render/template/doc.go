// Package template declares the template engine seam HTML renderers depend
// on. The gotemplate subpackage supplies the pongo2 implementation.
package template
