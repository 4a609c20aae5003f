// Package model defines the declarative form definitions consumed by the
// validation and render pipelines. A Form is an ordered list of Field entries;
// each Field carries a kind (boolean, file, action), a label, an optional
// boolean default and the validation rules that apply to it. Rules expose
// canonical identifiers (required, file_allowed) with string parameters so
// renderers can map them onto HTML attributes (for example accept=".xlsx")
// without sacrificing deterministic JSON snapshots.
//
// Forms are built once at startup and treated as immutable values. Use Clone
// before mutating a definition obtained from a shared catalog.
package model
