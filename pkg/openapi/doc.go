// Package openapi describes the forms as an OpenAPI 3 contract so API
// clients and gateways can reason about the submission endpoints without
// scraping the HTML. Export builds the document; Parse reads one back into
// per-form summaries, which the CLI uses to check contracts produced by
// other builds.
package openapi
