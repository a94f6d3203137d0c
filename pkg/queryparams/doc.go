// Package queryparams derives form definitions from the query parameters of an
// OpenAPI operation. Numeric schema bounds become field min/max attributes, so
// an API's declared limits drive the same clamping and query sync as a
// hand-written form. kin-openapi stays behind this package.
package queryparams
