// Package field models HTML form controls as plain values and implements the
// three form/query operations over them: clamping numeric inputs to their
// declared bounds, copying in-range query parameters into fields, and encoding
// the form state as a query string. Nothing here touches a live document;
// adapters under pkg/htmldoc and pkg/browser reflect the results.
package field
