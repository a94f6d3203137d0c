// Package server serves form definitions over HTTP. A form request runs the
// same apply/clamp/serialise sequence a page would run on load; when the
// resulting query differs from the request, the client is redirected to the
// canonical URL, which is the server-side counterpart of replacing the query
// in place.
package server
