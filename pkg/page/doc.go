// Package page renders a formdef.Form as a standalone HTML page using an
// embedded pongo2 template. Labels may carry inline markup and are passed
// through a bluemonday policy before rendering; every other value is escaped
// by the template engine.
package page
