// Package formdef loads form definitions from JSON or YAML files. A definition
// names a form and lists its controls with their declared bounds, so forms can
// be rendered, served, and synced without an HTML page on disk.
package formdef
