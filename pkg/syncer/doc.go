// Package syncer runs the field operations against a live Document and
// Location. The Syncer reads fields through the Document adapter, computes the
// new state with pkg/field, and writes the result back.
package syncer
