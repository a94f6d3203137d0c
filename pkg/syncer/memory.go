package syncer

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formsync/pkg/field"
)

// MemoryDocument is a Document backed by a slice. It is useful for tests and
// for callers that keep form state outside any UI.
type MemoryDocument struct {
	mu     sync.Mutex
	fields []field.Field
}

// Ensure MemoryDocument implements Document.
var _ Document = (*MemoryDocument)(nil)

// NewMemoryDocument copies fields into a new document.
func NewMemoryDocument(fields []field.Field) *MemoryDocument {
	return &MemoryDocument{fields: field.Clone(fields)}
}

// Fields implements Document.
func (d *MemoryDocument) Fields(ctx context.Context) ([]field.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return field.Clone(d.fields), nil
}

// Apply implements Document.
func (d *MemoryDocument) Apply(ctx context.Context, fields []field.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(fields) != len(d.fields) {
		return fmt.Errorf("syncer: apply %d fields to document with %d", len(fields), len(d.fields))
	}
	d.fields = field.Clone(fields)
	return nil
}
