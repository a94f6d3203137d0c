package syncer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/location"
)

// Document is the adapter a Syncer reads fields from and writes values to.
// Fields must be returned in document order; Apply receives the full slice with
// updated values in the same order.
type Document interface {
	Fields(ctx context.Context) ([]field.Field, error)
	Apply(ctx context.Context, fields []field.Field) error
}

var errNilDocument = errors.New("syncer: document is nil")
var errNilLocation = errors.New("syncer: location is nil")

// Syncer wires the field operations to a Document and a Location.
type Syncer struct {
	logger            *zap.Logger
	clampBeforeUpdate bool
}

// New constructs a Syncer.
func New(options ...Option) *Syncer {
	s := &Syncer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = s.logger.Named("syncer")
	return s
}

// Clamp clips every numeric input in doc to its bounds and reports whether any
// value changed. Fields that cannot be parsed are skipped and logged.
func (s *Syncer) Clamp(ctx context.Context, doc Document) (bool, error) {
	result, err := s.clamp(ctx, doc)
	if err != nil {
		return false, err
	}
	return result.Changed, nil
}

// ClampDetailed is Clamp with the full result.
func (s *Syncer) ClampDetailed(ctx context.Context, doc Document) (field.ClampResult, error) {
	return s.clamp(ctx, doc)
}

func (s *Syncer) clamp(ctx context.Context, doc Document) (field.ClampResult, error) {
	if doc == nil {
		return field.ClampResult{}, errNilDocument
	}
	fields, err := doc.Fields(ctx)
	if err != nil {
		return field.ClampResult{}, fmt.Errorf("syncer: read fields: %w", err)
	}

	updated, result := field.Clamp(fields)
	for _, skip := range result.Skipped {
		if errors.Is(skip.Reason, field.ErrEmptyValue) {
			continue
		}
		s.logger.Debug("clamp skipped field", zap.String("field", skip.ID), zap.Error(skip.Reason))
	}
	if !result.Changed {
		return result, nil
	}
	for _, change := range result.Changes {
		s.logger.Debug("clamped field",
			zap.String("field", change.ID),
			zap.String("from", change.From),
			zap.String("to", change.To),
		)
	}
	if err := doc.Apply(ctx, updated); err != nil {
		return result, fmt.Errorf("syncer: apply clamped values: %w", err)
	}
	return result, nil
}

// ApplyQuery copies in-range values from loc's query string into the fields of
// doc whose id matches the parameter name.
func (s *Syncer) ApplyQuery(ctx context.Context, doc Document, loc location.Location) (field.ApplyResult, error) {
	if doc == nil {
		return field.ApplyResult{}, errNilDocument
	}
	if loc == nil {
		return field.ApplyResult{}, errNilLocation
	}
	search, err := loc.Search(ctx)
	if err != nil {
		return field.ApplyResult{}, fmt.Errorf("syncer: read query: %w", err)
	}
	fields, err := doc.Fields(ctx)
	if err != nil {
		return field.ApplyResult{}, fmt.Errorf("syncer: read fields: %w", err)
	}

	updated, result := field.ApplyQuery(fields, search)
	for _, rejected := range result.Rejected {
		s.logger.Debug("query parameter rejected",
			zap.String("field", rejected.Key),
			zap.String("value", rejected.Value),
			zap.Error(rejected.Reason),
		)
	}
	if len(result.Applied) == 0 {
		return result, nil
	}
	if err := doc.Apply(ctx, updated); err != nil {
		return result, fmt.Errorf("syncer: apply query values: %w", err)
	}
	return result, nil
}

// UpdateQuery serialises the form fields of doc and replaces loc's query
// string with the result. It returns the query without the leading "?".
func (s *Syncer) UpdateQuery(ctx context.Context, doc Document, loc location.Location) (string, error) {
	if doc == nil {
		return "", errNilDocument
	}
	if loc == nil {
		return "", errNilLocation
	}
	if s.clampBeforeUpdate {
		if _, err := s.clamp(ctx, doc); err != nil {
			return "", err
		}
	}
	fields, err := doc.Fields(ctx)
	if err != nil {
		return "", fmt.Errorf("syncer: read fields: %w", err)
	}

	query := field.EncodeQuery(fields)
	if err := loc.ReplaceQuery(ctx, "?"+query); err != nil {
		return "", fmt.Errorf("syncer: replace query: %w", err)
	}
	s.logger.Debug("query updated", zap.String("query", query))
	return query, nil
}

// Sync runs the usual page-load sequence: apply the query, clamp, then write
// the canonical query back.
func (s *Syncer) Sync(ctx context.Context, doc Document, loc location.Location) (string, error) {
	if _, err := s.ApplyQuery(ctx, doc, loc); err != nil {
		return "", err
	}
	if _, err := s.clamp(ctx, doc); err != nil {
		return "", err
	}
	return s.UpdateQuery(ctx, doc, loc)
}
