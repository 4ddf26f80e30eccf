// Package source reads seed batches. A batch is a JSON array of records or
// the first sheet of an xlsx workbook with a header row.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tea-backend/internal/models"
)

// ErrNotFound is returned when no batch exists for an entity kind.
var ErrNotFound = errors.New("batch not found")

// Source opens the batch for one entity kind.
type Source interface {
	Open(ctx context.Context, kind models.EntityKind) ([]json.RawMessage, error)
	// Describe names where batches come from, for logs.
	Describe() string
}

// Batch file extensions, in lookup order.
const (
	ExtJSON = ".json"
	ExtXLSX = ".xlsx"
)

// DecodeJSON splits a JSON batch into records. A single object is accepted as
// a batch of one.
func DecodeJSON(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	return records, nil
}

// decode picks the decoder for a file extension.
func decode(kind models.EntityKind, ext string, data []byte) ([]json.RawMessage, error) {
	switch ext {
	case ExtJSON:
		return DecodeJSON(data)
	case ExtXLSX:
		return DecodeXLSX(bytes.NewReader(data), kind)
	default:
		return nil, fmt.Errorf("unsupported batch format %q", ext)
	}
}
