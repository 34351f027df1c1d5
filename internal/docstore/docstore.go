// Package docstore is a small hierarchical document database abstraction.
//
// Documents live in collections addressed by slash-separated paths of
// alternating collection and document segments, e.g.
//
//	boards/{boardId}/boardLists/{listId}/items/{itemId}
//
// Two hosted backends implement Store: Redis (RedisStore) and Azure Table
// Storage (TableStore).
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a document does not exist
	ErrNotFound = errors.New("document not found")

	// ErrInvalidPath is returned for malformed collection or document paths
	ErrInvalidPath = errors.New("invalid document path")

	// ErrEmptyDocument is returned when writing a document without fields
	ErrEmptyDocument = errors.New("document has no fields")

	// ErrTxConflict is returned when an optimistic transaction kept losing races
	ErrTxConflict = errors.New("transaction conflict")

	// ErrCrossPartitionBatch is returned by backends that can only batch
	// documents of a single collection atomically
	ErrCrossPartitionBatch = errors.New("batch spans more than one collection")

	// ErrBatchTooLarge is returned when a batch exceeds the backend limit
	ErrBatchTooLarge = errors.New("batch too large")
)

// Fields holds the field values of a document write
type Fields map[string]any

// Document is a stored document as read back from a Store
type Document struct {
	ID   string
	Path Path
	Data map[string]json.RawMessage
}

// DataTo decodes the document fields into v using its json tags
func (d *Document) DataTo(v any) error {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", d.Path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.Path, err)
	}
	return nil
}

// Query controls the order documents of a collection are returned in
type Query struct {
	OrderBy    string // Field to sort by; empty keeps ID order
	Descending bool
}

// Write is one merge of a batched update
type Write struct {
	Path   Path
	Fields Fields
}

// Store is a hierarchical document database.
// Implementations must be safe for concurrent use.
type Store interface {
	// Add creates a document in collection with a store-assigned ID
	Add(ctx context.Context, collection Path, fields Fields) (string, error)

	// Get reads one document, returning ErrNotFound if absent
	Get(ctx context.Context, doc Path) (*Document, error)

	// Query reads all documents of a collection in the requested order
	Query(ctx context.Context, collection Path, q Query) ([]*Document, error)

	// Update merges fields into an existing document, returning ErrNotFound if absent
	Update(ctx context.Context, doc Path, fields Fields) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, doc Path) error

	// DeleteAll removes many documents in one call
	DeleteAll(ctx context.Context, docs []Path) error

	// BatchUpdate merges all writes atomically: either every document is
	// updated or none is
	BatchUpdate(ctx context.Context, writes []Write) error

	// Close releases the backend connection
	Close() error
}

// encodeFields JSON-encodes every field value
func encodeFields(fields Fields) (map[string]json.RawMessage, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyDocument
	}
	out := make(map[string]json.RawMessage, len(fields))
	for name, value := range fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}
