package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"
)

// maxTableBatch is the Azure Table Storage limit on entity group transactions
const maxTableBatch = 100

// TableStore implements Store on a single Azure Storage table.
//
// A document's PartitionKey is its collection path with "/" replaced by ":"
// (slashes are not allowed in keys) and its RowKey is the document ID, so the
// documents of one collection share a partition. BatchUpdate relies on that:
// entity group transactions are atomic only within a partition.
type TableStore struct {
	client *aztables.Client
}

// Compile-time verification that *TableStore implements Store
var _ Store = (*TableStore)(nil)

// NewTableStore connects to the table named table, creating it if needed
func NewTableStore(ctx context.Context, connStr, table string) (*TableStore, error) {
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create table service client: %w", err)
	}
	client := svc.NewClient(table)
	if _, err := client.CreateTable(ctx, nil); err != nil && statusCode(err) != http.StatusConflict {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return &TableStore{client: client}, nil
}

// Close is a no-op; the table client holds no long-lived connection
func (s *TableStore) Close() error {
	return nil
}

// Add creates an entity with a random UUID row key
func (s *TableStore) Add(ctx context.Context, collection Path, fields Fields) (string, error) {
	if err := collection.validateCollection(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	payload, err := entityPayload(collection.Doc(id), fields)
	if err != nil {
		return "", err
	}
	if _, err := s.client.AddEntity(ctx, payload, nil); err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return id, nil
}

// Get reads one entity
func (s *TableStore) Get(ctx context.Context, doc Path) (*Document, error) {
	if err := doc.validateDocument(); err != nil {
		return nil, err
	}
	resp, err := s.client.GetEntity(ctx, partitionKey(doc.Parent()), doc.ID(), nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read document %s: %w", doc, err)
	}
	return decodeEntity(doc.Parent(), resp.Value)
}

// Query lists every entity of the collection's partition
func (s *TableStore) Query(ctx context.Context, collection Path, q Query) ([]*Document, error) {
	if err := collection.validateCollection(); err != nil {
		return nil, err
	}
	filter := fmt.Sprintf("PartitionKey eq '%s'", escapeODataString(partitionKey(collection)))
	pager := s.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	docs := []*Document{}
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
		}
		for _, raw := range page.Entities {
			doc, err := decodeEntity(collection, raw)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	sortDocuments(docs, q)
	return docs, nil
}

// Update merges fields into an existing entity; If-Match * makes the
// merge fail with 404 instead of creating the entity
func (s *TableStore) Update(ctx context.Context, doc Path, fields Fields) error {
	if err := doc.validateDocument(); err != nil {
		return err
	}
	payload, err := entityPayload(doc, fields)
	if err != nil {
		return err
	}
	etag := azcore.ETagAny
	_, err = s.client.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{
		IfMatch:    &etag,
		UpdateMode: aztables.UpdateModeMerge,
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, doc)
		}
		return fmt.Errorf("failed to update document %s: %w", doc, err)
	}
	return nil
}

// Delete removes an entity; a missing entity is not an error
func (s *TableStore) Delete(ctx context.Context, doc Path) error {
	if err := doc.validateDocument(); err != nil {
		return err
	}
	if _, err := s.client.DeleteEntity(ctx, partitionKey(doc.Parent()), doc.ID(), nil); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete document %s: %w", doc, err)
	}
	return nil
}

// DeleteAll removes entities one by one. A transaction would fail as a whole
// on any already-deleted entity, which breaks delete idempotency.
func (s *TableStore) DeleteAll(ctx context.Context, docs []Path) error {
	for _, doc := range docs {
		if err := s.Delete(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// BatchUpdate merges all writes in one entity group transaction
func (s *TableStore) BatchUpdate(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	if len(writes) > maxTableBatch {
		return fmt.Errorf("%w: %d writes, limit is %d", ErrBatchTooLarge, len(writes), maxTableBatch)
	}

	pk := ""
	etag := azcore.ETagAny
	actions := make([]aztables.TransactionAction, 0, len(writes))
	for _, w := range writes {
		if err := w.Path.validateDocument(); err != nil {
			return err
		}
		wpk := partitionKey(w.Path.Parent())
		if pk == "" {
			pk = wpk
		} else if wpk != pk {
			return ErrCrossPartitionBatch
		}
		payload, err := entityPayload(w.Path, w.Fields)
		if err != nil {
			return err
		}
		actions = append(actions, aztables.TransactionAction{
			ActionType: aztables.TransactionTypeUpdateMerge,
			Entity:     payload,
			IfMatch:    &etag,
		})
	}

	if _, err := s.client.SubmitTransaction(ctx, actions, nil); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return fmt.Errorf("%w: batch on partition %s", ErrNotFound, pk)
		}
		return fmt.Errorf("failed to submit batch on partition %s: %w", pk, err)
	}
	return nil
}

// ============================================================================
// ENTITY MAPPING
// ============================================================================

// systemProperties are returned by the service but are not document fields
var systemProperties = map[string]bool{
	"PartitionKey": true,
	"RowKey":       true,
	"Timestamp":    true,
}

func partitionKey(collection Path) string {
	return strings.Join(collection, ":")
}

func entityPayload(doc Path, fields Fields) ([]byte, error) {
	encoded, err := encodeFields(fields)
	if err != nil {
		return nil, err
	}
	for name := range encoded {
		if systemProperties[name] {
			return nil, fmt.Errorf("field name %q is reserved", name)
		}
	}
	entity := make(map[string]json.RawMessage, len(encoded)+2)
	for name, raw := range encoded {
		entity[name] = raw
	}
	entity["PartitionKey"], _ = json.Marshal(partitionKey(doc.Parent()))
	entity["RowKey"], _ = json.Marshal(doc.ID())
	return json.Marshal(entity)
}

func decodeEntity(collection Path, raw []byte) (*Document, error) {
	var entity map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode entity in %s: %w", collection, err)
	}

	var rowKey string
	if err := json.Unmarshal(entity["RowKey"], &rowKey); err != nil {
		return nil, fmt.Errorf("entity in %s has no row key: %w", collection, err)
	}

	data := make(map[string]json.RawMessage, len(entity))
	for name, value := range entity {
		// odata.etag, odata.metadata and name@odata.type annotations
		if systemProperties[name] || strings.HasPrefix(name, "odata.") || strings.Contains(name, "@odata.") {
			continue
		}
		data[name] = value
	}

	doc := collection.Doc(rowKey)
	return &Document{ID: rowKey, Path: doc, Data: data}, nil
}

func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func statusCode(err error) int {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}
