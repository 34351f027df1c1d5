package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key the Redis backend writes
const DefaultKeyPrefix = "madboard"

// maxTxRetries bounds optimistic WATCH/MULTI retries
const maxTxRetries = 5

// RedisStore implements Store on Redis.
//
// Each document is a hash at {prefix}:{docPath} whose fields hold
// JSON-encoded values. Each collection is a set at {prefix}:{collectionPath}
// listing the IDs of its documents.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// Compile-time verification that *RedisStore implements Store
var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and namespaces all keys with prefix
func NewRedisStore(opts *redis.Options, prefix string) *RedisStore {
	return NewRedisStoreFromClient(redis.NewClient(opts), prefix)
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Ping verifies Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Client exposes the underlying Redis client so other components
// (e.g. event publishing) can share the connection
func (s *RedisStore) Client() *redis.Client {
	return s.rdb
}

func (s *RedisStore) key(p Path) string {
	return s.prefix + ":" + p.String()
}

// Add creates a document with a random UUID
func (s *RedisStore) Add(ctx context.Context, collection Path, fields Fields) (string, error) {
	if err := collection.validateCollection(); err != nil {
		return "", err
	}
	encoded, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	doc := collection.Doc(id)

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key(doc), toHash(encoded))
		pipe.SAdd(ctx, s.key(collection), id)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return id, nil
}

// Get reads a document
func (s *RedisStore) Get(ctx context.Context, doc Path) (*Document, error) {
	if err := doc.validateDocument(); err != nil {
		return nil, err
	}
	hash, err := s.rdb.HGetAll(ctx, s.key(doc)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", doc, err)
	}
	// HGetAll returns an empty map for missing keys
	if len(hash) == 0 {
		return nil, ErrNotFound
	}
	return fromHash(doc, hash), nil
}

// Query reads every document of a collection
func (s *RedisStore) Query(ctx context.Context, collection Path, q Query) ([]*Document, error) {
	if err := collection.validateCollection(); err != nil {
		return nil, err
	}
	ids, err := s.rdb.SMembers(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return []*Document{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.key(collection.Doc(id)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	docs := make([]*Document, 0, len(ids))
	for i, cmd := range cmds {
		hash := cmd.Val()
		// The index can briefly point at a document removed by a concurrent delete
		if len(hash) == 0 {
			continue
		}
		docs = append(docs, fromHash(collection.Doc(ids[i]), hash))
	}

	sortDocuments(docs, q)
	return docs, nil
}

// Update merges fields into an existing document
func (s *RedisStore) Update(ctx context.Context, doc Path, fields Fields) error {
	return s.BatchUpdate(ctx, []Write{{Path: doc, Fields: fields}})
}

// BatchUpdate merges all writes in one MULTI/EXEC after checking, under
// WATCH, that every target document exists
func (s *RedisStore) BatchUpdate(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	keys := make([]string, len(writes))
	hashes := make([]map[string]any, len(writes))
	for i, w := range writes {
		if err := w.Path.validateDocument(); err != nil {
			return err
		}
		encoded, err := encodeFields(w.Fields)
		if err != nil {
			return err
		}
		keys[i] = s.key(w.Path)
		hashes[i] = toHash(encoded)
	}

	txf := func(tx *redis.Tx) error {
		for i, key := range keys {
			n, err := tx.Exists(ctx, key).Result()
			if err != nil {
				return fmt.Errorf("failed to check document %s: %w", writes[i].Path, err)
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", ErrNotFound, writes[i].Path)
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, key := range keys {
				pipe.HSet(ctx, key, hashes[i])
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.rdb.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTxConflict
}

// Delete removes a document and its collection index entry
func (s *RedisStore) Delete(ctx context.Context, doc Path) error {
	return s.DeleteAll(ctx, []Path{doc})
}

// DeleteAll removes many documents in one MULTI/EXEC
func (s *RedisStore) DeleteAll(ctx context.Context, docs []Path) error {
	if len(docs) == 0 {
		return nil
	}
	for _, doc := range docs {
		if err := doc.validateDocument(); err != nil {
			return err
		}
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, doc := range docs {
			pipe.Del(ctx, s.key(doc))
			pipe.SRem(ctx, s.key(doc.Parent()), doc.ID())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %d documents: %w", len(docs), err)
	}
	return nil
}

func toHash(encoded map[string]json.RawMessage) map[string]any {
	hash := make(map[string]any, len(encoded))
	for name, raw := range encoded {
		hash[name] = string(raw)
	}
	return hash
}

func fromHash(doc Path, hash map[string]string) *Document {
	data := make(map[string]json.RawMessage, len(hash))
	for name, value := range hash {
		data[name] = json.RawMessage(value)
	}
	return &Document{ID: doc.ID(), Path: doc, Data: data}
}
