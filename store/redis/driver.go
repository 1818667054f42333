package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/syssam/graphkv/store"
)

// Driver is a store.Conn implementation backed by Redis.
// Graph sets map onto Redis sets and attribute values onto plain
// string keys; Batch maps onto a MULTI/EXEC transaction.
type Driver struct {
	client redis.UniversalClient
}

// Open connects to the Redis server at addr and returns a Driver.
func Open(addr string) *Driver {
	return NewDriver(redis.NewClient(&redis.Options{Addr: addr}))
}

// NewDriver wraps an existing go-redis client with a Driver.
// The caller keeps ownership of clients it passes in only until
// Close is called on the Driver.
func NewDriver(client redis.UniversalClient) *Driver {
	return &Driver{client: client}
}

// AddToSet implements store.Writer using SADD.
func (d *Driver) AddToSet(ctx context.Context, key, member string) error {
	return d.client.SAdd(ctx, key, member).Err()
}

// RemoveFromSet implements store.Writer using SREM.
func (d *Driver) RemoveFromSet(ctx context.Context, key, member string) error {
	return d.client.SRem(ctx, key, member).Err()
}

// SetMembers implements store.Conn using SMEMBERS.
func (d *Driver) SetMembers(ctx context.Context, key string) ([]string, error) {
	return d.client.SMembers(ctx, key).Result()
}

// GetString implements store.Conn using GET.
// A redis.Nil reply is reported as store.ErrNotFound.
func (d *Driver) GetString(ctx context.Context, key string) (string, error) {
	v, err := d.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	return v, err
}

// MultiGetStrings implements store.Conn using MGET.
func (d *Driver) MultiGetStrings(ctx context.Context, keys ...string) ([]store.Value, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	reply, err := d.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	values := make([]store.Value, len(reply))
	for i, v := range reply {
		if s, ok := v.(string); ok {
			values[i] = store.Value{String: s, Valid: true}
		}
	}
	return values, nil
}

// SetString implements store.Writer using SET without expiry.
func (d *Driver) SetString(ctx context.Context, key, value string) error {
	return d.client.Set(ctx, key, value, 0).Err()
}

// DeleteKey implements store.Writer using DEL.
func (d *Driver) DeleteKey(ctx context.Context, key string) error {
	return d.client.Del(ctx, key).Err()
}

// Batch implements store.Conn using a MULTI/EXEC transaction.
// Writes issued through the callback are queued client-side and
// executed atomically; if the callback errors, nothing is sent.
func (d *Driver) Batch(ctx context.Context, fn func(store.Writer) error) error {
	_, err := d.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return fn(batchWriter{pipe: pipe})
	})
	return err
}

// Close closes the underlying client.
func (d *Driver) Close() error { return d.client.Close() }

// batchWriter queues writes on a transactional pipeline.
// Command errors surface from the EXEC in Driver.Batch.
type batchWriter struct {
	pipe redis.Pipeliner
}

func (w batchWriter) AddToSet(ctx context.Context, key, member string) error {
	w.pipe.SAdd(ctx, key, member)
	return nil
}

func (w batchWriter) RemoveFromSet(ctx context.Context, key, member string) error {
	w.pipe.SRem(ctx, key, member)
	return nil
}

func (w batchWriter) SetString(ctx context.Context, key, value string) error {
	w.pipe.Set(ctx, key, value, 0)
	return nil
}

func (w batchWriter) DeleteKey(ctx context.Context, key string) error {
	w.pipe.Del(ctx, key)
	return nil
}

var (
	_ store.Conn   = (*Driver)(nil)
	_ store.Writer = batchWriter{}
)
