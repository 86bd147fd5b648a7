package replitdb

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Empty implements the [Interface] interface for *Client.  It lists all keys
// and deletes them.  The first failed request stops the operation and its
// error is returned.
func (c *Client) Empty(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.observe(ctx, OpEmpty, start, err) }()

	keys, err := c.List(ctx)
	if err != nil {
		return err
	}

	return forEachKey(ctx, c.maxConc, keys, func(ctx context.Context, _ int, key string) (err error) {
		return c.Delete(ctx, key)
	})
}

// GetAll implements the [Interface] interface for *Client.  It lists all keys
// and fetches their values.  The first failed request stops the operation and
// its error is returned.  If a listed key is missing when its value is
// fetched, the error is [ErrKeyVanished].
func (c *Client) GetAll(ctx context.Context) (kvs map[string]string, err error) {
	start := time.Now()
	defer func() { c.observe(ctx, OpGetAll, start, err) }()

	keys, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return getAll(ctx, c, c.maxConc, keys)
}

// getAll fetches the values of keys from kv.
func getAll(
	ctx context.Context,
	kv Interface,
	maxConc int,
	keys []string,
) (kvs map[string]string, err error) {
	vals := make([]string, len(keys))
	err = forEachKey(ctx, maxConc, keys, func(ctx context.Context, i int, key string) (err error) {
		val, ok, err := kv.Get(ctx, key)
		if err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("key %q: %w", key, ErrKeyVanished)
		}

		vals[i] = val

		return nil
	})
	if err != nil {
		return nil, err
	}

	kvs = make(map[string]string, len(keys))
	for i, key := range keys {
		kvs[key] = vals[i]
	}

	return kvs, nil
}

// keyFunc is called by [forEachKey] for the key at index i.
type keyFunc func(ctx context.Context, i int, key string) (err error)

// forEachKey calls f for every key.  If maxConc is greater than 1, up to
// maxConc calls run in parallel, and the context passed to them is canceled
// after the first error.  Otherwise, the calls are made one by one in order.
// The first error is returned.
func forEachKey(ctx context.Context, maxConc int, keys []string, f keyFunc) (err error) {
	if maxConc <= 1 {
		for i, key := range keys {
			err = f(ctx, i, key)
			if err != nil {
				return err
			}
		}

		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConc)

	started := 0
	for i, key := range keys {
		if gCtx.Err() != nil {
			break
		}

		g.Go(func() (err error) {
			return f(gCtx, i, key)
		})
		started++
	}

	err = g.Wait()
	if err == nil && started < len(keys) {
		// The parent context has been canceled before all keys have been
		// processed.
		return &TransportError{Err: context.Cause(ctx)}
	}

	return err
}
