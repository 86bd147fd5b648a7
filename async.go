package replitdb

import (
	"context"
)

// Future is the result of an operation started by [AsyncClient].
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// startFuture runs f in a new goroutine and returns the future of its result.
func startFuture[T any](ctx context.Context, f func(ctx context.Context) (T, error)) (fut *Future[T]) {
	fut = &Future[T]{
		done: make(chan struct{}),
	}

	go func() {
		defer close(fut.done)

		fut.val, fut.err = f(ctx)
	}()

	return fut
}

// Done returns a channel that is closed when the operation has finished.
func (f *Future[T]) Done() (done <-chan struct{}) {
	return f.done
}

// Result blocks until the operation has finished and returns its result.
func (f *Future[T]) Result() (val T, err error) {
	<-f.done

	return f.val, f.err
}

// Wait is like [Future.Result] but stops waiting when ctx is done, in which
// case it returns the error of ctx.  The operation itself is canceled only by
// the context it has been started with.
func (f *Future[T]) Wait(ctx context.Context) (val T, err error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return val, ctx.Err()
	}
}

// GetResult is the result of [AsyncClient.Get].
type GetResult struct {
	// Value is the value of the key.  It is empty if Found is false.
	Value string

	// Found is true if the key exists.
	Found bool
}

// AsyncClient is the non-blocking Replit database client.  Its methods start
// the operation in a new goroutine and return immediately.  The semantics and
// errors of the operations are the same as those of [Client].
type AsyncClient struct {
	client *Client
}

// NewAsyncClient returns a new properly initialized *AsyncClient.  Any error
// returned has the type [*ConfigurationError].
func NewAsyncClient(conf *ClientConfig) (c *AsyncClient, err error) {
	sc, err := NewClient(conf)
	if err != nil {
		return nil, err
	}

	return sc.Async(), nil
}

// Async returns an asynchronous client that shares the configuration and the
// transport with c.
func (c *Client) Async() (ac *AsyncClient) {
	return &AsyncClient{
		client: c,
	}
}

// Sync returns the blocking client that shares the configuration and the
// transport with c.
func (c *AsyncClient) Sync() (sc *Client) {
	return c.client
}

// Get starts [Client.Get].
func (c *AsyncClient) Get(ctx context.Context, key string) (f *Future[GetResult]) {
	return startFuture(ctx, func(ctx context.Context) (res GetResult, err error) {
		res.Value, res.Found, err = c.client.Get(ctx, key)

		return res, err
	})
}

// Set starts [Client.Set].
func (c *AsyncClient) Set(ctx context.Context, key, val string) (f *Future[struct{}]) {
	return startFuture(ctx, func(ctx context.Context) (_ struct{}, err error) {
		return struct{}{}, c.client.Set(ctx, key, val)
	})
}

// Delete starts [Client.Delete].
func (c *AsyncClient) Delete(ctx context.Context, key string) (f *Future[struct{}]) {
	return startFuture(ctx, func(ctx context.Context) (_ struct{}, err error) {
		return struct{}{}, c.client.Delete(ctx, key)
	})
}

// List starts [Client.List].
func (c *AsyncClient) List(ctx context.Context) (f *Future[[]string]) {
	return startFuture(ctx, c.client.List)
}

// ListPrefix starts [Client.ListPrefix].
func (c *AsyncClient) ListPrefix(ctx context.Context, prefix string) (f *Future[[]string]) {
	return startFuture(ctx, func(ctx context.Context) (keys []string, err error) {
		return c.client.ListPrefix(ctx, prefix)
	})
}

// Empty starts [Client.Empty].
func (c *AsyncClient) Empty(ctx context.Context) (f *Future[struct{}]) {
	return startFuture(ctx, func(ctx context.Context) (_ struct{}, err error) {
		return struct{}{}, c.client.Empty(ctx)
	})
}

// GetAll starts [Client.GetAll].
func (c *AsyncClient) GetAll(ctx context.Context) (f *Future[map[string]string]) {
	return startFuture(ctx, c.client.GetAll)
}
