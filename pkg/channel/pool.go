package channel

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Conn is the subset of *grpc.ClientConn the pool manages. Tests substitute
// in-memory fakes; production code always holds real client connections.
type Conn interface {
	grpc.ClientConnInterface
	Close() error
}

// BuildFunc produces one new connection. The pool calls it whenever a lease
// is requested and no idle connection is available.
type BuildFunc func() (Conn, error)

// ErrPoolClosed is returned by WithChannel after Close.
var ErrPoolClosed = errors.New("channel pool closed")

// Pool shares connections between concurrent callers. Each lease is exclusive
// for the duration of one WithChannel call; a connection is either leased to
// exactly one caller or sitting in the idle set, never both.
type Pool struct {
	build  BuildFunc
	broken func(error) bool
	sem    chan struct{} // nil means unbounded

	mu     sync.Mutex
	idle   []Conn
	closed bool
}

// PoolOption tunes pool construction.
type PoolOption func(*Pool)

// WithCapacity bounds the number of concurrently leased connections. Acquire
// blocks until a lease frees up or the caller's context is done.
func WithCapacity(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.sem = make(chan struct{}, n)
		}
	}
}

// WithBrokenClassifier replaces the default transport-failure detector that
// decides whether a failed connection is evicted instead of recycled.
func WithBrokenClassifier(f func(error) bool) PoolOption {
	return func(p *Pool) { p.broken = f }
}

// NewPool builds an empty pool around the given factory closure. Connections
// are created lazily on first need.
func NewPool(build BuildFunc, opts ...PoolOption) *Pool {
	p := &Pool{build: build, broken: transportBroken}
	for _, o := range opts {
		o(p)
	}
	return p
}

// WithChannel leases a connection, runs fn with exclusive use of it, and
// returns the connection to the idle set on every exit path. fn's error is
// propagated unchanged. A failure classified as a broken transport discards
// the connection instead of recycling it; a later lease builds a fresh one.
func (p *Pool) WithChannel(ctx context.Context, fn func(Conn) error) error {
	if p.sem != nil {
		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c, err := p.acquire()
	if err != nil {
		return err
	}
	err = fn(c)
	p.release(c, err)
	return err
}

func (p *Pool) acquire() (Conn, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		c := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return c, nil
	}
	p.mu.Unlock()
	// Build outside the lock so a slow factory never blocks releases.
	return p.build()
}

func (p *Pool) release(c Conn, err error) {
	if err != nil && p.broken(err) {
		zap.L().Warn("discarding broken channel", zap.Error(err))
		_ = c.Close()
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = c.Close()
		return
	}
	p.idle = append(p.idle, c)
	p.mu.Unlock()
}

// Close closes every idle connection and marks the pool closed. Connections
// leased at the time of the call are closed when their lease returns them.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	var first error
	for _, c := range idle {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// transportBroken reports whether an RPC failure condemns the underlying
// connection. Cancellation and application-level failures keep the channel
// reusable; only a dead transport does not.
func transportBroken(err error) bool {
	s, ok := status.FromError(err)
	if !ok {
		return false
	}
	return s.Code() == codes.Unavailable
}
