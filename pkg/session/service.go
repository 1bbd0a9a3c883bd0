// Package session implements the client-side session facade of the SDK: it
// binds one control-plane session id to a channel pool and turns submission
// intent into ControlPlane RPCs with bounded retry and backoff.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskgrid/pkg/api"
	cpproto "taskgrid/pkg/api/proto"
	"taskgrid/pkg/channel"
)

// State tracks the session lifecycle: Unbound until a session id is known,
// Creating while the one-time CreateSession RPC is in flight, Bound after.
type State int32

const (
	Unbound State = iota
	Creating
	Bound
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Creating:
		return "creating"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

const (
	// DefaultMaxRetries is the client-side submission retry ceiling used when
	// a caller passes a negative value.
	DefaultMaxRetries = 5

	// DefaultSubmitPause is the stock pacing delay applied by SubmitTask
	// before issuing its RPC, so tight client loops do not hammer the control
	// plane. It is deliberate client-side throttling, not a server demand.
	DefaultSubmitPause = 2 * time.Millisecond
)

// RetryConfig tunes the backoff applied between submission retries.
type RetryConfig struct {
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	Jitter         time.Duration
}

// DefaultRetryConfig returns the stock backoff: 500ms doubling up to 30s with
// 100ms of jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		BackoffInitial: 500 * time.Millisecond,
		BackoffMax:     30 * time.Second,
		Jitter:         100 * time.Millisecond,
	}
}

// Service is the user-facing session object. It is safe for use by multiple
// goroutines; the channel pool serializes access to individual connections
// and the bound session id is read-mostly after creation.
type Service struct {
	pool          *channel.Pool
	log           *zap.Logger
	defaults      TaskOptions
	retry         RetryConfig
	maxPerRequest int

	mu        sync.RWMutex
	state     State
	sessionID string
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithLogger replaces the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithDefaultTaskOptions replaces the stock task option defaults.
func WithDefaultTaskOptions(o TaskOptions) Option {
	return func(s *Service) { s.defaults = o }
}

// WithRetryConfig replaces the stock retry backoff.
func WithRetryConfig(r RetryConfig) Option {
	return func(s *Service) { s.retry = r }
}

// WithBatchSize splits submissions larger than n payloads into several RPCs.
// Positional ordering of the returned task ids is preserved. Zero disables
// splitting.
func WithBatchSize(n int) Option {
	return func(s *Service) { s.maxPerRequest = n }
}

// WithSession binds the service to a pre-existing session id, skipping
// CreateSession entirely.
func WithSession(id string) Option {
	return func(s *Service) {
		s.sessionID = id
		s.state = Bound
	}
}

// New builds a Service on top of the given pool. Unless WithSession was
// supplied the service starts Unbound and needs CreateSession or OpenSession
// before any submission.
func New(pool *channel.Pool, opts ...Option) *Service {
	s := &Service{
		pool:     pool,
		log:      zap.L(),
		defaults: DefaultTaskOptions(),
		retry:    DefaultRetryConfig(),
		state:    Unbound,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State reports the current lifecycle state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID reports the bound session id, or "" before binding.
func (s *Service) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// CreateSession issues one CreateSession RPC carrying the default task
// options and the requested partitions, then binds the service to the
// returned id. The RPC is never retried here; a failure surfaces as
// *CreationError and restores whatever binding the service had before, so a
// failed re-creation does not discard a still-valid session id.
func (s *Service) CreateSession(ctx context.Context, partitionIDs []string) (string, error) {
	s.mu.Lock()
	prevState, prevID := s.state, s.sessionID
	s.state = Creating
	s.mu.Unlock()

	req := &cpproto.CreateSessionRequest{
		DefaultTaskOptions: s.defaults.toProto(),
		PartitionIds:       partitionIDs,
	}
	var rep *cpproto.CreateSessionReply
	err := s.pool.WithChannel(ctx, func(c channel.Conn) error {
		r, err := cpproto.NewControlPlaneClient(c).CreateSession(ctx, req)
		rep = r
		return err
	})
	if err != nil {
		s.mu.Lock()
		s.state, s.sessionID = prevState, prevID
		s.mu.Unlock()
		return "", &CreationError{Cause: err}
	}

	s.mu.Lock()
	s.sessionID = rep.GetSessionId()
	s.state = Bound
	s.mu.Unlock()
	s.log.Info("session created",
		zap.String("session", rep.GetSessionId()),
		zap.Strings("partitions", partitionIDs))
	return rep.GetSessionId(), nil
}

// OpenSession binds the service to a session created elsewhere. No RPC is
// issued; calling it again simply replaces the bound id. Callers must not
// race OpenSession against in-flight submissions.
func (s *Service) OpenSession(id string) error {
	if id == "" {
		return fmt.Errorf("open session: empty session id")
	}
	s.mu.Lock()
	s.sessionID = id
	s.state = Bound
	s.mu.Unlock()
	return nil
}

// SubmitTasks submits a batch of independent payloads. The returned task ids
// are positional: ids[i] belongs to payloads[i]. Pass a negative maxRetries
// for the stock ceiling of 5.
func (s *Service) SubmitTasks(ctx context.Context, payloads [][]byte, maxRetries int, override *TaskOptions) ([]string, error) {
	specs := make([]api.TaskSpec, len(payloads))
	for i, p := range payloads {
		specs[i] = api.TaskSpec{Payload: p}
	}
	return s.SubmitTasksWithDependencies(ctx, specs, maxRetries, override)
}

// SubmitTask submits a single payload. It sleeps for pause first as a pacing
// safeguard against tight submission loops; pass DefaultSubmitPause for the
// stock 2ms, or zero to skip the pause.
func (s *Service) SubmitTask(ctx context.Context, payload []byte, pause time.Duration, maxRetries int, override *TaskOptions) (string, error) {
	if err := s.pace(ctx, pause); err != nil {
		return "", err
	}
	ids, err := s.SubmitTasksWithDependencies(ctx, []api.TaskSpec{{Payload: payload}}, maxRetries, override)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// SubmitTaskWithDependencies submits one payload that must wait for the given
// tasks to complete successfully before it starts. The pacing pause works as
// in SubmitTask.
func (s *Service) SubmitTaskWithDependencies(ctx context.Context, payload []byte, dependencies []string, pause time.Duration, maxRetries int, override *TaskOptions) (string, error) {
	if err := s.pace(ctx, pause); err != nil {
		return "", err
	}
	ids, err := s.SubmitTasksWithDependencies(ctx, []api.TaskSpec{{Payload: payload, Dependencies: dependencies}}, maxRetries, override)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// pace sleeps between single-task submissions so tight client loops do not
// hammer the control plane. Zero or negative pause is a no-op.
func (s *Service) pace(ctx context.Context, pause time.Duration) error {
	if pause <= 0 {
		return nil
	}
	select {
	case <-time.After(pause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitTasksWithDependencies is the canonical submission primitive; every
// other submission method reduces to it. Transient transport failures are
// retried up to maxRetries times with backoff, each attempt drawing a
// (possibly different) connection from the pool. Exhausting the retries, or
// hitting a non-transient failure, surfaces as *SubmissionError carrying the
// zero-based index of the first affected payload.
func (s *Service) SubmitTasksWithDependencies(ctx context.Context, specs []api.TaskSpec, maxRetries int, override *TaskOptions) ([]string, error) {
	sid, err := s.boundSession()
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	opts := s.defaults
	if override != nil {
		opts = *override
	}
	po := opts.toProto()
	corr := uuid.NewString()

	step := s.maxPerRequest
	if step <= 0 {
		step = len(specs)
	}
	ids := make([]string, 0, len(specs))
	for start := 0; start < len(specs); start += step {
		end := start + step
		if end > len(specs) {
			end = len(specs)
		}
		reqs := make([]*cpproto.TaskRequest, 0, end-start)
		for _, spec := range specs[start:end] {
			reqs = append(reqs, &cpproto.TaskRequest{
				Payload:      spec.Payload,
				Dependencies: spec.Dependencies,
				TaskOptions:  po,
			})
		}
		req := &cpproto.SubmitTasksRequest{
			SessionId:     sid,
			Requests:      reqs,
			CorrelationId: corr,
		}
		rep, attempts, err := s.submitWithRetry(ctx, req, maxRetries)
		if err != nil {
			return nil, &SubmissionError{SessionID: sid, Index: start, Attempts: attempts, Cause: err}
		}
		if len(rep.GetTaskIds()) != len(reqs) {
			return nil, &SubmissionError{
				SessionID: sid,
				Index:     start,
				Attempts:  attempts,
				Cause:     fmt.Errorf("control plane returned %d task ids for %d requests", len(rep.GetTaskIds()), len(reqs)),
			}
		}
		ids = append(ids, rep.GetTaskIds()...)
	}
	s.log.Debug("tasks submitted",
		zap.String("session", sid),
		zap.String("correlation", corr),
		zap.Int("count", len(ids)))
	return ids, nil
}

func (s *Service) submitWithRetry(ctx context.Context, req *cpproto.SubmitTasksRequest, maxRetries int) (*cpproto.SubmitTasksReply, int, error) {
	var last error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			s.log.Warn("retrying submission",
				zap.String("correlation", req.GetCorrelationId()),
				zap.Int("attempt", attempt),
				zap.Error(last))
			if err := s.waitBackoff(ctx, attempt); err != nil {
				return nil, attempt, err
			}
		}
		var rep *cpproto.SubmitTasksReply
		err := s.pool.WithChannel(ctx, func(c channel.Conn) error {
			r, err := cpproto.NewControlPlaneClient(c).SubmitTasks(ctx, req)
			rep = r
			return err
		})
		if err == nil {
			return rep, attempt + 1, nil
		}
		last = err
		if !transientSubmitFailure(err) {
			return nil, attempt + 1, last
		}
	}
	return nil, maxRetries + 1, last
}

func (s *Service) waitBackoff(ctx context.Context, attempt int) error {
	d := s.backoffDelay(attempt)
	if s.retry.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(s.retry.Jitter)))
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backoffDelay doubles the initial delay once per prior attempt, clamping at
// BackoffMax so large attempt counts cannot overflow the shift into a
// negative duration.
func (s *Service) backoffDelay(attempt int) time.Duration {
	d := s.retry.BackoffInitial
	for i := 1; i < attempt; i++ {
		if s.retry.BackoffMax > 0 && d >= s.retry.BackoffMax {
			break
		}
		next := d << 1
		if next <= d {
			break
		}
		d = next
	}
	if s.retry.BackoffMax > 0 && d > s.retry.BackoffMax {
		d = s.retry.BackoffMax
	}
	return d
}

// GetResult blocks until the task reaches a terminal state and returns the
// produced bytes. A failed task surfaces as *ResultError, an unrecognized id
// as *UnknownTaskError. Result fetches are never retried by the SDK.
func (s *Service) GetResult(ctx context.Context, taskID string) ([]byte, error) {
	sid, err := s.boundSession()
	if err != nil {
		return nil, err
	}
	req := &cpproto.ResultRequest{SessionId: sid, TaskId: taskID}
	var rep *cpproto.ResultReply
	err = s.pool.WithChannel(ctx, func(c channel.Conn) error {
		r, err := cpproto.NewControlPlaneClient(c).GetResult(ctx, req)
		rep = r
		return err
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &UnknownTaskError{TaskID: taskID}
		}
		return nil, fmt.Errorf("get result for task %s: %w", taskID, err)
	}
	switch rep.GetStatus() {
	case cpproto.TaskStatusCompleted:
		return rep.GetPayload(), nil
	case cpproto.TaskStatusError, cpproto.TaskStatusCanceled:
		return nil, &ResultError{SessionID: sid, TaskID: taskID, Message: rep.GetError()}
	default:
		return nil, fmt.Errorf("get result for task %s: non-terminal status %d", taskID, rep.GetStatus())
	}
}

func (s *Service) boundSession() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Bound {
		return "", ErrNotBound
	}
	return s.sessionID, nil
}

// transientSubmitFailure reports whether a submission failure is worth
// retrying on a fresh channel. Caller cancellation and malformed requests are
// not; an overloaded or briefly unreachable control plane is.
func transientSubmitFailure(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return false
	}
}
