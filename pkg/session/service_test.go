package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskgrid/pkg/api"
	cpproto "taskgrid/pkg/api/proto"
	"taskgrid/pkg/channel"
)

// fakeControlPlane scripts ControlPlane replies behind the channel.Conn
// interface so the whole submission path runs without a network.
type fakeControlPlane struct {
	mu          sync.Mutex
	nextTask    int
	createCalls int
	submitCalls int
	resultCalls int

	failSubmits int   // fail this many submissions before succeeding
	submitErr   error // error to fail them with

	lastCreate *cpproto.CreateSessionRequest
	lastSubmit *cpproto.SubmitTasksRequest
	results    map[string]*cpproto.ResultReply
}

func (f *fakeControlPlane) Invoke(ctx context.Context, method string, args, reply any, _ ...grpc.CallOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch method {
	case cpproto.ControlPlane_CreateSession_FullMethodName:
		f.createCalls++
		f.lastCreate = args.(*cpproto.CreateSessionRequest)
		reply.(*cpproto.CreateSessionReply).SessionId = "sess-1"
		return nil
	case cpproto.ControlPlane_SubmitTasks_FullMethodName:
		f.submitCalls++
		if f.failSubmits > 0 {
			f.failSubmits--
			return f.submitErr
		}
		req := args.(*cpproto.SubmitTasksRequest)
		f.lastSubmit = req
		rep := reply.(*cpproto.SubmitTasksReply)
		for range req.GetRequests() {
			rep.TaskIds = append(rep.TaskIds, fmt.Sprintf("task-%d", f.nextTask))
			f.nextTask++
		}
		return nil
	case cpproto.ControlPlane_GetResult_FullMethodName:
		f.resultCalls++
		req := args.(*cpproto.ResultRequest)
		r, ok := f.results[req.GetTaskId()]
		if !ok {
			return status.Error(codes.NotFound, "no such task")
		}
		*reply.(*cpproto.ResultReply) = *r
		return nil
	default:
		return status.Error(codes.Unimplemented, method)
	}
}

func (f *fakeControlPlane) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, _ ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("streams not supported")
}

func (f *fakeControlPlane) Close() error { return nil }

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeControlPlane) {
	t.Helper()
	cp := &fakeControlPlane{results: make(map[string]*cpproto.ResultReply)}
	pool := channel.NewPool(func() (channel.Conn, error) { return cp, nil })
	t.Cleanup(func() { pool.Close() })
	opts = append([]Option{WithRetryConfig(RetryConfig{BackoffInitial: time.Millisecond})}, opts...)
	return New(pool, opts...), cp
}

func TestCreateSessionBinds(t *testing.T) {
	svc, cp := newTestService(t)
	if svc.State() != Unbound {
		t.Fatalf("expected Unbound before creation, got %v", svc.State())
	}
	id, err := svc.CreateSession(context.Background(), []string{"gpu"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "sess-1" || svc.SessionID() != "sess-1" || svc.State() != Bound {
		t.Fatalf("bad binding: id=%q state=%v", svc.SessionID(), svc.State())
	}
	if got := cp.lastCreate.GetPartitionIds(); len(got) != 1 || got[0] != "gpu" {
		t.Fatalf("partition ids not forwarded: %v", got)
	}
	if cp.lastCreate.GetDefaultTaskOptions().GetMaxDurationMs() != 40000 {
		t.Fatalf("default task options not carried on CreateSession")
	}
}

func TestCreateSessionFailureNotRetried(t *testing.T) {
	dead := channel.NewPool(func() (channel.Conn, error) {
		return nil, errors.New("endpoint unreachable")
	})
	defer dead.Close()
	svc := New(dead)
	_, err := svc.CreateSession(context.Background(), nil)
	var ce *CreationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CreationError, got %v", err)
	}
	if svc.State() != Unbound {
		t.Fatalf("failed creation must leave the service Unbound, got %v", svc.State())
	}
}

func TestSubmitRequiresBound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SubmitTasks(context.Background(), [][]byte{{1}}, -1, nil)
	if !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}
	if _, err := svc.GetResult(context.Background(), "task-0"); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound from GetResult, got %v", err)
	}
	// An empty batch is not a loophole around the bound check.
	if _, err := svc.SubmitTasks(context.Background(), nil, -1, nil); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound for an empty batch on an unbound service, got %v", err)
	}
}

func TestCreateSessionFailureKeepsPriorBinding(t *testing.T) {
	dead := channel.NewPool(func() (channel.Conn, error) {
		return nil, errors.New("endpoint unreachable")
	})
	defer dead.Close()
	svc := New(dead)
	if err := svc.OpenSession("s-old"); err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err := svc.CreateSession(context.Background(), nil)
	var ce *CreationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CreationError, got %v", err)
	}
	if svc.State() != Bound || svc.SessionID() != "s-old" {
		t.Fatalf("failed re-creation must keep the prior binding, got %v/%q", svc.State(), svc.SessionID())
	}
}

func TestOpenSessionIdempotentAndRPCFree(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open s1: %v", err)
	}
	if err := svc.OpenSession("s2"); err != nil {
		t.Fatalf("open s2: %v", err)
	}
	if svc.SessionID() != "s2" {
		t.Fatalf("expected rebind to s2, got %q", svc.SessionID())
	}
	if cp.createCalls != 0 || cp.submitCalls != 0 {
		t.Fatalf("OpenSession must not issue RPCs (create=%d submit=%d)", cp.createCalls, cp.submitCalls)
	}
	if err := svc.OpenSession(""); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

func TestSubmitTasksPositionalOrdering(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	payloads := [][]byte{{0x01}, {0x02}, {0x03}}
	ids, err := svc.SubmitTasks(context.Background(), payloads, -1, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(ids) != len(payloads) {
		t.Fatalf("expected %d ids, got %d", len(payloads), len(ids))
	}
	for i, id := range ids {
		if id != fmt.Sprintf("task-%d", i) {
			t.Fatalf("id %d out of order: %q", i, id)
		}
	}
	for i, req := range cp.lastSubmit.GetRequests() {
		if string(req.GetPayload()) != string(payloads[i]) {
			t.Fatalf("payload %d reordered on the wire", i)
		}
	}
}

func TestDependenciesForwardedInOrder(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	id0, err := svc.SubmitTaskWithDependencies(context.Background(), []byte("a"), nil, 0, -1, nil)
	if err != nil {
		t.Fatalf("submit a: %v", err)
	}
	id1, err := svc.SubmitTaskWithDependencies(context.Background(), []byte("b"), []string{id0}, 0, -1, nil)
	if err != nil {
		t.Fatalf("submit b: %v", err)
	}
	specs := []api.TaskSpec{{Payload: []byte("c"), Dependencies: []string{id0, id1}}}
	if _, err := svc.SubmitTasksWithDependencies(context.Background(), specs, -1, nil); err != nil {
		t.Fatalf("submit c: %v", err)
	}
	deps := cp.lastSubmit.GetRequests()[0].GetDependencies()
	if len(deps) != 2 || deps[0] != id0 || deps[1] != id1 {
		t.Fatalf("dependency order lost: %v", deps)
	}
}

func TestRetryCeiling(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	transient := status.Error(codes.Unavailable, "try again")

	cp.mu.Lock()
	cp.failSubmits, cp.submitErr, cp.submitCalls = 2, transient, 0
	cp.mu.Unlock()
	if _, err := svc.SubmitTasks(context.Background(), [][]byte{{1}}, 2, nil); err != nil {
		t.Fatalf("maxRetries=2 should absorb 2 failures: %v", err)
	}
	if cp.submitCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", cp.submitCalls)
	}

	cp.mu.Lock()
	cp.failSubmits, cp.submitCalls = 2, 0
	cp.mu.Unlock()
	_, err := svc.SubmitTasks(context.Background(), [][]byte{{1}}, 1, nil)
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("maxRetries=1 should fail with SubmissionError, got %v", err)
	}
	if se.Index != 0 {
		t.Fatalf("expected failing index 0, got %d", se.Index)
	}
	if status.Code(se.Unwrap()) != codes.Unavailable {
		t.Fatalf("expected last cause to be the transport error, got %v", se.Unwrap())
	}
	if cp.submitCalls != 2 {
		t.Fatalf("expected 2 attempts, got %d", cp.submitCalls)
	}
}

func TestNonTransientFailureNotRetried(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	cp.mu.Lock()
	cp.failSubmits = 1000
	cp.submitErr = status.Error(codes.InvalidArgument, "malformed request")
	cp.mu.Unlock()

	_, err := svc.SubmitTasks(context.Background(), [][]byte{{1}}, 5, nil)
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if cp.submitCalls != 1 {
		t.Fatalf("non-transient failure must not be retried, got %d attempts", cp.submitCalls)
	}
}

func TestOverrideDoesNotMutateDefaults(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	override := DefaultTaskOptions()
	override.PartitionID = "batch"
	override.Priority = 9
	if _, err := svc.SubmitTasks(context.Background(), [][]byte{{1}}, -1, &override); err != nil {
		t.Fatalf("submit with override: %v", err)
	}
	if got := cp.lastSubmit.GetRequests()[0].GetTaskOptions(); got.GetPartitionId() != "batch" || got.GetPriority() != 9 {
		t.Fatalf("override not applied: %v", got)
	}

	if _, err := svc.SubmitTasks(context.Background(), [][]byte{{2}}, -1, nil); err != nil {
		t.Fatalf("submit with defaults: %v", err)
	}
	got := cp.lastSubmit.GetRequests()[0].GetTaskOptions()
	if got.GetPartitionId() != "" || got.GetPriority() != 1 {
		t.Fatalf("session defaults mutated by override: %v", got)
	}
}

func TestBatchSplittingPreservesOrdering(t *testing.T) {
	svc, _ := newTestService(t, WithBatchSize(2))
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	payloads := make([][]byte, 5)
	for i := range payloads {
		payloads[i] = []byte{byte(i)}
	}
	ids, err := svc.SubmitTasks(context.Background(), payloads, -1, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("expected 5 ids, got %d", len(ids))
	}
	for i, id := range ids {
		if id != fmt.Sprintf("task-%d", i) {
			t.Fatalf("id %d out of order across chunks: %q", i, id)
		}
	}
}

func TestSubmitEmptyBatch(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	ids, err := svc.SubmitTasks(context.Background(), nil, -1, nil)
	if err != nil || len(ids) != 0 {
		t.Fatalf("empty batch: ids=%v err=%v", ids, err)
	}
	if cp.submitCalls != 0 {
		t.Fatalf("empty batch must not issue RPCs")
	}
}

func TestGetResultOutcomes(t *testing.T) {
	svc, cp := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	cp.mu.Lock()
	cp.results["ok"] = &cpproto.ResultReply{Status: cpproto.TaskStatusCompleted, Payload: []byte("out")}
	cp.results["boom"] = &cpproto.ResultReply{Status: cpproto.TaskStatusError, Error: "worker exploded"}
	cp.mu.Unlock()

	out, err := svc.GetResult(context.Background(), "ok")
	if err != nil || string(out) != "out" {
		t.Fatalf("completed task: out=%q err=%v", out, err)
	}

	_, err = svc.GetResult(context.Background(), "boom")
	var re *ResultError
	if !errors.As(err, &re) || re.Message != "worker exploded" {
		t.Fatalf("expected ResultError with reason, got %v", err)
	}

	_, err = svc.GetResult(context.Background(), "missing")
	var ue *UnknownTaskError
	if !errors.As(err, &ue) || ue.TaskID != "missing" {
		t.Fatalf("expected UnknownTaskError, got %v", err)
	}
}

func TestSubmitTaskPacingHonorsContext(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.OpenSession("s1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.SubmitTask(ctx, []byte{1}, time.Second, -1, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation during pacing sleep, got %v", err)
	}
	if _, err := svc.SubmitTaskWithDependencies(ctx, []byte{1}, nil, time.Second, -1, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation during dependency-submit pacing, got %v", err)
	}
}

func TestBackoffDelayClampsAtMax(t *testing.T) {
	svc := New(nil, WithRetryConfig(DefaultRetryConfig()))
	if d := svc.backoffDelay(1); d != 500*time.Millisecond {
		t.Fatalf("first retry delay: %v", d)
	}
	if d := svc.backoffDelay(3); d != 2*time.Second {
		t.Fatalf("third retry delay: %v", d)
	}
	if d := svc.backoffDelay(7); d != 30*time.Second {
		t.Fatalf("delay past the cap: %v", d)
	}
	// Attempt counts deep enough to overflow the doubling stay at the cap
	// instead of wrapping into a negative duration.
	if d := svc.backoffDelay(64); d != 30*time.Second {
		t.Fatalf("overflowing attempt count: %v", d)
	}
}
