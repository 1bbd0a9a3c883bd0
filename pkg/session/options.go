package session

import (
	"time"

	cpproto "taskgrid/pkg/api/proto"
)

// TaskOptions describes execution requirements for submitted tasks. A Service
// carries one default set; every submission call may override it without
// mutating the default.
type TaskOptions struct {
	// MaxDuration is the wall-clock budget per task, enforced by the control
	// plane, not by this client.
	MaxDuration time.Duration

	// MaxRetries is the control-plane retry ceiling per task. Distinct from
	// the client-side submission retry count.
	MaxRetries int

	// Priority is the scheduling weight.
	Priority int

	// PartitionID selects the target resource partition.
	PartitionID string

	// Routing metadata for the worker image.
	ApplicationName      string
	ApplicationVersion   string
	ApplicationNamespace string
	ApplicationService   string

	// EngineType identifies the execution engine.
	EngineType string

	// Options carries free-form key/value pairs passed through verbatim.
	Options map[string]string
}

// DefaultTaskOptions returns the documented defaults: 40s budget, 2 retries,
// priority 1.
func DefaultTaskOptions() TaskOptions {
	return TaskOptions{
		MaxDuration: 40 * time.Second,
		MaxRetries:  2,
		Priority:    1,
	}
}

func (o TaskOptions) toProto() *cpproto.TaskOptions {
	p := &cpproto.TaskOptions{
		MaxDurationMs:        o.MaxDuration.Milliseconds(),
		MaxRetries:           int32(o.MaxRetries),
		Priority:             int32(o.Priority),
		PartitionId:          o.PartitionID,
		ApplicationName:      o.ApplicationName,
		ApplicationVersion:   o.ApplicationVersion,
		ApplicationNamespace: o.ApplicationNamespace,
		ApplicationService:   o.ApplicationService,
		EngineType:           o.EngineType,
	}
	if len(o.Options) > 0 {
		p.Options = make(map[string]string, len(o.Options))
		for k, v := range o.Options {
			p.Options[k] = v
		}
	}
	return p
}
