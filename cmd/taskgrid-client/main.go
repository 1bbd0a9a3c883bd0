package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"taskgrid/pkg/api"
	"taskgrid/pkg/channel"
	"taskgrid/pkg/config"
	"taskgrid/pkg/observability"
	"taskgrid/pkg/payload"
	"taskgrid/pkg/session"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file (default: search taskgrid.yaml)")
	endpoint := flag.String("endpoint", "", "override control-plane endpoint URI")
	sessionID := flag.String("session", "", "reuse an existing session id instead of creating one")
	partition := flag.String("partition", "", "target partition id")
	message := flag.String("message", "hello taskgrid", "message to submit as task payload")
	count := flag.Int("n", 1, "number of tasks to submit")
	chain := flag.Bool("chain", false, "make each task depend on the previous one")
	wait := flag.Bool("wait", true, "wait for and print task results")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}

	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		fatalf("setup logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	factory := channel.Factory{
		Endpoint: cfg.Endpoint,
		Credentials: channel.Credentials{
			CertFile: cfg.TLS.CertFile,
			KeyFile:  cfg.TLS.KeyFile,
		},
		InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
	}
	pool := channel.NewPool(factory.NewBuildFunc(), channel.WithCapacity(cfg.Pool.MaxChannels))
	defer pool.Close()

	defaults := session.DefaultTaskOptions()
	defaults.MaxDuration = time.Duration(cfg.Tasks.MaxDurationMS) * time.Millisecond
	defaults.MaxRetries = cfg.Tasks.MaxRetries
	defaults.Priority = cfg.Tasks.Priority
	defaults.PartitionID = cfg.Tasks.PartitionID
	if *partition != "" {
		defaults.PartitionID = *partition
	}

	svc := session.New(pool,
		session.WithDefaultTaskOptions(defaults),
		session.WithRetryConfig(session.RetryConfig{
			BackoffInitial: time.Duration(cfg.Submit.BackoffInitialMS) * time.Millisecond,
			BackoffMax:     time.Duration(cfg.Submit.BackoffMaxMS) * time.Millisecond,
			Jitter:         time.Duration(cfg.Submit.BackoffJitterMS) * time.Millisecond,
		}),
		session.WithBatchSize(cfg.Submit.MaxTasksPerRequest),
	)

	if *sessionID != "" {
		if err := svc.OpenSession(*sessionID); err != nil {
			fatalf("open session: %v", err)
		}
		fmt.Println("session reopened:", *sessionID)
	} else {
		var partitions []string
		if defaults.PartitionID != "" {
			partitions = []string{defaults.PartitionID}
		}
		id, err := svc.CreateSession(ctx, partitions)
		if err != nil {
			fatalf("create session: %v", err)
		}
		fmt.Println("session created:", id)
	}

	codec := payload.JSON()
	specs := make([]api.TaskSpec, 0, *count)
	for i := 0; i < *count; i++ {
		body, err := codec.Marshal(map[string]any{"text": *message, "index": i, "ts": time.Now().UnixMilli()})
		if err != nil {
			fatalf("encode payload: %v", err)
		}
		specs = append(specs, api.TaskSpec{Payload: body})
	}

	var ids []string
	if *chain {
		// Dependencies reference prior task ids, so chained tasks go one at a
		// time, paced by the configured submission pause.
		pause := time.Duration(cfg.Submit.PauseMS) * time.Millisecond
		for i, spec := range specs {
			var deps []string
			if len(ids) > 0 {
				deps = []string{ids[len(ids)-1]}
			}
			id, err := svc.SubmitTaskWithDependencies(ctx, spec.Payload, deps, pause, cfg.Submit.MaxRetries, nil)
			if err != nil {
				fatalf("submit task %d: %v", i, err)
			}
			ids = append(ids, id)
		}
	} else {
		ids, err = svc.SubmitTasksWithDependencies(ctx, specs, cfg.Submit.MaxRetries, nil)
		if err != nil {
			fatalf("submit tasks: %v", err)
		}
	}
	for _, id := range ids {
		fmt.Println("task submitted:", id)
	}

	if !*wait {
		return
	}
	for _, id := range ids {
		out, err := svc.GetResult(ctx, id)
		if err != nil {
			zap.L().Error("result fetch failed", zap.String("task", id), zap.Error(err))
			continue
		}
		fmt.Printf("result %s: %s\n", id, out)
	}
}

func fatalf(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
