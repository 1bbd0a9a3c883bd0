package session

import (
	"testing"
	"time"
)

func TestDefaultTaskOptions(t *testing.T) {
	o := DefaultTaskOptions()
	if o.MaxDuration != 40*time.Second {
		t.Fatalf("MaxDuration default: %v", o.MaxDuration)
	}
	if o.MaxRetries != 2 {
		t.Fatalf("MaxRetries default: %d", o.MaxRetries)
	}
	if o.Priority != 1 {
		t.Fatalf("Priority default: %d", o.Priority)
	}
}

func TestTaskOptionsToProto(t *testing.T) {
	o := DefaultTaskOptions()
	o.PartitionID = "gpu"
	o.ApplicationName = "imgproc"
	o.ApplicationVersion = "1.4.2"
	o.EngineType = "wasm"
	o.Options = map[string]string{"trace": "on"}

	p := o.toProto()
	if p.GetMaxDurationMs() != 40000 || p.GetMaxRetries() != 2 || p.GetPriority() != 1 {
		t.Fatalf("numeric fields mismatched: %v", p)
	}
	if p.GetPartitionId() != "gpu" || p.GetApplicationName() != "imgproc" || p.GetApplicationVersion() != "1.4.2" || p.GetEngineType() != "wasm" {
		t.Fatalf("routing fields mismatched: %v", p)
	}
	if p.GetOptions()["trace"] != "on" {
		t.Fatalf("free-form options lost: %v", p.GetOptions())
	}

	// The proto copy must not alias the caller's map.
	p.Options["trace"] = "off"
	if o.Options["trace"] != "on" {
		t.Fatalf("toProto aliased the options map")
	}
}
