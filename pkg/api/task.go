// Package api holds the small Go-facing types shared between the session
// facade and the command-line tools.
package api

// TaskSpec describes one unit of work to submit: an opaque payload plus the
// ids of previously submitted tasks that must complete successfully before
// this one may start. The payload is meaningful only to the eventual worker.
type TaskSpec struct {
	Payload      []byte
	Dependencies []string
}

// Result is the terminal outcome of one task as reported by the control plane.
type Result struct {
	TaskID  string
	Payload []byte
}
