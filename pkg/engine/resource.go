package engine

import (
	"fmt"
	"strings"
)

// Type is one of the resource kinds kubensure knows how to reconcile.
type Type string

const (
	ReplicationController Type = "rc"
	Service               Type = "svc"
	Secret                Type = "secret"
	Endpoints             Type = "endpoints"
	Namespace             Type = "namespace"
)

// ParseType validates the given resource type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case ReplicationController, Service, Secret, Endpoints, Namespace:
		return t, nil
	}
	return "", fmt.Errorf("unsupported resource type %q, must be one of: rc, svc, secret, endpoints, namespace", s)
}

// State is the declared state of a resource.
type State string

const (
	Created   State = "created"
	Deleted   State = "deleted"
	Recreated State = "recreated"
	Updated   State = "updated"
)

// ParseState validates the given state.
func ParseState(s string) (State, error) {
	switch st := State(s); st {
	case Created, Deleted, Recreated, Updated:
		return st, nil
	}
	return "", fmt.Errorf("unsupported state %q, must be one of: created, deleted, recreated, updated", s)
}

// RequiresManifest reports whether reconciling towards this state may
// run a kubectl command that needs a manifest file.
func (s State) RequiresManifest() bool {
	return s != Deleted
}

// ResourceRef identifies the resource targeted by one reconciliation run.
// For replication controllers Name is the value of the k8s-app label
// assigned to the managed pods, not necessarily the live object name.
type ResourceRef struct {
	Type      Type
	Name      string
	Namespace string
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s/%s/%s", r.Type, r.Namespace, r.Name)
}

// Outcome is the result record of one reconciliation run. Stdout and Stderr
// carry the raw output of the kubectl command when one ran, Msg carries the
// dry-run description instead.
type Outcome struct {
	Changed bool   `json:"changed"`
	Stdout  string `json:"stdout,omitempty"`
	Stderr  string `json:"stderr,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// CommandError is returned when a mutating kubectl command exits non-zero.
type CommandError struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
	Code int    `json:"rc"`
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("reconciling %q failed with exit code %d: %s", e.Name, e.Code, strings.TrimSpace(e.Msg))
}
