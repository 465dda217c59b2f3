package engine

import (
	"context"
	"encoding/json"
	"testing"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// fakeRunner replays canned results instead of shelling out, recording
// every argument vector it was asked to run.
type fakeRunner struct {
	calls   [][]string
	results []Result
	errs    []error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (Result, error) {
	i := len(f.calls)
	f.calls = append(f.calls, args)

	var res Result
	if i < len(f.results) {
		res = f.results[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return res, err
}

// newTestBuilder uses 'sh' as the kubectl command so that the binary lookup
// succeeds without a kubectl install.
func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder("sh", nil)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func decodePresence(t *testing.T, data string) Presence {
	t.Helper()
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatal(err)
	}
	return Presence{
		Present: true,
		Payload: &unstructured.Unstructured{Object: raw},
	}
}

const rcListJSON = `{
  "kind": "List",
  "apiVersion": "v1",
  "items": [
    {
      "kind": "ReplicationController",
      "metadata": {
        "name": "my-app-v2",
        "namespace": "default",
        "labels": {"k8s-app": "my-app"}
      }
    }
  ]
}`

const serviceJSON = `{
  "kind": "Service",
  "apiVersion": "v1",
  "metadata": {
    "name": "my-service",
    "namespace": "default"
  }
}`
