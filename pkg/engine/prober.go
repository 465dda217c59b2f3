package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Presence reports whether the probed resource exists in the cluster, along
// with the decoded kubectl response when it does. Payload is nil when the
// probe exited non-zero or found nothing.
type Presence struct {
	Present bool
	Payload *unstructured.Unstructured
}

// Prober establishes whether a resource currently exists by querying kubectl.
type Prober struct {
	builder *Builder
	runner  Runner
}

func NewProber(builder *Builder, runner Runner) *Prober {
	return &Prober{
		builder: builder,
		runner:  runner,
	}
}

// Probe runs a kubectl get for ref and interprets the result. A non-zero
// exit is reported as absence, not as an error: kubectl exits non-zero both
// when the resource is missing and when the cluster is unreachable, and the
// two can't be told apart from here. Malformed JSON on a clean exit is an
// error, since kubectl itself reported success.
func (p *Prober) Probe(ctx context.Context, ref ResourceRef) (Presence, error) {
	res, err := p.runner.Run(ctx, p.builder.Get(ref)...)
	if err != nil {
		return Presence{}, err
	}
	if res.Code != 0 {
		return Presence{}, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(res.Stdout), &raw); err != nil {
		return Presence{}, fmt.Errorf("decoding the response of 'get %s' failed, error: %w", ref, err)
	}

	present := len(raw) != 0
	if items, found, err := unstructured.NestedSlice(raw, "items"); err == nil && found {
		// selector queries return a list, presence means a non-empty one
		present = len(items) != 0
	}

	if !present {
		return Presence{}, nil
	}

	return Presence{
		Present: true,
		Payload: &unstructured.Unstructured{Object: raw},
	}, nil
}
