package engine

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Action represents the mutation type chosen by the decision table.
type Action string

const (
	NoOpAction             Action = "no-op"
	CreateAction           Action = "create"
	DeleteAction           Action = "delete"
	DeleteThenCreateAction Action = "delete-then-create"
	RollingUpdateAction    Action = "rolling-update"
)

// Mutates reports whether this action runs a mutating kubectl command.
func (a Action) Mutates() bool {
	return a != NoOpAction
}

// ActionPlan is the single action chosen for one reconciliation run.
type ActionPlan struct {
	Action Action

	// Target is the live resource name used by rolling-update.
	Target string
}

// Plan maps the declared state and the probed presence to exactly one
// action, possibly NoOp. It is a pure decision table:
//
//	created   + absent  -> create
//	created   + present -> no-op
//	deleted   + present -> delete
//	deleted   + absent  -> no-op
//	recreated + present -> delete, then create
//	recreated + absent  -> create
//	updated   + present -> rolling-update of the live resource
//	updated   + absent  -> create
func Plan(desired State, pres Presence) (ActionPlan, error) {
	switch desired {
	case Created:
		if pres.Present {
			return ActionPlan{Action: NoOpAction}, nil
		}
		return ActionPlan{Action: CreateAction}, nil
	case Deleted:
		if pres.Present {
			return ActionPlan{Action: DeleteAction}, nil
		}
		return ActionPlan{Action: NoOpAction}, nil
	case Recreated:
		if pres.Present {
			return ActionPlan{Action: DeleteThenCreateAction}, nil
		}
		return ActionPlan{Action: CreateAction}, nil
	case Updated:
		if !pres.Present {
			return ActionPlan{Action: CreateAction}, nil
		}
		target, err := rolloutTarget(pres)
		if err != nil {
			return ActionPlan{}, err
		}
		return ActionPlan{Action: RollingUpdateAction, Target: target}, nil
	}
	return ActionPlan{}, fmt.Errorf("unsupported state %q", desired)
}

// rolloutTarget extracts the live name of the replication controller from
// the probe payload. A present replication controller always came from a
// non-empty items list, so an empty one means the presence result was
// computed from a non-list probe.
func rolloutTarget(pres Presence) (string, error) {
	if pres.Payload == nil {
		return "", fmt.Errorf("rolling update needs the probe payload to pick its target")
	}

	items, found, err := unstructured.NestedSlice(pres.Payload.Object, "items")
	if err != nil || !found || len(items) == 0 {
		return "", fmt.Errorf("rolling update needs a non-empty items list in the probe payload")
	}

	item, ok := items[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("rolling update needs an object as the first item in the probe payload")
	}

	name, found, err := unstructured.NestedString(item, "metadata", "name")
	if err != nil || !found || name == "" {
		return "", fmt.Errorf("the first item in the probe payload carries no metadata.name")
	}

	return name, nil
}
