package engine

import (
	"context"
	"fmt"
)

// Options control a single reconciliation run.
type Options struct {
	// DryRun reports the action that would be performed without running it.
	DryRun bool
}

// Reconciler drives one resource towards its declared state using kubectl.
type Reconciler struct {
	builder *Builder
	runner  Runner
	prober  *Prober
}

func NewReconciler(builder *Builder, runner Runner) *Reconciler {
	return &Reconciler{
		builder: builder,
		runner:  runner,
		prober:  NewProber(builder, runner),
	}
}

// Reconcile probes the live state of ref, picks exactly one action from the
// decision table and performs it. At most one mutating kubectl command runs
// per call, except for the recreate sequence whose delete and create steps
// run back to back; a failed delete aborts the sequence and the create step
// is never attempted.
func (r *Reconciler) Reconcile(ctx context.Context, ref ResourceRef, desired State, manifest string, opts Options) (Outcome, error) {
	pres, err := r.prober.Probe(ctx, ref)
	if err != nil {
		return Outcome{}, err
	}

	plan, err := Plan(desired, pres)
	if err != nil {
		return Outcome{}, err
	}

	if !plan.Action.Mutates() {
		return Outcome{Changed: false}, nil
	}

	if opts.DryRun {
		return Outcome{Changed: true, Msg: Describe(plan, ref, manifest)}, nil
	}

	switch plan.Action {
	case CreateAction:
		return r.execute(ctx, ref, r.builder.Create(ref, manifest))
	case DeleteAction:
		return r.execute(ctx, ref, r.builder.Delete(ref))
	case DeleteThenCreateAction:
		if _, err := r.execute(ctx, ref, r.builder.Delete(ref)); err != nil {
			return Outcome{}, err
		}
		return r.execute(ctx, ref, r.builder.Create(ref, manifest))
	case RollingUpdateAction:
		return r.execute(ctx, ref, r.builder.RollingUpdate(ref, plan.Target, manifest))
	}
	return Outcome{}, fmt.Errorf("unsupported action %q", plan.Action)
}

// execute runs one mutating command. A non-zero exit is fatal and surfaces
// the resource name, the command's stderr and its exit code.
func (r *Reconciler) execute(ctx context.Context, ref ResourceRef, args []string) (Outcome, error) {
	res, err := r.runner.Run(ctx, args...)
	if err != nil {
		return Outcome{}, err
	}
	if res.Code != 0 {
		return Outcome{}, &CommandError{
			Name: ref.Name,
			Msg:  res.Stderr,
			Code: res.Code,
		}
	}

	return Outcome{
		Changed: true,
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
	}, nil
}

// Describe renders the human readable form of an action, used by the
// dry-run short circuit and by the plan command.
func Describe(plan ActionPlan, ref ResourceRef, manifest string) string {
	ns := ref.Namespace
	if ns == "" {
		ns = "default"
	}
	switch plan.Action {
	case CreateAction:
		return fmt.Sprintf("creating resource in namespace '%s' using '%s'", ns, manifest)
	case DeleteAction:
		return fmt.Sprintf("deleting %s '%s' in namespace '%s'", ref.Type, ref.Name, ns)
	case DeleteThenCreateAction:
		return fmt.Sprintf("recreating %s '%s' in namespace '%s' using '%s'", ref.Type, ref.Name, ns, manifest)
	case RollingUpdateAction:
		return fmt.Sprintf("performing rolling update of rc '%s' in namespace '%s' using '%s'", plan.Target, ns, manifest)
	}
	return fmt.Sprintf("nothing to do for %s '%s' in namespace '%s'", ref.Type, ref.Name, ns)
}
