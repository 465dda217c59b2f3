package engine

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
)

func TestReconcile_CreatesAbsentService(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 1, Stderr: "services \"my-service\" not found"},
		{Code: 0, Stdout: "service \"my-service\" created\n"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service", Namespace: "default"}
	outcome, err := rec.Reconcile(context.Background(), ref, Created, "my-service.yml", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())
	g.Expect(outcome.Stdout).To(ContainSubstring("created"))
	g.Expect(outcome.Stderr).To(BeEmpty())

	g.Expect(runner.calls).To(HaveLen(2))
	g.Expect(runner.calls[1]).To(Equal([]string{"sh", "create", "-f", "my-service.yml", "--namespace=default"}))
}

func TestReconcile_CreatedIsIdempotent(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{{Code: 0, Stdout: serviceJSON}}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service"}
	outcome, err := rec.Reconcile(context.Background(), ref, Created, "my-service.yml", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeFalse())

	// only the probe ran
	g.Expect(runner.calls).To(HaveLen(1))
}

func TestReconcile_DeletesPresentResource(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 0, Stdout: serviceJSON},
		{Code: 0, Stdout: "service \"my-service\" deleted\n"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service"}
	outcome, err := rec.Reconcile(context.Background(), ref, Deleted, "", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())
	g.Expect(runner.calls[1]).To(Equal([]string{"sh", "delete", "svc", "my-service", "--namespace=default"}))
}

func TestReconcile_DeletedAbsentIsNoOp(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{{Code: 1}}}
	rec := NewReconciler(newTestBuilder(t), runner)

	outcome, err := rec.Reconcile(context.Background(), ResourceRef{Type: Namespace, Name: "staging"}, Deleted, "", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeFalse())
	g.Expect(runner.calls).To(HaveLen(1))
}

func TestReconcile_RecreateRunsDeleteThenCreate(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 0, Stdout: serviceJSON},
		{Code: 0, Stdout: "service \"my-service\" deleted\n"},
		{Code: 0, Stdout: "service \"my-service\" created\n"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service"}
	outcome, err := rec.Reconcile(context.Background(), ref, Recreated, "my-service.yml", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())
	g.Expect(outcome.Stdout).To(ContainSubstring("created"))

	g.Expect(runner.calls).To(HaveLen(3))
	g.Expect(runner.calls[1][1]).To(Equal("delete"))
	g.Expect(runner.calls[2][1]).To(Equal("create"))
}

func TestReconcile_RecreateAbortsWhenDeleteFails(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 0, Stdout: serviceJSON},
		{Code: 1, Stderr: "the server doesn't allow it"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service"}
	_, err := rec.Reconcile(context.Background(), ref, Recreated, "my-service.yml", Options{})
	g.Expect(err).To(HaveOccurred())

	cmdErr, ok := err.(*CommandError)
	g.Expect(ok).To(BeTrue())
	g.Expect(cmdErr.Name).To(Equal("my-service"))
	g.Expect(cmdErr.Msg).To(ContainSubstring("doesn't allow"))
	g.Expect(cmdErr.Code).To(Equal(1))

	// the create step was never attempted
	g.Expect(runner.calls).To(HaveLen(2))
}

func TestReconcile_RecreateAbsentCreates(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 1},
		{Code: 0, Stdout: "service \"my-service\" created\n"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service"}
	outcome, err := rec.Reconcile(context.Background(), ref, Recreated, "my-service.yml", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())
	g.Expect(runner.calls).To(HaveLen(2))
	g.Expect(runner.calls[1][1]).To(Equal("create"))
}

func TestReconcile_UpdateTargetsLiveName(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 0, Stdout: rcListJSON},
		{Code: 0, Stdout: "replicationcontroller \"my-app-v2\" rolling updated\n"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: ReplicationController, Name: "my-app", Namespace: "default"}
	outcome, err := rec.Reconcile(context.Background(), ref, Updated, "my-app-rc.yml", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())

	// rolling-update addresses the rc by its live name, not the label value
	g.Expect(runner.calls[1]).To(Equal([]string{"sh", "rolling-update", "my-app-v2", "-f", "my-app-rc.yml", "--namespace=default"}))
}

func TestReconcile_UpdateAbsentCreates(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 1},
		{Code: 0, Stdout: "replicationcontroller \"my-app\" created\n"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: ReplicationController, Name: "my-app"}
	outcome, err := rec.Reconcile(context.Background(), ref, Updated, "my-app-rc.yml", Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())
	g.Expect(runner.calls[1][1]).To(Equal("create"))
}

func TestReconcile_DryRunNeverMutates(t *testing.T) {
	g := NewWithT(t)

	tests := []struct {
		desired State
		probe   Result
		msg     string
	}{
		{Created, Result{Code: 1}, "creating resource in namespace 'default' using 'my-service.yml'"},
		{Deleted, Result{Code: 0, Stdout: serviceJSON}, "deleting svc 'my-service' in namespace 'default'"},
		{Recreated, Result{Code: 0, Stdout: serviceJSON}, "recreating svc 'my-service' in namespace 'default' using 'my-service.yml'"},
	}

	for _, tt := range tests {
		runner := &fakeRunner{results: []Result{tt.probe}}
		rec := NewReconciler(newTestBuilder(t), runner)

		ref := ResourceRef{Type: Service, Name: "my-service", Namespace: "default"}
		outcome, err := rec.Reconcile(context.Background(), ref, tt.desired, "my-service.yml", Options{DryRun: true})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(outcome.Changed).To(BeTrue())
		g.Expect(outcome.Msg).To(Equal(tt.msg))
		g.Expect(outcome.Stdout).To(BeEmpty())

		// only the probe ran
		g.Expect(runner.calls).To(HaveLen(1))
	}
}

func TestReconcile_DryRunNoOp(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{{Code: 0, Stdout: serviceJSON}}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Service, Name: "my-service"}
	outcome, err := rec.Reconcile(context.Background(), ref, Created, "my-service.yml", Options{DryRun: true})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeFalse())
	g.Expect(outcome.Msg).To(BeEmpty())
}

func TestReconcile_DryRunRollingUpdateMessage(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{{Code: 0, Stdout: rcListJSON}}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: ReplicationController, Name: "my-app", Namespace: "default"}
	outcome, err := rec.Reconcile(context.Background(), ref, Updated, "my-app-rc.yml", Options{DryRun: true})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcome.Changed).To(BeTrue())
	g.Expect(outcome.Msg).To(Equal("performing rolling update of rc 'my-app-v2' in namespace 'default' using 'my-app-rc.yml'"))
	g.Expect(runner.calls).To(HaveLen(1))
}

func TestReconcile_MutationFailure(t *testing.T) {
	g := NewWithT(t)

	runner := &fakeRunner{results: []Result{
		{Code: 1},
		{Code: 2, Stderr: "error validating manifest"},
	}}
	rec := NewReconciler(newTestBuilder(t), runner)

	ref := ResourceRef{Type: Secret, Name: "my-secret"}
	_, err := rec.Reconcile(context.Background(), ref, Created, "my-secret.yml", Options{})
	g.Expect(err).To(HaveOccurred())

	cmdErr, ok := err.(*CommandError)
	g.Expect(ok).To(BeTrue())
	g.Expect(cmdErr.Code).To(Equal(2))
	g.Expect(cmdErr.Name).To(Equal("my-secret"))
}
