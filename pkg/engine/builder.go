package engine

import (
	"fmt"
	"os/exec"

	"github.com/mattn/go-shellwords"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// Builder constructs kubectl argument vectors for the subcommands kubensure
// uses. The kubectl command may carry extra tokens, e.g. 'minikube kubectl --'.
type Builder struct {
	kubectl     []string
	connectArgs []string
}

// NewBuilder splits the kubectl command, resolves its binary on the
// execution path and captures the connection flags forwarded to kubectl.
func NewBuilder(kubectl string, flags *genericclioptions.ConfigFlags) (*Builder, error) {
	tokens, err := shellwords.Parse(kubectl)
	if err != nil {
		return nil, fmt.Errorf("parsing the kubectl command %q failed, error: %w", kubectl, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("the kubectl command can't be empty")
	}

	if _, err := exec.LookPath(tokens[0]); err != nil {
		return nil, fmt.Errorf("%s not found in PATH", tokens[0])
	}

	return &Builder{
		kubectl:     tokens,
		connectArgs: connectArgs(flags),
	}, nil
}

// connectArgs translates the standard kubeconfig flags into kubectl global
// arguments. Authentication itself stays with kubectl.
func connectArgs(flags *genericclioptions.ConfigFlags) []string {
	if flags == nil {
		return nil
	}

	var args []string
	add := func(name string, value *string) {
		if value != nil && *value != "" {
			args = append(args, fmt.Sprintf("--%s=%s", name, *value))
		}
	}
	add("kubeconfig", flags.KubeConfig)
	add("context", flags.Context)
	add("cluster", flags.ClusterName)
	add("server", flags.APIServer)
	add("token", flags.BearerToken)
	add("username", flags.Username)
	add("password", flags.Password)
	add("certificate-authority", flags.CAFile)
	return args
}

func (b *Builder) base() []string {
	args := make([]string, 0, len(b.kubectl)+len(b.connectArgs))
	args = append(args, b.kubectl...)
	return append(args, b.connectArgs...)
}

// selector returns the token addressing the resource: replication
// controllers are matched by the conventional k8s-app label, every other
// type by name. kubectl accepts the label filter as a single token.
func selector(ref ResourceRef) string {
	if ref.Type == ReplicationController {
		return "-l k8s-app=" + ref.Name
	}
	return ref.Name
}

func namespaceFlag(ref ResourceRef) string {
	ns := ref.Namespace
	if ns == "" {
		ns = "default"
	}
	return "--namespace=" + ns
}

// Get builds the presence query for ref.
func (b *Builder) Get(ref ResourceRef) []string {
	args := append(b.base(), "get", string(ref.Type), selector(ref), "-o", "json")
	return append(args, namespaceFlag(ref))
}

// Create builds the create command for the given manifest.
func (b *Builder) Create(ref ResourceRef, manifest string) []string {
	args := append(b.base(), "create", "-f", manifest)
	return append(args, namespaceFlag(ref))
}

// Delete builds the delete command for ref.
func (b *Builder) Delete(ref ResourceRef) []string {
	args := append(b.base(), "delete", string(ref.Type), selector(ref))
	return append(args, namespaceFlag(ref))
}

// RollingUpdate builds the rolling-update command. kubectl addresses the
// replication controller by its live name here, not by label selector.
func (b *Builder) RollingUpdate(ref ResourceRef, target, manifest string) []string {
	args := append(b.base(), "rolling-update", target, "-f", manifest)
	return append(args, namespaceFlag(ref))
}

// Version builds the client version query.
func (b *Builder) Version() []string {
	return append(b.base(), "version", "--client", "-o", "json")
}
