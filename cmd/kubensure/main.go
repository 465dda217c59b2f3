/*
Copyright 2022 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/stefanprodan/kubensure/pkg/config"
)

var VERSION = "1.0.0-dev.0"

const PROJECT = "kubensure"

var rootCmd = &cobra.Command{
	Use:           PROJECT,
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "A command line utility to reconcile a single Kubernetes resource with kubectl.",
	Long: `Kubensure drives one named Kubernetes resource to its declared state,
using the kubectl binary as the only channel to the cluster.

Reconcile a resource:

- kubensure ensure --name <name> --type <rc|svc|secret|endpoints|namespace> -f <manifest> --state <state>
- kubensure ensure --name <name> --type <type> --state deleted
- kubensure plan --name <name> --type <type> -f <manifest> --state <state>

Inspect the environment:

- kubensure doctor
- kubensure config init
- kubensure config view
`,
}

type rootFlags struct {
	timeout time.Duration
	kubectl string
}

var (
	rootArgs = rootFlags{}
	logger   = stderrLogger{stderr: os.Stderr}
	cfg      = config.NewConfig()
)

var kubeconfigArgs = genericclioptions.NewConfigFlags(false)

func init() {
	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", time.Minute,
		"The length of time to wait before giving up on the current operation.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.kubectl, "kubectl", "",
		"The kubectl command to shell out to. Defaults to the config file value.")

	kubeconfigArgs.Timeout = nil
	kubeconfigArgs.Namespace = nil
	kubeconfigArgs.AddFlags(rootCmd.PersistentFlags())

	defaultNamespace := config.KubensureDefaultNamespace
	kubeconfigArgs.Namespace = &defaultNamespace
	rootCmd.PersistentFlags().StringVarP(kubeconfigArgs.Namespace, "namespace", "n", *kubeconfigArgs.Namespace,
		"The namespace of the resource.")

	rootCmd.DisableAutoGenTag = true
	rootCmd.SetOut(os.Stdout)
}

func main() {
	loadConfig()
	if err := rootCmd.Execute(); err != nil {
		logger.Println(`✗`, err)
		os.Exit(1)
	}
}

func loadConfig() {
	if c, err := config.Read(""); err != nil {
		logger.Println(`✗`, fmt.Errorf("loading the config failed, error: %w", err))
	} else {
		cfg = c
	}
}

// kubectlCommand returns the kubectl command, the flag wins over the config.
func kubectlCommand() string {
	if rootArgs.kubectl != "" {
		return rootArgs.kubectl
	}
	return cfg.Kubectl.Command
}
