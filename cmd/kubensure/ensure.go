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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanprodan/kubensure/pkg/engine"
)

var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Ensure reconciles the declared state of a single resource against the cluster using kubectl.",
	RunE:  runEnsureCmd,
}

type ensureFlags struct {
	filename string
	name     string
	kind     string
	state    string
	dryRun   bool
	output   string
}

var ensureArgs ensureFlags

func init() {
	ensureCmd.Flags().StringVarP(&ensureArgs.filename, "filename", "f", "",
		"Path to the manifest describing the resource. Required for any creating or updating state.")
	ensureCmd.Flags().StringVar(&ensureArgs.name, "name", "",
		"The name of the resource. For replication controllers this is the value of the k8s-app label, not necessarily the object name.")
	ensureCmd.Flags().StringVar(&ensureArgs.kind, "type", "",
		"The type of the resource: rc, svc, secret, endpoints or namespace.")
	ensureCmd.Flags().StringVar(&ensureArgs.state, "state", "",
		"The declared state: created, deleted, recreated or updated. Defaults to the config file value.")
	ensureCmd.Flags().BoolVar(&ensureArgs.dryRun, "dry-run", false,
		"Report the action that would be performed without running it.")
	ensureCmd.Flags().StringVarP(&ensureArgs.output, "output", "o", "text",
		"Output format: text, json or yaml.")

	rootCmd.AddCommand(ensureCmd)
}

func runEnsureCmd(cmd *cobra.Command, args []string) error {
	ref, state, err := resolveResource(ensureArgs.name, ensureArgs.kind, ensureArgs.state, ensureArgs.filename)
	if err != nil {
		return err
	}

	switch ensureArgs.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q, must be one of: text, json, yaml", ensureArgs.output)
	}

	builder, err := engine.NewBuilder(kubectlCommand(), kubeconfigArgs)
	if err != nil {
		return err
	}
	reconciler := engine.NewReconciler(builder, engine.NewKubectlExecutor(os.Environ()))

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	outcome, err := reconciler.Reconcile(ctx, ref, state, ensureArgs.filename, engine.Options{
		DryRun: ensureArgs.dryRun,
	})
	if err != nil {
		var cmdErr *engine.CommandError
		if errors.As(err, &cmdErr) && ensureArgs.output != "text" {
			// structured failure record {name, msg, rc}
			writeResult(cmd.OutOrStdout(), cmdErr, ensureArgs.output)
		}
		return err
	}

	if ensureArgs.output != "text" {
		return writeResult(cmd.OutOrStdout(), outcome, ensureArgs.output)
	}

	switch {
	case outcome.Msg != "":
		cmd.Println(outcome.Msg)
	case outcome.Changed:
		if out := strings.TrimSpace(outcome.Stdout); out != "" {
			cmd.Println(out)
		}
		cmd.Println(fmt.Sprintf("%s reconciled", ref))
	default:
		cmd.Println(fmt.Sprintf("%s unchanged", ref))
	}

	return nil
}
