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
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanprodan/kubensure/pkg/engine"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan prints the action that ensure would perform, without mutating the cluster.",
	RunE:  runPlanCmd,
}

type planFlags struct {
	filename string
	name     string
	kind     string
	state    string
}

var planArgs planFlags

func init() {
	planCmd.Flags().StringVarP(&planArgs.filename, "filename", "f", "",
		"Path to the manifest describing the resource.")
	planCmd.Flags().StringVar(&planArgs.name, "name", "",
		"The name of the resource.")
	planCmd.Flags().StringVar(&planArgs.kind, "type", "",
		"The type of the resource: rc, svc, secret, endpoints or namespace.")
	planCmd.Flags().StringVar(&planArgs.state, "state", "",
		"The declared state: created, deleted, recreated or updated. Defaults to the config file value.")

	rootCmd.AddCommand(planCmd)
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	ref, state, err := resolveResource(planArgs.name, planArgs.kind, planArgs.state, planArgs.filename)
	if err != nil {
		return err
	}

	builder, err := engine.NewBuilder(kubectlCommand(), kubeconfigArgs)
	if err != nil {
		return err
	}
	prober := engine.NewProber(builder, engine.NewKubectlExecutor(os.Environ()))

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	presence, err := prober.Probe(ctx, ref)
	if err != nil {
		return err
	}

	plan, err := engine.Plan(state, presence)
	if err != nil {
		return err
	}

	name := ref.Name
	if plan.Target != "" {
		name = plan.Target
	}

	printTable(cmd.OutOrStdout(), []string{"action", "type", "name", "namespace", "manifest"}, [][]string{
		{string(plan.Action), string(ref.Type), name, ref.Namespace, planArgs.filename},
	})

	return nil
}
