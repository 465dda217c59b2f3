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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanprodan/kubensure/pkg/engine"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Doctor verifies that the kubectl command is usable for reconciliation.",
	RunE:  runDoctorCmd,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorCmd(cmd *cobra.Command, args []string) error {
	builder, err := engine.NewBuilder(kubectlCommand(), kubeconfigArgs)
	if err != nil {
		return err
	}
	logger.Println(`►`, "using kubectl command:", kubectlCommand())

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	version, err := engine.ClientVersion(ctx, builder, engine.NewKubectlExecutor(os.Environ()))
	if err != nil {
		return fmt.Errorf("probing the kubectl client version failed, error: %w", err)
	}
	logger.Println(`►`, "kubectl client version:", version.String())

	if engine.SupportsRollingUpdate(version) {
		logger.Println(`✔`, "rolling-update is available, all declared states are usable")
	} else {
		logger.Println(`✗`, "this kubectl no longer carries rolling-update, the updated state will fail for replication controllers")
	}

	return nil
}
