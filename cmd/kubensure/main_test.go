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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/stefanprodan/kubensure/pkg/config"
)

func executeCommand(cmd string) (string, error) {
	defer resetCmdArgs()
	args, err := shellwords.Parse(cmd)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)

	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	logger.stderr = rootCmd.ErrOrStderr()

	_, err = rootCmd.ExecuteC()
	result := buf.String()

	return result, err
}

func resetCmdArgs() {
	rootArgs = rootFlags{timeout: time.Minute}
	ensureArgs = ensureFlags{output: "text"}
	planArgs = planFlags{}
	*kubeconfigArgs.Namespace = config.KubensureDefaultNamespace
}

// writeStubKubectl writes a shell script standing in for kubectl. Every
// invocation is appended to the returned log file, the behavior snippet
// decides the response based on the subcommand in $1.
func writeStubKubectl(t *testing.T, behavior string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	kubectl := filepath.Join(dir, "kubectl")

	script := "#!/bin/sh\necho \"$@\" >> " + logPath + "\n" + behavior + "\n"
	if err := os.WriteFile(kubectl, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return kubectl, logPath
}

func writeTestManifest(t *testing.T) string {
	t.Helper()
	manifest := filepath.Join(t.TempDir(), "my-service.yml")
	data := `apiVersion: v1
kind: Service
metadata:
  name: my-service
`
	if err := os.WriteFile(manifest, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return manifest
}

func readCallLog(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
