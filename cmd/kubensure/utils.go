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
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"sigs.k8s.io/yaml"

	"github.com/stefanprodan/kubensure/pkg/engine"
)

// resolveResource validates the boundary inputs shared by ensure and plan.
func resolveResource(name, kind, state, filename string) (engine.ResourceRef, engine.State, error) {
	if name == "" {
		return engine.ResourceRef{}, "", fmt.Errorf("--name is required")
	}

	t, err := engine.ParseType(kind)
	if err != nil {
		return engine.ResourceRef{}, "", err
	}

	if state == "" {
		state = cfg.Defaults.State
	}
	s, err := engine.ParseState(state)
	if err != nil {
		return engine.ResourceRef{}, "", err
	}

	if filename == "" && s.RequiresManifest() {
		return engine.ResourceRef{}, "", fmt.Errorf("-f is required when the declared state is %q", s)
	}

	namespace := cfg.Defaults.Namespace
	if kubeconfigArgs.Namespace != nil && *kubeconfigArgs.Namespace != "" {
		namespace = *kubeconfigArgs.Namespace
	}

	return engine.ResourceRef{
		Type:      t,
		Name:      name,
		Namespace: namespace,
	}, s, nil
}

func writeResult(writer io.Writer, v interface{}, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(writer, string(data))
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprint(writer, string(data))
	default:
		return fmt.Errorf("unsupported output format %q, must be one of: text, json, yaml", format)
	}
	return nil
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
