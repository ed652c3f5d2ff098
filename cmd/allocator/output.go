/*
Copyright 2025 The llm-d Authors

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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"sigs.k8s.io/yaml"
)

// Exit codes.
const (
	CLIExitSuccess  = 0 // every problem solved
	CLIExitFindings = 1 // some catalog entries were rejected
	CLIExitError    = 2 // the command failed
)

// errSomeFailed marks a run that printed its output but rejected at least
// one catalog entry.
var errSomeFailed = errors.New("some problems were rejected")

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// OutputJSON writes data as JSON, indented unless compact.
func OutputJSON(w io.Writer, data any, compact bool) error {
	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// OutputYAML writes data as YAML using its JSON field names.
func OutputYAML(w io.Writer, data any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// output writes data in a machine-readable format.
func output(w io.Writer, format string, data any) error {
	switch format {
	case FormatJSON:
		return OutputJSON(w, data, false)
	case FormatYAML:
		return OutputYAML(w, data)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
