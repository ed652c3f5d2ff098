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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
)

// ErrNoProblems is returned when a document holds no solvable entry.
var ErrNoProblems = errors.New("no problems found")

// DefaultProblemName keys unnamed problems.
const DefaultProblemName = "problem"

// specKeys identify a bare AllocationProblemSpec at the document root.
var specKeys = []string{"totalUnits", "categoryCount", "utilityCurves"}

// LoadProblemFile reads a problem file, see ParseProblemDocument. Single
// problems without a name are keyed by the file name without extension.
func LoadProblemFile(path string) (ProblemCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	catalog, err := ParseProblemDocument(data, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// ParseProblemDocument parses YAML or JSON in one of these layouts:
//   - kind: AllocationProblem, a single named problem
//   - kind: AllocationProblemList, its items
//   - kind: ConfigMap, whose data holds catalog entries
//   - a bare spec with totalUnits, categoryCount or utilityCurves at the root
//   - otherwise a catalog mapping entry names to entries
func ParseProblemDocument(data []byte, fallbackName string) (ProblemCatalog, error) {
	if fallbackName == "" || fallbackName == GlobalDefaultsKey {
		fallbackName = DefaultProblemName
	}
	var root yamlv3.Node
	if err := yamlv3.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrNoProblems
	}
	doc := root.Content[0]
	if doc.Kind != yamlv3.MappingNode {
		return nil, fmt.Errorf("expected a mapping at the document root, got %s", nodeKindName(doc.Kind))
	}
	fields := mappingFields(doc)

	var (
		catalog ProblemCatalog
		err     error
	)
	switch kind := scalarValue(fields["kind"]); {
	case kind == v1alpha1.KindAllocationProblem:
		catalog, err = parseSingle(data, fallbackName)
	case kind == v1alpha1.KindAllocationProblem+"List":
		catalog, err = parseList(data, fallbackName)
	case kind == "ConfigMap":
		catalog, err = parseConfigMap(fields["data"])
	case kind != "":
		err = fmt.Errorf("unsupported kind %q", kind)
	case hasAny(fields, specKeys):
		catalog, err = parseBareSpec(data, fallbackName)
	default:
		catalog, err = parseCatalog(doc)
	}
	if err != nil {
		return nil, err
	}
	if len(catalog.Names()) == 0 {
		return nil, ErrNoProblems
	}
	return catalog, nil
}

func parseSingle(data []byte, fallbackName string) (ProblemCatalog, error) {
	var ap v1alpha1.AllocationProblem
	if err := yaml.Unmarshal(data, &ap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", v1alpha1.KindAllocationProblem, err)
	}
	return ProblemCatalog{nameOr(ap.Name, fallbackName): EntryFromSpec(&ap.Spec)}, nil
}

func parseList(data []byte, fallbackName string) (ProblemCatalog, error) {
	var list v1alpha1.AllocationProblemList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding %sList: %w", v1alpha1.KindAllocationProblem, err)
	}
	out := make(ProblemCatalog, len(list.Items))
	for i := range list.Items {
		name := nameOr(list.Items[i].Name, fmt.Sprintf("%s-%d", fallbackName, i))
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("duplicate problem name %q", name)
		}
		out[name] = EntryFromSpec(&list.Items[i].Spec)
	}
	return out, nil
}

func parseConfigMap(dataNode *yamlv3.Node) (ProblemCatalog, error) {
	if dataNode == nil {
		return nil, ErrNoProblems
	}
	var data map[string]string
	if err := dataNode.Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding ConfigMap data: %w", err)
	}
	return ParseProblemCatalog(data), nil
}

func parseBareSpec(data []byte, fallbackName string) (ProblemCatalog, error) {
	var spec v1alpha1.AllocationProblemSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decoding problem: %w", err)
	}
	return ProblemCatalog{fallbackName: EntryFromSpec(&spec)}, nil
}

// parseCatalog re-encodes every entry and hands the result to
// ParseProblemCatalog, so files and ConfigMaps share one code path.
func parseCatalog(doc *yamlv3.Node) (ProblemCatalog, error) {
	data := make(map[string]string, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		raw, err := yamlv3.Marshal(doc.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("encoding entry %q: %w", doc.Content[i].Value, err)
		}
		data[doc.Content[i].Value] = string(raw)
	}
	return ParseProblemCatalog(data), nil
}

func mappingFields(n *yamlv3.Node) map[string]*yamlv3.Node {
	out := make(map[string]*yamlv3.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out[n.Content[i].Value] = n.Content[i+1]
	}
	return out
}

func scalarValue(n *yamlv3.Node) string {
	if n == nil || n.Kind != yamlv3.ScalarNode {
		return ""
	}
	return n.Value
}

func hasAny(fields map[string]*yamlv3.Node, keys []string) bool {
	for _, k := range keys {
		if _, ok := fields[k]; ok {
			return true
		}
	}
	return false
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

func nodeKindName(k yamlv3.Kind) string {
	switch k {
	case yamlv3.SequenceNode:
		return "sequence"
	case yamlv3.ScalarNode:
		return "scalar"
	case yamlv3.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
