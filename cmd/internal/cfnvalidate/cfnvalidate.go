// Package cfnvalidate checks a synthesized studio template before it is deployed.
package cfnvalidate

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	amplifyApp    = "AWS::Amplify::App"
	amplifyBranch = "AWS::Amplify::Branch"
)

// unscopedPrefixes are the actions that must never be granted on every resource.
var unscopedPrefixes = []string{"secretsmanager:", "ssm:"}

// StudioTemplate validates the template at templatePath, in YAML or JSON. It holds
// exactly one app on the SSR platform, exactly one branch with a framework, and no
// secret or parameter access on "*". All problems are reported together.
func StudioTemplate(templatePath string) error {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return errors.Wrapf(err, "reading template %s", templatePath)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "parsing template")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return errors.New("invalid YAML document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.New("template root is not a mapping")
	}

	resources := findMappingValue(root, "Resources")
	if resources == nil || resources.Kind != yaml.MappingNode {
		return errors.New("template has no Resources section")
	}

	var problems []string
	var apps, branches int
	for i := 0; i < len(resources.Content)-1; i += 2 {
		logicalID, res := resources.Content[i].Value, resources.Content[i+1]
		props := findMappingValue(res, "Properties")

		switch scalar(findMappingValue(res, "Type")) {
		case amplifyApp:
			apps++
			if platform := scalar(findMappingValue(props, "Platform")); platform != "WEB_COMPUTE" {
				problems = append(problems, fmt.Sprintf(
					"%s: Platform must be WEB_COMPUTE, got %q", logicalID, platform))
			}
		case amplifyBranch:
			branches++
			if scalar(findMappingValue(props, "Framework")) == "" {
				problems = append(problems, logicalID+": Framework is not set")
			}
		}

		for _, stmt := range statements(res) {
			if action, ok := unscopedAction(stmt); ok {
				problems = append(problems, logicalID+": "+action+" is granted on resource *")
			}
		}
	}

	if apps != 1 {
		problems = append(problems, fmt.Sprintf("expected exactly 1 %s, got %d", amplifyApp, apps))
	}
	if branches != 1 {
		problems = append(problems, fmt.Sprintf("expected exactly 1 %s, got %d", amplifyBranch, branches))
	}

	if len(problems) > 0 {
		return errors.Errorf("template validation errors:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// statements returns every mapping below node that has both an Action and a Resource.
func statements(node *yaml.Node) []*yaml.Node {
	if node == nil {
		return nil
	}

	var found []*yaml.Node
	if node.Kind == yaml.MappingNode &&
		findMappingValue(node, "Action") != nil && findMappingValue(node, "Resource") != nil {
		found = append(found, node)
	}
	for _, child := range node.Content {
		found = append(found, statements(child)...)
	}
	return found
}

func unscopedAction(stmt *yaml.Node) (string, bool) {
	if scalar(findMappingValue(stmt, "Effect")) == "Deny" {
		return "", false
	}
	if !slices.Contains(values(findMappingValue(stmt, "Resource")), "*") {
		return "", false
	}
	for _, action := range values(findMappingValue(stmt, "Action")) {
		for _, prefix := range unscopedPrefixes {
			if strings.HasPrefix(action, prefix) {
				return action, true
			}
		}
	}
	return "", false
}

// values returns the scalar, or the scalar items of a sequence.
func values(node *yaml.Node) []string {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode {
				out = append(out, item.Value)
			}
		}
		return out
	default:
		return nil
	}
}

func scalar(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func findMappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
