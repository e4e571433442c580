package generation

import (
	"fmt"
	"strings"
)

// fieldRule describes one string property of a flashcard object.
type fieldRule struct {
	name     string
	required bool // must be present, a string, and not blank
}

// objectSchema is a declarative description of a JSON object whose
// properties are all strings. Unknown properties are ignored.
type objectSchema struct {
	fields []fieldRule
}

// flashcardSchema is the shape every element of the model's array must have.
var flashcardSchema = objectSchema{
	fields: []fieldRule{
		{name: "front", required: true},
		{name: "back", required: true},
		{name: "explanation"},
		{name: "example"},
	},
}

// schemaIssue is a single validation failure at a path like "[3].back".
type schemaIssue struct {
	path    string
	message string
}

func (i schemaIssue) String() string {
	if i.path == "" {
		return i.message
	}
	return i.path + ": " + i.message
}

// validateArray checks that v is a JSON array whose elements all satisfy s.
// It reports every issue found rather than stopping at the first.
func (s objectSchema) validateArray(v any) []schemaIssue {
	items, ok := v.([]any)
	if !ok {
		return []schemaIssue{{message: "expected array, received " + jsonTypeName(v)}}
	}

	var issues []schemaIssue
	for i, item := range items {
		issues = append(issues, s.validateObject(fmt.Sprintf("[%d]", i), item)...)
	}
	return issues
}

func (s objectSchema) validateObject(path string, v any) []schemaIssue {
	obj, ok := v.(map[string]any)
	if !ok {
		return []schemaIssue{{path: path, message: "expected object, received " + jsonTypeName(v)}}
	}

	var issues []schemaIssue
	for _, rule := range s.fields {
		fieldPath := path + "." + rule.name
		raw, present := obj[rule.name]
		if !present || raw == nil {
			if rule.required {
				issues = append(issues, schemaIssue{path: fieldPath, message: "required"})
			}
			continue
		}

		str, isString := raw.(string)
		if !isString {
			issues = append(issues, schemaIssue{
				path:    fieldPath,
				message: "expected string, received " + jsonTypeName(raw),
			})
			continue
		}

		if rule.required && strings.TrimSpace(str) == "" {
			issues = append(issues, schemaIssue{path: fieldPath, message: "must not be empty"})
		}
	}
	return issues
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func joinIssues(issues []schemaIssue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}
