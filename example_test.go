package conform_test

import (
	"fmt"

	"github.com/reoring/conform"
)

func ExampleIsValid() {
	s := conform.MustSchemaFromMap(map[string]any{
		"type":  "integer",
		"anyOf": []any{map[string]any{"maximum": 10}, map[string]any{"minimum": 100}},
		"not":   []any{map[string]any{"const": 5}},
	})
	fmt.Println(conform.IsValid(3, s), conform.IsValid(5, s), conform.IsValid(50, s), conform.IsValid(100.0, s))
	// Output: true false false true
}

func ExampleValidate() {
	s := conform.MustSchemaFromMap(map[string]any{
		"type":       "object",
		"required":   []any{"name"},
		"properties": map[string]any{"age": map[string]any{"type": "integer", "minimum": 0}},
	})
	for _, it := range conform.Validate(map[string]any{"age": -1}, s) {
		fmt.Println(it.Code, it.Path)
	}
	// Output:
	// required /name
	// too_small /age
}

func ExampleGetValidValueOrDefault() {
	s := conform.MustSchemaFromMap(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"retries": map[string]any{"type": "integer", "minimum": 0, "default": 3},
			"mode":    map[string]any{"enum": []any{"fast", "safe"}, "default": "safe"},
		},
		"additionalProperties": false,
	})
	out := conform.GetValidValueOrDefault(s, map[string]any{"retries": -2, "mode": "fast", "debug": true})
	fmt.Println(out)
	// Output: map[mode:fast retries:3]
}
