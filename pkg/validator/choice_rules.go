package validator

import (
	"fmt"
	"slices"
)

func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowedValues, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}

// NotEmptySlice fails for a slice without elements.
func NotEmptySlice[T any](field string, values []T) Rule {
	return Rule{
		Check: func() bool {
			return len(values) > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "No item selected",
			Severity:       Empty,
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
