package tool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yanmxa/fsgate/internal/policy"
)

// paramError is returned when a caller-supplied parameter is missing or has
// the wrong shape.
func paramError(format string, args ...any) error {
	return policy.Errorf(policy.KindInvalidParams, "Invalid parameters: %s", fmt.Sprintf(format, args...))
}

// requiredString returns a string parameter that must be present. An empty
// value is passed through so path validation can report it.
func requiredString(params map[string]any, name string) (string, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return "", paramError("%s is required", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", paramError("%s must be a string", name)
	}
	return s, nil
}

// optionalString returns a string parameter or def when absent.
func optionalString(params map[string]any, name, def string) (string, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", paramError("%s must be a string", name)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// optionalBool accepts a bool, "true"/"false" strings, or a JSON number.
func optionalBool(params map[string]any, name string) (bool, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, paramError("%s must be a boolean", name)
		}
		return parsed, nil
	case float64:
		return b != 0, nil
	case int:
		return b != 0, nil
	}
	return false, paramError("%s must be a boolean", name)
}

// optionalStrings accepts a list of strings or a single string.
func optionalStrings(params map[string]any, name string) ([]string, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case string:
		if list == "" {
			return nil, nil
		}
		return []string{list}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, paramError("%s must be a list of strings", name)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, paramError("%s must be a list of strings", name)
}
