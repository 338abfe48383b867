package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Result reports the outcome of one named expression.
type Result struct {
	Name    string
	Success bool
	Message string
}

// Apply evaluates JSONPath rules against a saved run artifact.
// rules: map[name]jsonPathExpr
//
// - If doc is not JSON -> every rule fails (no values).
// - If a rule fails -> it's reported in Result; other rules still run.
func Apply(doc []byte, rules map[string]string) (map[string]string, []Result) {
	if len(rules) == 0 {
		return map[string]string{}, []Result{}
	}

	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parsed, err := parseJSON(doc)
	if err != nil {
		out := make([]Result, 0, len(keys))
		for _, name := range keys {
			expr := strings.TrimSpace(rules[name])
			out = append(out, Result{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("query %q (%s): run artifact is not valid JSON", name, expr),
			})
		}
		return map[string]string{}, out
	}

	values := map[string]string{}
	results := make([]Result, 0, len(keys))

	for _, name := range keys {
		expr := strings.TrimSpace(rules[name])
		if expr == "" {
			results = append(results, Result{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("query %q: empty jsonpath expression", name),
			})
			continue
		}

		val, getErr := jsonpath.Get(expr, parsed)
		if getErr != nil {
			results = append(results, Result{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("query %q (%s): jsonpath error: %v", name, expr, getErr),
			})
			continue
		}

		if isEmptyValue(val) {
			results = append(results, Result{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("query %q (%s): no value found", name, expr),
			})
			continue
		}

		s, convErr := toString(val)
		if convErr != nil {
			results = append(results, Result{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("query %q (%s): cannot convert value to string: %v", name, expr, convErr),
			})
			continue
		}

		values[name] = s
		results = append(results, Result{Name: name, Success: true, Message: s})
	}

	return values, results
}

// ParseRules turns "name=$.expr" arguments into a rule map. A bare expression is
// named after its position ("q1", "q2", ...).
func ParseRules(args []string) (map[string]string, error) {
	rules := make(map[string]string, len(args))
	for i, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		name, expr := fmt.Sprintf("q%d", i+1), a
		if k, v, ok := strings.Cut(a, "="); ok && !strings.HasPrefix(a, "$") {
			name, expr = strings.TrimSpace(k), strings.TrimSpace(v)
		}
		if name == "" {
			return nil, fmt.Errorf("query %q: empty name", a)
		}
		if _, dup := rules[name]; dup {
			return nil, fmt.Errorf("query %q: duplicate name %q", a, name)
		}
		rules[name] = expr
	}
	return rules, nil
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// jsonpath wildcards return a slice; a single element is unwrapped
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("empty array")
		}
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
