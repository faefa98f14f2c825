// Package interp implements flow.md §4.1: flat-name template substitution,
// dotted-path value resolution, and the condition operator set.
//
// Two access modes are deliberately kept separate: Interpolate only ever
// recognises flat {{name}} tokens (messages, prompts, tool input templates,
// Escalate.context string values); dotted-path evaluation via Resolve is
// used only for Condition.variable. A dotted token such as {{a.b}} inside
// an Escalate.context value is therefore left as written, not resolved.
package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Interpolate replaces every {{name}} occurrence in template with the
// string form of vars[name]. A token whose name is absent from vars, or
// whose value is explicitly nil, is left intact (spec.md §4.1).
func Interpolate(template string, vars map[string]interface{}) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(tok string) string {
		m := tokenPattern.FindStringSubmatch(tok)
		name := m[1]
		v, present := vars[name]
		if !present || v == nil {
			return tok
		}
		return Stringify(v)
	})
}

// Stringify renders a variable value for template substitution and for
// string-form comparisons in condition operators.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Resolve walks vars along a dotted path ("a.b.c"), returning the value at
// that path and whether it was found. A missing intermediate or leaf key
// yields (nil, false) — distinct from a value explicitly bound to nil,
// which yields (nil, true).
func Resolve(vars map[string]interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")

	var cur interface{} = vars
	for _, part := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, present := m[part]
		if !present {
			return nil, false
		}
		cur = v
	}
	return cur, true
}
