package interp

import (
	"regexp"
	"strconv"
	"strings"
)

// Compare evaluates a Condition rule's operator against a resolved
// variable value (spec.md §4.1). found distinguishes "absent" from an
// explicit nil value: is_empty treats both as empty, but equals and
// not_equals compare them differently (an absent value equals only a nil
// rule value; an explicit nil also equals a rule value whose string form
// is empty).
//
// Equality falls back to string equality when direct equality fails.
// Ordered comparisons require both sides to parse as numbers; otherwise
// the rule does not match. String operators (contains/starts_with/
// ends_with/matches_regex) operate on the string form of both sides.
// matches_regex with an invalid pattern never matches — it never raises.
func Compare(resolved interface{}, found bool, operator string, ruleValue interface{}) bool {
	switch operator {
	case "equals":
		return equalsOp(resolved, found, ruleValue)
	case "not_equals":
		return !equalsOp(resolved, found, ruleValue)
	case "greater_than":
		return numericOp(resolved, ruleValue, func(a, b float64) bool { return a > b })
	case "greater_than_or_equal":
		return numericOp(resolved, ruleValue, func(a, b float64) bool { return a >= b })
	case "less_than":
		return numericOp(resolved, ruleValue, func(a, b float64) bool { return a < b })
	case "less_than_or_equal":
		return numericOp(resolved, ruleValue, func(a, b float64) bool { return a <= b })
	case "contains":
		return strings.Contains(Stringify(resolved), Stringify(ruleValue))
	case "not_contains":
		return !strings.Contains(Stringify(resolved), Stringify(ruleValue))
	case "starts_with":
		return strings.HasPrefix(Stringify(resolved), Stringify(ruleValue))
	case "ends_with":
		return strings.HasSuffix(Stringify(resolved), Stringify(ruleValue))
	case "matches_regex":
		return matchesRegex(Stringify(resolved), Stringify(ruleValue))
	case "is_empty":
		return isEmpty(resolved, found)
	case "is_not_empty":
		return !isEmpty(resolved, found)
	default:
		return false
	}
}

func equalsOp(resolved interface{}, found bool, ruleValue interface{}) bool {
	if !found {
		return ruleValue == nil
	}
	if resolved == ruleValue {
		return true
	}
	// Direct comparison may fail purely on differing dynamic types
	// (float64(1) vs int(1), etc.); fall back to string equality.
	return Stringify(resolved) == Stringify(ruleValue)
}

func numericOp(resolved, ruleValue interface{}, cmp func(a, b float64) bool) bool {
	a, ok1 := toFloat(resolved)
	b, ok2 := toFloat(ruleValue)
	if !ok1 || !ok2 {
		return false
	}
	return cmp(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func matchesRegex(s, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func isEmpty(resolved interface{}, found bool) bool {
	if !found || resolved == nil {
		return true
	}
	if s, ok := resolved.(string); ok {
		return s == ""
	}
	return false
}
