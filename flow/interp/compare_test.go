package interp

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		resolved interface{}
		found    bool
		operator string
		ruleVal  interface{}
		want     bool
	}{
		{"equals matches same type", "gold", true, "equals", "gold", true},
		{"equals falls back to string form", float64(3), true, "equals", "3", true},
		{"equals absent matches nil rule", nil, false, "equals", nil, true},
		{"not_equals negates equals", "gold", true, "not_equals", "silver", true},

		{"greater_than numeric", float64(5), true, "greater_than", float64(3), true},
		{"greater_than numeric strings", "5", true, "greater_than", "3", true},
		{"greater_than non-numeric never matches", "abc", true, "greater_than", float64(3), false},
		{"less_than_or_equal equal values", float64(3), true, "less_than_or_equal", float64(3), true},

		{"contains substring present", "hello world", true, "contains", "world", true},
		{"contains substring absent", "hello world", true, "contains", "bye", false},
		{"starts_with match", "hello world", true, "starts_with", "hello", true},
		{"ends_with match", "hello world", true, "ends_with", "world", true},

		{"matches_regex valid pattern matches", "abc123", true, "matches_regex", `^[a-z]+\d+$`, true},
		{"matches_regex valid pattern no match", "abc", true, "matches_regex", `^\d+$`, false},
		{"matches_regex invalid pattern never matches", "abc", true, "matches_regex", `[`, false},

		{"is_empty on absent", nil, false, "is_empty", nil, true},
		{"is_empty on explicit nil", nil, true, "is_empty", nil, true},
		{"is_empty on empty string", "", true, "is_empty", nil, true},
		{"is_empty on non-empty string", "x", true, "is_empty", nil, false},
		{"is_not_empty on non-empty string", "x", true, "is_not_empty", nil, true},

		{"unknown operator never matches", "x", true, "bogus_operator", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.resolved, tt.found, tt.operator, tt.ruleVal)
			if got != tt.want {
				t.Errorf("Compare(%v, %v, %q, %v) = %v, want %v", tt.resolved, tt.found, tt.operator, tt.ruleVal, got, tt.want)
			}
		})
	}
}
