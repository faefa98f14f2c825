package interp

import "testing"

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]interface{}
		want     string
	}{
		{
			name:     "single token replaced",
			template: "Hello {{name}}!",
			vars:     map[string]interface{}{"name": "Ada"},
			want:     "Hello Ada!",
		},
		{
			name:     "missing token left intact",
			template: "Hello {{name}}!",
			vars:     map[string]interface{}{},
			want:     "Hello {{name}}!",
		},
		{
			name:     "explicit nil left intact",
			template: "Hello {{name}}!",
			vars:     map[string]interface{}{"name": nil},
			want:     "Hello {{name}}!",
		},
		{
			name:     "multiple distinct tokens",
			template: "{{a}} and {{b}}",
			vars:     map[string]interface{}{"a": "x", "b": "y"},
			want:     "x and y",
		},
		{
			name:     "dotted path not recognised as a token",
			template: "{{a.b}}",
			vars:     map[string]interface{}{"a": map[string]interface{}{"b": "x"}},
			want:     "{{a.b}}",
		},
		{
			name:     "number stringified without exponent noise",
			template: "count={{n}}",
			vars:     map[string]interface{}{"n": float64(3)},
			want:     "count=3",
		},
		{
			name:     "boolean stringified",
			template: "ok={{flag}}",
			vars:     map[string]interface{}{"flag": true},
			want:     "ok=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.template, tt.vars)
			if got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	vars := map[string]interface{}{
		"user": map[string]interface{}{
			"name": "Ada",
			"address": map[string]interface{}{
				"city": "London",
			},
			"nickname": nil,
		},
		"flat": "value",
	}

	tests := []struct {
		name      string
		path      string
		wantValue interface{}
		wantFound bool
	}{
		{"flat name", "flat", "value", true},
		{"one level nested", "user.name", "Ada", true},
		{"two levels nested", "user.address.city", "London", true},
		{"explicit nil is found", "user.nickname", nil, true},
		{"missing leaf", "user.missing", nil, false},
		{"missing top level", "missing", nil, false},
		{"path through non-object", "flat.child", nil, false},
		{"empty path", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Resolve(vars, tt.path)
			if found != tt.wantFound || got != tt.wantValue {
				t.Errorf("Resolve(%q) = (%v, %v), want (%v, %v)", tt.path, got, found, tt.wantValue, tt.wantFound)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string", "hi", "hi"},
		{"bool true", true, "true"},
		{"float without fraction", float64(42), "42"},
		{"float with fraction", 3.5, "3.5"},
		{"int", 7, "7"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.in); got != tt.want {
				t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
