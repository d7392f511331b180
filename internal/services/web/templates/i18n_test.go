package templates

import "testing"

func TestTWithoutLocalizer(t *testing.T) {
	tests := []struct {
		name string
		key  any
		want string
	}{
		{name: "catalog key", key: "core.app_name", want: "Mission Control"},
		{name: "unknown key", key: "some.key", want: "some.key"},
		{name: "non-string key", key: 42, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := T(nil, tc.key); got != tc.want {
				t.Fatalf("T(nil, %v) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}
