package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "zero falls back to default", limit: 0, expected: DefaultLimit},
		{name: "negative falls back to default", limit: -3, expected: DefaultLimit},
		{name: "within range passes through", limit: 25, expected: 25},
		{name: "above max is capped", limit: 500, expected: MaxLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLimit(tc.limit); got != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestLimitWithBuffer(t *testing.T) {
	if got := LimitWithBuffer(25); got != 26 {
		t.Fatalf("expected one extra row for page detection, got %d", got)
	}
	if got := LimitWithBuffer(0); got != DefaultLimit+1 {
		t.Fatalf("expected default plus one, got %d", got)
	}
}
