package search

import "testing"

func TestCanonicalQuery(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "trims whitespace", in: "  Chicken Soup  ", out: "chicken soup"},
		{name: "removes punctuation", in: "grandma's best, pie!", out: "grandma s best pie"},
		{name: "collapses spaces", in: "fast   weeknight\tdinner", out: "fast weeknight dinner"},
	}

	for _, tc := range cases {
		if got := canonicalQuery(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}
