package domain

import "testing"

func TestStripQuotes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"""triple"""`, "triple"},
		{`f"formatted"`, "formatted"},
		{`rb'''raw bytes'''`, "raw bytes"},
		{`bare`, "bare"},
	}

	for _, tc := range cases {
		if got := stripQuotes(tc.raw); got != tc.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestHasOperationKeyword(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"query Q { a }", true},
		{"  MUTATION M { a }", true},
		{"\nfragment F on T { a }", true},
		{"subscription S { a }", true},
		{"select * from things", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := hasOperationKeyword(tc.in); got != tc.want {
			t.Errorf("hasOperationKeyword(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOperationShaped(t *testing.T) {
	if !operationShaped("query", "anything") {
		t.Error("operation-named target should qualify regardless of value")
	}

	if !operationShaped("doc", "mutation M { a }") {
		t.Error("operation keyword in value should qualify")
	}

	if operationShaped("doc", "select 1") {
		t.Error("plain string under a plain name should not qualify")
	}
}

func TestBalancedBraces(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"query Q { a }", true},
		{"query Q { a { b } }", true},
		{"query Q {", false},
		{"} }", false},
		{"no braces", false},
	}

	for _, tc := range cases {
		if got := balancedBraces(tc.in); got != tc.want {
			t.Errorf("balancedBraces(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLineOf(t *testing.T) {
	source := "a\nb\nc"

	if got := lineOf(source, 0); got != 1 {
		t.Errorf("expected line 1, got %d", got)
	}

	if got := lineOf(source, 2); got != 2 {
		t.Errorf("expected line 2, got %d", got)
	}

	if got := lineOf(source, 100); got != 3 {
		t.Errorf("offset past end should clamp to last line, got %d", got)
	}
}
