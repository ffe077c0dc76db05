package util

import "testing"

func TestMaskEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ravi@x.com", "r***@x.com"},
		{"a@x.com", "a***@x.com"},
		{"not-an-email", "***"},
		{"", "***"},
		{"@x.com", "***"},
	}

	for _, tc := range cases {
		if got := MaskEmail(tc.in); got != tc.want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello", 10); got != "hello" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	if got := TruncateString("hello world", 5); got != "hello..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
