package urlutil

import "testing"

func TestIsURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://github.com", true},
		{"http://github.com", true},
		{"HTTPS://GITHUB.COM", true},
		{"github.com", true},
		{"github.co.uk", true},
		{"file.txt", true}, // heuristic false positive, kept on purpose
		{"a note about go", false},
		{"github", false},
		{"ends.with.", false},
		{"x.a", false},
	}
	for _, tc := range cases {
		if got := IsURL(tc.in); got != tc.want {
			t.Errorf("IsURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("github.com"); got != "https://github.com" {
		t.Fatalf("expected https prefix, got %q", got)
	}
	if got := Normalize("http://a.com"); got != "http://a.com" {
		t.Fatalf("expected scheme preserved, got %q", got)
	}
	if got := Normalize("HTTP://a.com"); got != "HTTP://a.com" {
		t.Fatalf("scheme check should be case-insensitive, got %q", got)
	}
}

func TestSuggest(t *testing.T) {
	commands := []string{"help", "clear", "categories", "cats"}

	if got := Suggest("cat", commands, true); got != "egories" {
		t.Fatalf("expected first match by list order, got %q", got)
	}
	if got := Suggest("CL", commands, true); got != "ear" {
		t.Fatalf("expected case-insensitive prefix match, got %q", got)
	}
	if got := Suggest("help", commands, true); got != "" {
		t.Fatalf("exact match should yield no suggestion, got %q", got)
	}
	if got := Suggest("cat", commands, false); got != "" {
		t.Fatalf("no suggestions while unauthenticated, got %q", got)
	}
	if got := Suggest("   ", commands, true); got != "" {
		t.Fatalf("blank input should yield no suggestion, got %q", got)
	}
	if got := Suggest("zzz", commands, true); got != "" {
		t.Fatalf("no match should yield empty suggestion, got %q", got)
	}
}
