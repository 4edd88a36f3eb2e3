package domain

import "testing"

func TestExtractDomain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/page", "example.com"},
		{"https://react.dev/learn/hooks", "react.dev"},
		{"http://github.com/foo/bar", "github.com"},
		{"not a url", "unknown"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		if got := ExtractDomain(tc.in); got != tc.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBaseDomainLabel(t *testing.T) {
	t.Parallel()

	if got := BaseDomainLabel("github.com"); got != "github" {
		t.Errorf("BaseDomainLabel(github.com) = %q", got)
	}
	if got := BaseDomainLabel("www.example.com"); got != "" {
		t.Errorf("BaseDomainLabel(www.example.com) = %q, want empty", got)
	}
	if got := BaseDomainLabel("localhost"); got != "localhost" {
		t.Errorf("BaseDomainLabel(localhost) = %q", got)
	}
}

func TestValidateAbsoluteURL(t *testing.T) {
	t.Parallel()

	valid := []string{
		"https://example.com",
		"http://example.com/a/b?q=1",
	}
	for _, u := range valid {
		if !ValidateAbsoluteURL(u) {
			t.Errorf("ValidateAbsoluteURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"example.com",
		"/relative/path",
		"ftp://example.com",
		"https://",
	}
	for _, u := range invalid {
		if ValidateAbsoluteURL(u) {
			t.Errorf("ValidateAbsoluteURL(%q) = true, want false", u)
		}
	}
}
