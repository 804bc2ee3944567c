package tenants

import "testing"

func TestSubdomainFromHost(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"acme.recruiter.io", "acme"},
		{"acme.recruiter.io:8080", "acme"},
		{"ACME.recruiter.io", "acme"},
		{"  acme.recruiter.io  ", "acme"},
		{"www.recruiter.io", ""},
		{"recruiter.io", ""},
		{"localhost", ""},
		{"localhost:8080", ""},
		{"", ""},
		{".recruiter.io", ""},
		{"www.acme.recruiter.io", ""},
		{"a.b.c.recruiter.io", "a"},
	}

	for _, tc := range cases {
		if got := SubdomainFromHost(tc.host); got != tc.want {
			t.Errorf("SubdomainFromHost(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}
