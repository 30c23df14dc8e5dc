package utils

import "testing"

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"ACME SAS", "ACME_SAS"},
		{"ACME & Co", "ACME___Co"},
		{"Société Générale", "Soci_t__G_n_rale"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.expected {
			t.Fatalf("SanitizeToken(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}
