package util

import "testing"

func TestToScreamingSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Port":            "PORT",
		"TLSCert":         "TLS_CERT",
		"SelfTLS":         "SELF_TLS",
		"HibpURL":         "HIBP_URL",
		"TLSCert TLSKey":  "TLS_CERT TLS_KEY",
		"RequestsPerSec2": "REQUESTS_PER_SEC2",
	}

	for in, want := range cases {
		if got := ToScreamingSnakeCase(in); got != want {
			t.Errorf("ToScreamingSnakeCase(%q): %s, want: %s", in, got, want)
		}
	}
}
