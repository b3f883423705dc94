package config

import "testing"

func TestAPIBaseURL(t *testing.T) {
	cases := []struct {
		name     string
		hostname string
		port     string
		want     string
	}{
		{"both set", "portfolio.example.com", "4000", "http://portfolio.example.com:4000"},
		{"hostname only", "portfolio.example.com", "", "http://portfolio.example.com:3001"},
		{"port only", "", "8081", "http://localhost:8081"},
		{"neither", "", "", "http://localhost:3001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{APIHostname: tc.hostname, APIPort: tc.port}
			if got := cfg.APIBaseURL(); got != tc.want {
				t.Errorf("APIBaseURL() = %q, want %q", got, tc.want)
			}
		})
	}
}
