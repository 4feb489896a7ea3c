package firebase

import (
	"net"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "whey-protein_5lb.jpg", "whey-protein_5lb.jpg"},
		{"empty", "", "file"},
		{"dot", ".", "file"},
		{"dotdot", "..", "file"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.input); got != tc.want {
			t.Errorf("%s: sanitizeFilename(%q) = %q, want %q", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestSanitizeFilenameStripsSpecialChars(t *testing.T) {
	got := sanitizeFilename("summer sale (50%)!.png")
	if strings.ContainsAny(got, " ()%!") {
		t.Errorf("special chars survived sanitization: %q", got)
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	got := sanitizeFilename(strings.Repeat("x", 300) + ".jpg")
	if len(got) != 100 {
		t.Errorf("expected 100 chars, got %d", len(got))
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.0.100", true},
		{"127.0.0.1", true},
		{"169.254.10.10", true},
		{"::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"93.184.216.34", false},
	}
	for _, tc := range tests {
		if got := isPrivateIP(net.ParseIP(tc.ip)); got != tc.want {
			t.Errorf("isPrivateIP(%s) = %v, want %v", tc.ip, got, tc.want)
		}
	}
}

func TestParseCIDRPanicsOnGarbage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid CIDR")
		}
	}()
	parseCIDR("garbage")
}

func TestValidateExternalURLRejections(t *testing.T) {
	bad := []string{
		"ftp://example.com/catalog.json",
		"file:///etc/passwd",
		"http://localhost/image.jpg",
		"http://LOCALHOST/image.jpg",
		"http:///no-host",
	}
	for _, u := range bad {
		if err := validateExternalURL(u); err == nil {
			t.Errorf("expected %q to be rejected", u)
		}
	}
}

func TestValidateExternalURLAllowsPublicHost(t *testing.T) {
	// Needs DNS; skip when unavailable rather than fail.
	if err := validateExternalURL("https://example.com/image.jpg"); err != nil {
		t.Skipf("DNS unavailable: %v", err)
	}
}
