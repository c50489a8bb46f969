package browser

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://www.paypal.com/checkoutnow?token=O-1", true},
		{"http://localhost:5000/pay", true},
		{"file:///etc/passwd", false},
		{"javascript:alert(1)", false},
		{"/relative/path", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := Validate(tt.url)
			if (err == nil) != tt.valid {
				t.Errorf("Validate(%q) error = %v, want valid=%v", tt.url, err, tt.valid)
			}
		})
	}
}

func TestOpenRejectsBeforeLaunching(t *testing.T) {
	if err := Open("file:///tmp/x"); err == nil {
		t.Fatal("expected error for file URL")
	}
}

func TestCommandUnsupportedOS(t *testing.T) {
	if err := command("plan9", "https://example.com"); err == nil {
		t.Fatal("expected error for unsupported OS")
	}
}
