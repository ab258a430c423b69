package platform

import "testing"

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"amd64", "amd64", false},
		{"x86_64", "amd64", false},
		{"arm64", "arm64", false},
		{"aarch64", "arm64", false},
		{"386", "386", false},
		{"i686", "386", false},
		{"arm", "arm", false},
		{"armv7l", "arm", false},
		{" AMD64 ", "amd64", false},
		{"riscv64", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := normalizeArch(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeArch(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDistro(t *testing.T) {
	if got := normalizeDistro("  Ubuntu "); got != "ubuntu" {
		t.Errorf("normalizeDistro() = %q, want %q", got, "ubuntu")
	}
}
