package format

import "testing"

func TestBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero bytes", bytes: 0, want: "0 B"},
		{name: "negative clamps", bytes: -5, want: "0 B"},
		{name: "single byte", bytes: 1, want: "1 B"},
		{name: "under 1KiB", bytes: 1023, want: "1023 B"},
		{name: "exactly 1KiB", bytes: 1024, want: "1.0 KiB"},
		{name: "1.5 KiB", bytes: 1536, want: "1.5 KiB"},
		{name: "exactly 1MiB", bytes: 1024 * 1024, want: "1.0 MiB"},
		{name: "50 MiB", bytes: 50 * 1024 * 1024, want: "50 MiB"},
		{name: "1.5 GiB", bytes: 1536 * 1024 * 1024, want: "1.5 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bytes(tt.bytes); got != tt.want {
				t.Errorf("Bytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 0, want: "0.0"},
		{bytes: 1024 * 1024, want: "1.0"},
		{bytes: 1536 * 1024, want: "1.5"},
		{bytes: 10 * 1024 * 1024, want: "10.0"},
	}
	for _, tt := range tests {
		if got := MB(tt.bytes); got != tt.want {
			t.Errorf("MB(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
