package clipboard

import (
	"errors"
	"strings"
	"testing"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantErr bool
	}{
		{text: "https://www.youtube.com/watch?v=abc", want: "https://www.youtube.com/watch?v=abc"},
		{text: "  http://example.com/a \n", want: "http://example.com/a"},
		{text: "HTTPS://example.com", want: "https://example.com"},
		{text: "ftp://example.com/file", wantErr: true},
		{text: "javascript:alert(1)", wantErr: true},
		{text: "youtu.be/abc", wantErr: true},
		{text: "just some words", wantErr: true},
		{text: "https://a.com\nhttps://b.com", wantErr: true},
		{text: "https://" + strings.Repeat("a", maxURLLength), wantErr: true},
		{text: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseURL(tt.text)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("parseURL(%q) = %q, %v; want ErrInvalidURL", tt.text, got, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseURL(%q) = %q, %v; want %q", tt.text, got, err, tt.want)
		}
	}
}

func TestReadURL(t *testing.T) {
	orig := reader
	t.Cleanup(func() { reader = orig })

	reader = func() (string, error) { return "https://youtu.be/abc", nil }
	if got, err := ReadURL(); err != nil || got != "https://youtu.be/abc" {
		t.Errorf("ReadURL() = %q, %v", got, err)
	}

	reader = func() (string, error) { return "hello", nil }
	if _, err := ReadURL(); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("ReadURL() error = %v, want ErrInvalidURL", err)
	}

	reader = func() (string, error) { return "", errors.New("no xclip") }
	if _, err := ReadURL(); !errors.Is(err, ErrClipboardRead) {
		t.Errorf("ReadURL() error = %v, want ErrClipboardRead", err)
	}
}
