package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindDownloader_Custom(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := FindDownloader(bin)
	if err != nil || got != bin {
		t.Errorf("FindDownloader(%q) = %q, %v", bin, got, err)
	}

	_, err = FindDownloader(filepath.Join(t.TempDir(), "missing", "yt-dlp"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFindFFmpeg_Location(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		location string
		want     string
		wantErr  bool
	}{
		{name: "binary", location: bin, want: bin},
		{name: "directory", location: dir, want: bin},
		{name: "empty directory", location: t.TempDir(), wantErr: true},
		{name: "missing", location: filepath.Join(dir, "nope"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindFFmpeg(tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindFFmpeg() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
			if got != tt.want {
				t.Errorf("FindFFmpeg() = %q, want %q", got, tt.want)
			}
		})
	}
}
